package pdf

import "testing"

func TestFullTextSkipsEmptyPages(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "primera página"},
		{Number: 2, Text: ""},
		{Number: 3, Text: "   \n "},
		{Number: 4, Text: "cuarta página"},
	}
	got := FullText(pages)
	want := "primera página\ncuarta página\n"
	if got != want {
		t.Errorf("FullText = %q, want %q", got, want)
	}
}

func TestFullTextEmpty(t *testing.T) {
	if got := FullText(nil); got != "" {
		t.Errorf("FullText(nil) = %q, want empty", got)
	}
}
