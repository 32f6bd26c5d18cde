package session

import (
	"sort"
	"testing"
)

func TestHashBytesContentAddressed(t *testing.T) {
	a := HashBytes([]byte("contenido del documento"))
	b := HashBytes([]byte("contenido del documento"))
	c := HashBytes([]byte("otro contenido"))

	if a != b {
		t.Errorf("identical bytes produced different hashes: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different bytes produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestDiffHashes(t *testing.T) {
	registered := map[string]struct{}{"a": {}, "b": {}, "c": {}}
	current := map[string]struct{}{"b": {}, "c": {}, "d": {}}

	removed, added := DiffHashes(registered, current)
	sort.Strings(removed)
	sort.Strings(added)

	if len(removed) != 1 || removed[0] != "a" {
		t.Errorf("removed = %v, want [a]", removed)
	}
	if len(added) != 1 || added[0] != "d" {
		t.Errorf("added = %v, want [d]", added)
	}
}

func TestDiffHashesEmptySets(t *testing.T) {
	removed, added := DiffHashes(nil, nil)
	if removed != nil || added != nil {
		t.Errorf("expected nil diffs for empty sets, got %v / %v", removed, added)
	}

	removed, added = DiffHashes(map[string]struct{}{"x": {}}, map[string]struct{}{"x": {}})
	if len(removed) != 0 || len(added) != 0 {
		t.Errorf("identical sets should diff empty, got %v / %v", removed, added)
	}
}
