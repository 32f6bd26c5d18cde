package main

import (
	"os"

	"github.com/andresherrera/pdfcopilot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
