package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfcopilot",
	Short: "Chat with your PDF documents using retrieval-grounded answers",
	Long: `PDF Copilot indexes the text of your PDF documents in a local vector
store and answers questions about them, citing the passages each answer
is grounded on. Documents are classified by type so chunking and
summarization adapt to screenplays, papers, resumes and more.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".pdfcopilot.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
