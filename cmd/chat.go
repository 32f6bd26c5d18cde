package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/andresherrera/pdfcopilot/internal/progress"
	"github.com/andresherrera/pdfcopilot/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat [pdfs...]",
	Short: "Index PDF documents and answer questions interactively",
	Long: `Indexes the given PDF files (glob patterns with ** are supported) and
starts an interactive question loop. Inside the loop:

  /docs    list the indexed documents and their summaries
  /reset   discard all documents and start over
  /exit    quit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}

	if err := indexFiles(ctx, sess, args); err != nil {
		return err
	}

	printSummaries(sess)
	fmt.Println()

	prompt := promptui.Prompt{Label: "Pregunta"}
	for {
		question, err := prompt.Run()
		if err != nil {
			// Ctrl-C or Ctrl-D ends the loop.
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(question) {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/docs":
			printSummaries(sess)
			continue
		case "/reset":
			report := sess.Reset(ctx)
			if !report.Clean() {
				for _, rerr := range report.Errors {
					fmt.Printf("reset warning: %v\n", rerr)
				}
			}
			fmt.Println("Session cleared.")
			continue
		}

		answer, sources, err := sess.Answer(ctx, question)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Println()
		fmt.Println(answer)
		if verbose && len(sources) > 0 {
			fmt.Println()
			fmt.Println("Fuentes:")
			for _, src := range sources {
				fmt.Printf("  %s (chunk %d, %.2f)\n",
					src.Document.Metadata.Source, src.Document.Metadata.ChunkIndex, src.Similarity)
			}
		}
		fmt.Println()
	}
}

// indexFiles resolves the arguments, runs them through the pipeline with a
// progress bar, and reports per-document failures without aborting.
func indexFiles(ctx context.Context, sess *session.Session, args []string) error {
	paths, err := resolvePDFArgs(args)
	if err != nil {
		return err
	}
	uploads, err := readUploads(paths)
	if err != nil {
		return err
	}

	reporter := progress.NewReporter()
	reporter.Start(len(uploads))
	sess.SetProgressFunc(func(filename string, done, total int) {
		reporter.Update(done, filename)
	})
	result := sess.ProcessBatch(ctx, uploads)
	sess.SetProgressFunc(nil)
	reporter.Finish()

	for _, derr := range result.Errors {
		fmt.Printf("Warning: %v\n", derr)
	}
	if len(result.Processed)+len(result.Skipped) == 0 {
		return fmt.Errorf("no documents could be indexed")
	}
	fmt.Printf("Indexed %d document(s), %d chunk(s) total.\n",
		len(result.Processed)+len(result.Skipped), sess.ChunkCount())
	return nil
}

func printSummaries(sess *session.Session) {
	summaries := sess.Summaries()
	if len(summaries) == 0 {
		fmt.Println("No documents indexed.")
		return
	}
	for _, s := range summaries {
		fmt.Printf("\n## %s\n%s\n", s.Label, s.Summary)
	}
}
