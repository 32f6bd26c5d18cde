package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question] [pdfs...]",
	Short: "Index PDFs and answer a single question",
	Long:  `Indexes the given PDF files, answers one question grounded on their content, and exits.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("json", false, "output the answer and sources as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}

	if err := indexFiles(ctx, sess, args[1:]); err != nil {
		return err
	}

	answer, sources, err := sess.Answer(ctx, question)
	if err != nil {
		return err
	}

	if jsonOutput {
		type source struct {
			Source     string  `json:"source"`
			ChunkIndex int     `json:"chunk_id"`
			Similarity float32 `json:"similarity"`
		}
		out := struct {
			Answer  string   `json:"answer"`
			Sources []source `json:"sources"`
		}{Answer: answer}
		for _, src := range sources {
			out.Sources = append(out.Sources, source{
				Source:     src.Document.Metadata.Source,
				ChunkIndex: src.Document.Metadata.ChunkIndex,
				Similarity: src.Similarity,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(answer)
	if verbose {
		fmt.Println()
		for _, src := range sources {
			fmt.Printf("  %s (chunk %d, %.2f)\n",
				src.Document.Metadata.Source, src.Document.Metadata.ChunkIndex, src.Similarity)
		}
	}
	return nil
}
