package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

var askSources []string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question from the indexed books",
	Long: `Answer a single question using passages retrieved from the indexed books.

Examples:
  rag-assistant ask "Who gives Harry his first broomstick?"
  rag-assistant ask --sources "Hunger Games" "How does Katniss volunteer for the reaping?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pipeline, err := newPipeline(cmd.Context(), cfg, askSources)
		if err != nil {
			return err
		}
		answer, err := pipeline.Ask(cmd.Context(), args[0])
		if err != nil {
			return softErr(err)
		}
		printAnswer(answer)
		return nil
	},
}

func init() {
	askCmd.Flags().StringSliceVar(&askSources, "sources", nil,
		"restrict retrieval to these book titles")
	rootCmd.AddCommand(askCmd)
}

func printAnswer(answer *rag.Answer) {
	fmt.Println(answer.Text)
	if len(answer.Citations) == 0 {
		return
	}
	color.Cyan("\nSources:")
	for _, c := range answer.Citations {
		fmt.Printf("  %s %s, page %d\n", c.Marker, c.DocumentID, c.Page)
	}
}

// softErr folds retrieval misses into a readable message instead of a
// command failure.
func softErr(err error) error {
	if errors.Is(err, rag.ErrEmptyIndex) || errors.Is(err, rag.ErrNoContext) {
		color.Yellow("no relevant passages found for this question")
		return nil
	}
	return err
}
