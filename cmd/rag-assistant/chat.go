package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatSources []string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pipeline, err := newPipeline(cmd.Context(), cfg, chatSources)
		if err != nil {
			return err
		}

		color.Green("ask a question about your books, or 'exit' to quit")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}
			if question == "exit" || question == "quit" {
				return nil
			}
			answer, err := pipeline.Ask(cmd.Context(), question)
			if err != nil {
				if err = softErr(err); err != nil {
					return err
				}
				continue
			}
			printAnswer(answer)
			fmt.Println()
		}
	},
}

func init() {
	chatCmd.Flags().StringSliceVar(&chatSources, "sources", nil,
		"restrict retrieval to these book titles")
	rootCmd.AddCommand(chatCmd)
}
