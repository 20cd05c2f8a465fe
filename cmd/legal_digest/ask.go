package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/legal-digest/internal/observability"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <file>",
	Short: "Answer a question about a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

var askQuestion string

func init() {
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "Question to answer (required)")
	_ = askCmd.MarkFlagRequired("question")
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	doc, err := loadDocument(ctx, args[0])
	if err != nil {
		return err
	}

	analyzer, closeClient, err := newAnalyzer(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeClient() //nolint:errcheck

	answer, err := analyzer.Ask(ctx, askQuestion, doc.Text)
	if err != nil {
		return fmt.Errorf("question answering failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintAnswer(askQuestion, answer)
	return nil
}
