package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/legal-digest/internal/observability"
	"github.com/jonathan/legal-digest/internal/pipeline"
	"github.com/jonathan/legal-digest/internal/rendering"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Summarize a document and flag clauses and risks",
	Long:  "Extract text from a .txt, .pdf or .html file, then print its bullet summary, key clauses and risks.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeJSON    bool
	analyzeVerbose bool
	analyzeOut     string
)

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the digest as JSON")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print progress and formatted sections")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the result to a file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	doc, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}

	analyzer, closeClient, err := newAnalyzer(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeClient() //nolint:errcheck

	printer := observability.NewPrinter(os.Stderr)
	var onProgress pipeline.ProgressCallback
	if analyzeVerbose {
		printer.PrintDocument(doc.Metadata.Filename, doc.Metadata.ContentType, doc.Metadata.Characters)
		onProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Stage, event.Message)
		}
	}

	digest, err := analyzer.Analyze(ctx, doc.Text, onProgress)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeVerbose {
		printer.PrintDigest(digest)
	}

	var out []byte
	if analyzeJSON {
		out, err = json.MarshalIndent(digest, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode digest: %w", err)
		}
		out = append(out, '\n')
	} else {
		out = []byte(rendering.RenderText(rendering.NewReport(documentTitle(path), digest)))
	}

	return writeOutput(analyzeOut, out)
}
