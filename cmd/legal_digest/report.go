package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/legal-digest/internal/rendering"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Analyze a document and write a downloadable report",
	Long:  "Analyze a document and render the digest as txt, tex, html or pdf. PDFs use the engine from report.engine (latex needs pdflatex, browser needs Chrome).",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

var (
	reportFormat string
	reportOut    string
	reportTitle  string
)

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "txt", "Report format: txt, tex, html or pdf")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output path (defaults to <title>-Summary.<format>)")
	reportCmd.Flags().StringVar(&reportTitle, "title", "", "Report title (defaults to the file name)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, args []string) error {
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

	digest, err := analyzer.Analyze(ctx, doc.Text, nil)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	title := reportTitle
	if title == "" {
		title = documentTitle(path)
	}
	report := rendering.NewReport(title, digest)
	format := rendering.Format(reportFormat)

	data, err := rendering.Render(ctx, report, format, pdfOptions(appConfig))
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	out := reportOut
	if out == "" {
		out = report.Filename(string(format))
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}

	if out != "-" {
		fmt.Fprintf(os.Stdout, "Report written to %s\n", out)
	}
	return nil
}
