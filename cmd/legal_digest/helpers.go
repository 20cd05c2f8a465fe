package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/legal-digest/internal/config"
	"github.com/jonathan/legal-digest/internal/inference"
	"github.com/jonathan/legal-digest/internal/ingestion"
	"github.com/jonathan/legal-digest/internal/llm"
	"github.com/jonathan/legal-digest/internal/pipeline"
	"github.com/jonathan/legal-digest/internal/rendering"
	"github.com/jonathan/legal-digest/internal/types"
)

// newAnalyzer wires the collaborators named by cfg into a pipeline. Keyword
// extraction always runs on Gemini; summaries and answers come from the
// configured provider. The returned close func releases the Gemini client.
func newAnalyzer(ctx context.Context, cfg *config.Config) (*pipeline.Analyzer, func() error, error) {
	if cfg.LLM.APIKey == "" {
		return nil, nil, &types.ConfigurationError{
			Field:   "llm.api_key",
			Message: "a Gemini API key is required (set GEMINI_API_KEY or " + config.EnvPrefix + "_LLM_API_KEY)",
		}
	}

	llmConfig := &llm.Config{
		Provider: llm.Provider(cfg.LLM.Provider),
		Models: map[llm.ModelTier]string{
			llm.TierLite:     cfg.LLM.LiteModel,
			llm.TierStandard: cfg.LLM.Model,
		},
		Temperature: cfg.LLM.Temperature,
	}
	client, err := llm.NewClient(ctx, llmConfig, cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	opts := pipeline.OptionsFromConfig(cfg)
	opts.KeywordExtractor = llm.NewKeywordExtractor(client)

	switch llmConfig.Provider {
	case llm.ProviderHuggingFace:
		hf := inference.NewClient(inference.Options{
			Endpoint:           cfg.HuggingFace.Endpoint,
			APIToken:           cfg.HuggingFace.APIToken,
			SummarizationModel: cfg.HuggingFace.SummarizationModel,
			QAModel:            cfg.HuggingFace.QAModel,
		})
		opts.Summarizer = hf
		opts.Answerer = hf
	default:
		opts.Summarizer = llm.NewSummarizer(client)
		opts.Answerer = llm.NewAnswerer(client)
	}

	analyzer, err := pipeline.New(opts)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return analyzer, client.Close, nil
}

// loadDocument extracts the text of a local file
func loadDocument(ctx context.Context, path string) (*ingestion.Document, error) {
	return ingestion.NewExtractor().IngestFromFile(ctx, path)
}

// documentTitle derives a report title from a file path
func documentTitle(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// pdfOptions maps report configuration onto rendering options
func pdfOptions(cfg *config.Config) rendering.PDFOptions {
	return rendering.PDFOptions{
		Engine:  rendering.Engine(cfg.Report.Engine),
		Timeout: cfg.Report.RenderTimeout,
	}
}

// writeOutput writes data to path, or to stdout when path is "" or "-"
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
