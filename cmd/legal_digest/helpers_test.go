package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/legal-digest/internal/config"
	"github.com/jonathan/legal-digest/internal/rendering"
	"github.com/jonathan/legal-digest/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalyzer_RequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = ""

	_, _, err := newAnalyzer(context.Background(), cfg)

	var cfgErr *types.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "llm.api_key", cfgErr.Field)
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lease.txt")
	require.NoError(t, os.WriteFile(path, []byte("The tenant shall pay rent.\n\n\n\nLate fees apply.\n"), 0644))

	doc, err := loadDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "The tenant shall pay rent.\n\nLate fees apply.", doc.Text)
	assert.Equal(t, "lease.txt", doc.Metadata.Filename)
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := loadDocument(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "lease", documentTitle("/tmp/docs/lease.pdf"))
	assert.Equal(t, "master.services", documentTitle("master.services.txt"))
	assert.Equal(t, "README", documentTitle("README"))
}

func TestPDFOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Engine = "browser"
	cfg.Report.RenderTimeout = 5 * time.Second

	opts := pdfOptions(cfg)
	assert.Equal(t, rendering.EngineBrowser, opts.Engine)
	assert.Equal(t, 5*time.Second, opts.Timeout)
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	require.NoError(t, writeOutput(path, []byte("hello")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "analyze", "ask", "report", "send-summary"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, askCmd.Flags().Lookup("question"))
	assert.NotNil(t, sendSummaryCmd.Flags().Lookup("to"))
	assert.Equal(t, "txt", reportCmd.Flags().Lookup("format").DefValue)
}
