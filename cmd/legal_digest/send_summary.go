package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/legal-digest/internal/mailer"
	"github.com/spf13/cobra"
)

var sendSummaryCmd = &cobra.Command{
	Use:   "send-summary <file>",
	Short: "Analyze a document and email its summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSendSummary,
}

var sendTo string

func init() {
	sendSummaryCmd.Flags().StringVar(&sendTo, "to", "", "Recipient email address (required)")
	_ = sendSummaryCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(sendSummaryCmd)
}

func runSendSummary(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	sender, err := mailer.NewSMTPSender(appConfig.SMTP)
	if err != nil {
		return err
	}

	doc, err := loadDocument(ctx, args[0])
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

	msg, err := mailer.NewDigestMessage(sendTo, digest.Summary.Bullets, digest.Risks)
	if err != nil {
		return err
	}
	if err := sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send summary: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Summary sent to %s\n", sendTo)
	return nil
}
