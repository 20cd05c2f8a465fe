package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/legal-digest/internal/mailer"
	"github.com/jonathan/legal-digest/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes endpoints for uploading, analyzing, questioning, reporting on and emailing documents.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to server.port from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg := appConfig

	analyzer, closeClient, err := newAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeClient() //nolint:errcheck

	// email delivery is optional; /send-summary reports it as unconfigured
	var sender mailer.Sender
	if smtpSender, err := mailer.NewSMTPSender(cfg.SMTP); err != nil {
		log.Printf("Email delivery disabled: %v", err)
	} else {
		sender = smtpSender
	}

	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:           port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Analyzer:       analyzer,
		Mailer:         sender,
		PDF:            pdfOptions(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
