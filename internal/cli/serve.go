package cli

import (
	"resumeradar/internal/config"
	"resumeradar/internal/observability"
	"resumeradar/internal/rules"
	"resumeradar/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP analysis API",
		Long: `Start an HTTP server exposing the analysis engine.

Available endpoints:
- POST /analyze, /suggestions, /report: analyze resume text
- POST /sessions, GET /sessions/{id}, POST /sessions/{id}/applied: editing sessions
- GET /personas, /trends: loaded tables
- GET /health, /stats: service status

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	cmd.Flags().String("host", "", "Host to bind to (default from config)")
	cmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	cmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	cmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	cmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
	return cmd
}

// applyServeFlags copies explicitly set flags over the loaded configuration
func applyServeFlags(cmd *cobra.Command, srv *config.ServerConfig) {
	overrides := map[string]*string{
		"port":      &srv.Port,
		"host":      &srv.Host,
		"tls-mode":  &srv.TLS.Mode,
		"cert-file": &srv.TLS.CertFile,
		"key-file":  &srv.TLS.KeyFile,
		"ca-file":   &srv.TLS.CAFile,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	// A file given on the command line wins over PEM content from Vault
	if cmd.Flags().Changed("cert-file") {
		srv.TLS.CertContent = ""
	}
	if cmd.Flags().Changed("key-file") {
		srv.TLS.KeyContent = ""
	}
	if cmd.Flags().Changed("ca-file") {
		srv.TLS.CAContent = ""
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, logger, err := commandEnv(cmd)
	if err != nil {
		return err
	}

	applyServeFlags(cmd, &cfg.Server)
	if err := cfg.ValidateTLSConfig(); err != nil {
		return err
	}
	persona, err := resolvePersona(cmd, cfg)
	if err != nil {
		return err
	}

	om, err := observability.NewObservabilityManager(cfg.Observability, Version, logger)
	if err != nil {
		return err
	}
	defer shutdownObservability(om, logger)

	engine, src, loader, err := buildEngine(ctx, cfg, logger,
		rules.WithFetchObserver(om.Metrics().RecordTrendFeedFetch))
	if err != nil {
		return err
	}

	srv, err := server.NewServer(server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
		MaxSessions:    cfg.Server.Sessions.MaxSessions,
		DefaultPersona: persona,
		Matcher:        cfg.Analysis.Matcher,
	}, server.Analysis{
		Engine:      engine,
		Source:      src,
		FeedBreaker: loader.FeedBreaker(),
	}, logger)
	if err != nil {
		return err
	}

	return srv.Start(ctx, om)
}
