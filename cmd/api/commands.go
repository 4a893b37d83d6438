package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"loanwise/internal/api"
	"loanwise/internal/config"
	"loanwise/internal/observability"
	"loanwise/internal/providers"
)

const shutdownTimeout = 15 * time.Second

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "loanwise",
		Short:         "Loan eligibility and document analysis API backed by Azure AI services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	cmd.AddCommand(newServeCmd(opts), newCheckConfigCmd(opts))
	return cmd
}

// loadConfig reads the optional dotenv file, then the environment. A missing
// file is not an error.
func (o *rootOptions) loadConfig() config.Config {
	if o.envFile != "" {
		_ = godotenv.Load(o.envFile)
	}
	return config.Load()
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr        string
		serveStatic bool
		staticDir   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.loadConfig()
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.APIAddr = addr
			}
			if flags.Changed("serve-static") {
				cfg.ServeStatic = serveStatic
			}
			if flags.Changed("static-dir") {
				cfg.StaticDir = staticDir
			}
			return runServer(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":5000", "listen address")
	cmd.Flags().BoolVar(&serveStatic, "serve-static", false, "also serve frontend assets")
	cmd.Flags().StringVar(&staticDir, "static-dir", "./public", "directory holding frontend assets")
	return cmd
}

func runServer(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	pm := providers.NewManager(cfg)
	status := pm.Status()
	srv := api.NewServer(cfg, pm, observability.NewMetrics(), logger)

	httpServer := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("loanwise api listening",
			"addr", cfg.APIAddr,
			"serve_static", cfg.ServeStatic,
			"openai_configured", status.OpenAI,
			"document_intelligence_configured", status.DocumentIntelligence,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("loanwise api stopped")
	return nil
}

func newCheckConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Report which Azure services have credentials configured",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.loadConfig()
			status := providers.NewManager(cfg).Status()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "openai (%s): %s\n", cfg.OpenAIDeployment, configuredLabel(status.OpenAI))
			fmt.Fprintf(out, "document intelligence: %s\n", configuredLabel(status.DocumentIntelligence))
			if !status.OpenAI || !status.DocumentIntelligence {
				fmt.Fprintln(out, "unconfigured services are served from local fallbacks")
			}
			return nil
		},
	}
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing credentials"
}
