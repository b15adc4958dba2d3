package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/t6post/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the T6 post generator web page",
	Long: `Serve the single-page T6 post generator and its JSON API.

Each browser tab gets its own session. Posts are generated server-side so the
API key never reaches the browser.

Examples:
  t6post serve
  t6post serve --addr 127.0.0.1:9000
  t6post serve --provider mock`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(os.Stderr)
	if err != nil {
		return err
	}

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv, err := server.New(a.model, a.cfg.LLMSettings(), a.logger,
		server.WithSessionTTL(a.cfg.Server.SessionTTL),
		server.WithMaxSessions(a.cfg.Server.MaxSessions),
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "addr", addr, "provider", a.cfg.LLM.Provider, "model", a.cfg.LLM.Model)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-cmd.Context().Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
