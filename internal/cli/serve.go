package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/server"
	"github.com/deepanshu-yd/avalanche-dev-assistant/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the question-answering API. The index warms up on the first
request; subsequent questions reuse the in-memory embeddings.

Endpoints:
  GET  /health
  POST /ask     {"question": "..."}
  GET  /stats`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig()

	model, err := buildLLM(cfg)
	if err != nil {
		return fmt.Errorf("failed to create answer provider: %w", err)
	}

	idx := buildIndex(cfg, false)
	ask := usecase.NewAskUseCase(idx, model, cfg.Retrieval.TopK, cfg.Retrieval.ContextChunks)

	srv := server.New(ask, idx, cfg.Server.Port, cfg.Server.CORSOrigin)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	fmt.Printf("Serving on port %d (provider: %s)\n", cfg.Server.Port, model.Provider())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
