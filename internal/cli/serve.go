package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/voter-density/internal/choropleth"
	"github.com/pfrederiksen/voter-density/internal/logger"
	"github.com/pfrederiksen/voter-density/internal/record"
	"github.com/pfrederiksen/voter-density/internal/server"
	"github.com/pfrederiksen/voter-density/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an interactive choropleth of the dataset",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default :8080)")
	cmd.Flags().StringVar(&flagBoundaries, "boundaries", "", "County boundaries (GeoJSON)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	boundaries, err := choropleth.LoadBoundaries(cfg.BoundariesFile)
	if err != nil {
		return err
	}
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	handler := server.New(boundaries, func() (*record.Table, error) {
		return store.LoadDataset(cfg.Output)
	})

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving map", logger.Fields{"listen": cfg.Listen, "dataset": store.Path(cfg.Output)})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
