package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aaronzipp/spyfall-chat/internal/handlers"
	"github.com/aaronzipp/spyfall-chat/internal/logging"
	"github.com/aaronzipp/spyfall-chat/internal/session"
	"github.com/aaronzipp/spyfall-chat/internal/sse"
	"github.com/aaronzipp/spyfall-chat/internal/store"
	"github.com/aaronzipp/spyfall-chat/internal/ws"
)

const (
	shutdownTimeout = 30 * time.Second
	sendTimeout     = time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Init(cfg.Log)
	log := logging.L()

	pool, err := cfg.Locations()
	if err != nil {
		return fmt.Errorf("loading locations: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}
	defer st.Close()

	hub := sse.NewHub(sendTimeout, log)
	manager, err := session.NewManager(cfg.Session(pool), sse.NewEffects(hub), st, session.WithLogger(log))
	if err != nil {
		return err
	}

	hctx := handlers.NewContext(manager, hub, st, cfg.Game.StartCommand, log)
	hctx.Socket = ws.NewHandler(hub, hctx.Dispatcher, cfg.WebSocket, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           hctx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("store", cfg.Store.Driver).
			Int("locations", len(pool)).
			Int("minimal_player_count", cfg.Game.MinimalPlayerCount).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		manager.Shutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info().Msg("server exited")
		return nil
	})
	return g.Wait()
}
