package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/clock"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/web"
)

var serveOpts struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.addr, "addr", "", "Listen address (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	addr := cfg.Server.Addr
	if serveOpts.addr != "" {
		addr = serveOpts.addr
	}

	themes, err := cfg.ThemeSet()
	if err != nil {
		return err
	}
	sessions, err := session.NewManager(session.Config{
		Themes:    themes,
		Clock:     clock.Real(),
		Animation: cfg.AnimationOptions(),
		Frame:     cfg.FrameInterval(),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer sessions.Close()

	deps := web.Deps{
		Sessions:      sessions,
		Images:        content.Static{},
		Stages:        content.Static{},
		SessionMaxAge: cfg.IdleTimeout(),
		Admin: web.AdminCredentials{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		},
		Logger: logger,
	}

	if cfg.Store.Path != "" {
		st, err := openSeededStore(cmd.Context(), cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		deps.Store = st
		deps.Images = st
		deps.Stages = st
		deps.TrackVisitors = cfg.Store.TrackVisitors

		go func() {
			if _, err := st.PruneVisits(context.Background(), time.Now().Add(-cfg.VisitRetention())); err != nil {
				logger.Warn("privacy cleanup failed", "error", err)
			}
		}()

		logger.Info("admin API available at /admin/api/stats")
		if cfg.UsingDefaultAdmin() {
			logger.Warn("using default admin credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweepStop := make(chan struct{})
	defer close(sweepStop)
	go sessions.RunSweeper(cfg.SweepInterval(), cfg.IdleTimeout(), sweepStop)

	srv := newHTTPServer(addr, web.NewRouter(deps), sessions)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newHTTPServer returns the site server. Shutdown ends every session so open
// theme streams return instead of holding the server up.
func newHTTPServer(addr string, h http.Handler, sessions *session.Manager) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(sessions.Close)
	return srv
}

// openSeededStore opens the database and fills it from the compiled-in
// tables the first time.
func openSeededStore(ctx context.Context, path string) (*store.Store, error) {
	st, err := store.Open(path, logger)
	if err != nil {
		return nil, err
	}

	empty, err := st.Empty(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	if empty {
		if err := st.Seed(ctx, content.Images(), content.Stages()); err != nil {
			st.Close()
			return nil, err
		}
	}
	return st, nil
}
