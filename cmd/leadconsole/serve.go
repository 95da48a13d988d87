package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"leadconsole/internal/config"
	"leadconsole/internal/httpapi"
	"leadconsole/internal/scheduler"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local console API on 127.0.0.1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	a, err := openApp(ctx, opts, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(a.cfg)

	deps := httpapi.Deps{
		DB:          a.db,
		Hub:         a.hub,
		Log:         a.log,
		Leads:       a.leads,
		Panel:       a.panel,
		Session:     a.session,
		CookieName:  a.cfg.Session.CookieName,
		CfgVal:      &cfgVal,
		UserCfgPath: a.userCfgPath,
		LoadCfg: func() (config.Config, error) {
			return config.Load(a.userCfgPath)
		},
	}
	mux := httpapi.NewMux(deps)
	srv := &http.Server{
		Handler:           httpapi.Handler(mux, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(32)
	if err != nil {
		return err
	}
	tokenPath := filepath.Join(a.dataDir, "shutdown.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		return err
	}
	defer os.Remove(tokenPath)
	mux.HandleFunc("/shutdown", shutdownHandler(token, srv))

	addr := fmt.Sprintf("127.0.0.1:%d", a.cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	a.log.Info("console_listening", "addr", "http://"+addr, "data_dir", a.dataDir, "backend", a.cfg.Backend.BaseURL)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	runCtx, cancelRun := context.WithCancel(gctx)
	defer cancelRun()

	g.Go(func() error {
		<-runCtx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		return nil
	})

	g.Go(func() error {
		scheduler.Every(runCtx, a.log.Logger, a.cfg.PruneInterval(), "prune_snapshots", func(ctx context.Context) error {
			n, err := a.db.PruneSnapshots(ctx, time.Now().Add(-a.cfg.SnapshotTTL()))
			if err == nil && n > 0 {
				a.log.Debug("snapshots_pruned", "rows", n)
			}
			return err
		})
		return nil
	})

	// /shutdown stops the scheduler too
	srv.RegisterOnShutdown(cancelRun)

	err = g.Wait()
	if cerr := a.db.Checkpoint(context.Background()); cerr != nil {
		a.log.Warn("checkpoint_failed", "error", cerr.Error())
	}
	return err
}
