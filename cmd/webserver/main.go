package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ogefest/fbrowser/app"
	"github.com/ogefest/fbrowser/internal/logging"
	webapp "github.com/ogefest/fbrowser/web/run"
)

func main() {
	configPath := flag.String("config", app.DefaultConfigPath, "Path to configuration file")
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config)")
	startPath := flag.String("path", "", "Directory to open (overrides config and history)")
	flag.Parse()

	rt, err := app.Bootstrap(*configPath, os.Stderr)
	if err != nil {
		logging.L().Fatal("failed to start", logging.Err(err))
	}
	defer rt.Close()

	start := rt.StartPath(*startPath)
	if err := rt.Model.Load(start); err != nil {
		logging.L().Warn("unable to open start directory", logging.String("path", start), logging.Err(err))
	}

	web := webapp.NewWebApp(rt)
	addr := web.GetListenAddr()
	if *listenAddr != "" {
		addr = *listenAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           web.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.L().Warn("shutdown failed", logging.Err(err))
		}
	}()

	logging.L().Info("starting server", logging.String("addr", addr), logging.String("path", rt.Model.Path()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.L().Error("server error", logging.Err(err))
	}
}
