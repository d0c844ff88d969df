package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/net/http2"

	"ricemap/internal/api"
	"ricemap/internal/config"
	"ricemap/internal/engine"
)

func main() {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		log.Fatal(err)
	}

	// 1. Initialize Echo (Starts Instantly)
	e := api.NewEcho(cfg)
	setupLogging(e, cfg)

	// 2. Initialize Handler with NIL data
	// The API is live but data endpoints return 503 until the table is loaded
	h := api.NewHandler(nil, cfg.TopChartLimit)
	h.RegisterRoutes(e)

	// 3. Load the dataset in the background; a bad file is fatal
	loaded := make(chan *engine.Table, 1)
	go func() {
		log.Infof("BACKGROUND: loading %s...", cfg.DataPath)
		t0 := time.Now()

		table, err := engine.Load(cfg.DataPath)
		if err != nil {
			e.Logger.Fatalf("BACKGROUND: load failed: %v", err)
		}
		h.SetData(table)
		loaded <- table

		log.Infof("BACKGROUND: load complete in %v. Dashboard is fully ready.", time.Since(t0))
	}()

	// 4. Start Server
	go func() {
		log.Infof("Server ready on %s (data loading in background...)", cfg.Address)
		var err error
		if cfg.H2C {
			err = e.StartH2CServer(cfg.Address, &http2.Server{})
		} else {
			err = e.Start(cfg.Address)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}

	select {
	case table := <-loaded:
		table.Release()
	default:
	}
	log.Info("Server stopped")
}
