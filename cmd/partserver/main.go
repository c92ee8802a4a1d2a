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

	"github.com/sir_venger/wasm_merge/internal/app/parthttp"
	"github.com/sir_venger/wasm_merge/internal/config"
	"github.com/sir_venger/wasm_merge/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "").Fatal(err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	addr := flag.String("addr", cfg.ListenAddr, "listen address")
	dataDir := flag.String("data", cfg.DataDir, "directory with part files")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	server := &http.Server{Addr: *addr, Handler: parthttp.New(*dataDir, log)}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("PARTS shutdown error: %v", err)
		}
	}()

	log.Infof("PARTS listening on %s (DATA_DIR=%s)", *addr, *dataDir)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
