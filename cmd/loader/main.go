package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sir_venger/wasm_merge/internal/config"
	"github.com/sir_venger/wasm_merge/internal/handoff"
	"github.com/sir_venger/wasm_merge/internal/logging"
	"github.com/sir_venger/wasm_merge/internal/readiness"
	"github.com/sir_venger/wasm_merge/internal/usecase/loader"
	"github.com/sir_venger/wasm_merge/pkg/partclient"
)

// main скачивает части, склеивает их и передаёт буфер точке входа,
// которая записывает артефакт в cfg.Output.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := handoff.Default()
	host.Register(writeArtifact(cfg.Output))

	deps := loader.Deps{
		PartCli:      partclient.New(nil),
		Host:         host,
		Gate:         readiness.Ready(),
		Logger:       log,
		BaseURL:      cfg.BaseURL,
		Parts:        cfg.Parts,
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
	}
	if cfg.Progress {
		deps.Progress = os.Stdout
	}

	l := loader.New(deps)

	fetchCtx := ctx
	if cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
	}

	res, err := l.Load(fetchCtx)
	if err != nil {
		stop()
		os.Exit(1)
	}

	// В CLI ошибка точки входа означает, что артефакт не записан, поэтому код возврата ненулевой.
	if err = l.Handoff(ctx); err != nil {
		log.WithError(err).Error("handoff failed")
		stop()
		os.Exit(1)
	}

	log.WithField("output", cfg.Output).Infof("wrote %d bytes from %d parts", res.TotalBytes, len(res.Parts))
}

// writeArtifact — точка входа для нативного запуска: сохраняет склеенный буфер на диск.
func writeArtifact(path string) handoff.EntryPoint {
	return func(m *handoff.Module) error {
		if len(m.WasmBinary) == 0 {
			return errors.New("empty wasm binary")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, m.WasmBinary, 0o644); err != nil {
			return err
		}
		m.Print(fmt.Sprintf("artifact saved to %s", path))
		return nil
	}
}
