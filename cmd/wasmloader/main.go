//go:build js && wasm

package main

import (
	"context"
	"errors"
	"strings"
	"syscall/js"

	"github.com/sir_venger/wasm_merge/internal/config"
	"github.com/sir_venger/wasm_merge/internal/handoff/jshost"
	"github.com/sir_venger/wasm_merge/internal/logging"
	"github.com/sir_venger/wasm_merge/internal/models"
	"github.com/sir_venger/wasm_merge/internal/usecase/loader"
	"github.com/sir_venger/wasm_merge/pkg/partclient"
)

// main — браузерная сборка: части берутся относительно адреса страницы,
// буфер кладётся в window.Module, затем вызывается Godot(Module).
func main() {
	cfg := config.Default()
	log := logging.New(cfg.LogLevel, "")

	l := loader.New(loader.Deps{
		PartCli:      partclient.New(nil),
		Host:         jshost.New(jshost.DefaultModuleName, jshost.DefaultEntryName),
		Gate:         jshost.DocumentGate(),
		Logger:       log,
		BaseURL:      pageBase(),
		Parts:        cfg.Parts,
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
	})

	// Ошибки загрузки и вызова рантайма логируются внутри Run.
	if _, err := l.Run(context.Background()); errors.Is(err, models.ErrEntryPointTimeout) {
		log.WithError(err).Error("runtime was not started")
	}
}

// pageBase возвращает адрес каталога текущей страницы.
func pageBase() string {
	href := js.Global().Get("location").Get("href").String()
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if i := strings.LastIndex(href, "/"); i >= 0 {
		href = href[:i]
	}
	return href
}
