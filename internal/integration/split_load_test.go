package integration

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sir_venger/wasm_merge/internal/app/parthttp"
	"github.com/sir_venger/wasm_merge/internal/handoff"
	"github.com/sir_venger/wasm_merge/internal/logging"
	"github.com/sir_venger/wasm_merge/internal/models"
	"github.com/sir_venger/wasm_merge/internal/usecase/loader"
	"github.com/sir_venger/wasm_merge/internal/usecase/splitter"
	"github.com/sir_venger/wasm_merge/pkg/partclient"
)

func splitInto(t *testing.T, dir string, payload []byte, n int) []string {
	t.Helper()
	parts, err := splitter.Split(context.Background(), bytes.NewReader(payload), int64(len(payload)), "index.wasm", n,
		func(_ int, name string, r io.Reader) error {
			b, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(dir, name), b, 0o644)
		})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.Name
	}
	return names
}

func TestSplitServeLoad(t *testing.T) {
	dataDir := t.TempDir()
	payload := bytes.Repeat([]byte{0x00, 0x61, 0x73, 0x6d, 0xA1, 0xB2, 0xC3}, 1<<15) // ~224 KiB
	want := sha256.Sum256(payload)
	names := splitInto(t, dataDir, payload, 3)

	srv := httptest.NewServer(parthttp.New(dataDir, logging.Discard()))
	t.Cleanup(srv.Close)

	reg := handoff.NewRegistry()
	var got []byte
	var calls int
	go func() {
		// Точка входа появляется позже, чем загрузчик закончит склейку.
		time.Sleep(20 * time.Millisecond)
		reg.Register(func(m *handoff.Module) error {
			calls++
			got = m.WasmBinary
			return nil
		})
	}()

	l := loader.New(loader.Deps{
		PartCli:      partclient.New(nil),
		Host:         reg,
		Logger:       logging.Discard(),
		BaseURL:      srv.URL,
		Parts:        names,
		PollInterval: 5 * time.Millisecond,
		PollTimeout:  5 * time.Second,
	})

	res, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.TotalBytes != int64(len(payload)) {
		t.Fatalf("total bytes: got %d want %d", res.TotalBytes, len(payload))
	}
	if calls != 1 {
		t.Fatalf("entry point calls: got %d want 1", calls)
	}
	gh := sha256.Sum256(got)
	if hex.EncodeToString(gh[:]) != hex.EncodeToString(want[:]) {
		t.Fatalf("sha mismatch")
	}
}

func TestMissingPartNeverReachesRuntime(t *testing.T) {
	dataDir := t.TempDir()
	names := splitInto(t, dataDir, []byte("0123456789ab"), 3)
	if err := os.Remove(filepath.Join(dataDir, names[1])); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(parthttp.New(dataDir, logging.Discard()))
	t.Cleanup(srv.Close)

	reg := handoff.NewRegistry()
	reg.Register(func(*handoff.Module) error {
		t.Error("entry point must not be invoked")
		return nil
	})

	l := loader.New(loader.Deps{
		Host:    reg,
		Logger:  logging.Discard(),
		BaseURL: srv.URL,
		Parts:   names,
	})

	_, err := l.Run(context.Background())
	var perr *models.PartError
	if !errors.As(err, &perr) {
		t.Fatalf("want PartError, got %v", err)
	}
	if perr.Part != "index.wasm.part2" || perr.StatusCode != 404 {
		t.Fatalf("unexpected part error: %+v", perr)
	}
	if reg.Module().WasmBinary != nil {
		t.Fatalf("buffer must not be published")
	}
}
