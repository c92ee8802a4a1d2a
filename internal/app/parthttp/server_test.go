package parthttp

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sir_venger/wasm_merge/internal/logging"
	"github.com/sir_venger/wasm_merge/pkg/partproto"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.wasm.part1"), []byte("0123456789"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.wasm.part2"), []byte("abc"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	srv := httptest.NewServer(New(dir, logging.Discard()))
	t.Cleanup(srv.Close)
	return srv, dir
}

func TestFetchPart(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/index.wasm.part1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, partproto.ContentType, resp.Header.Get("Content-Type"))
	require.Equal(t, "10", resp.Header.Get(partproto.HeaderPartSize))
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(b))
}

func TestInspectPart(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Head(srv.URL + "/index.wasm.part2")
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "3", resp.Header.Get(partproto.HeaderPartSize))
	require.EqualValues(t, 3, resp.ContentLength)
}

func TestFetchPart_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := map[string]int{
		"/index.wasm.part9": http.StatusNotFound,
		"/nested":           http.StatusNotFound,
		"/.hidden":          http.StatusBadRequest,
		"/..%2Fetc":         http.StatusBadRequest,
	}
	for path, want := range cases {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, want, resp.StatusCode, path)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats healthStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	require.True(t, stats.OK)
	require.Equal(t, 2, stats.Parts)
	require.EqualValues(t, 13, stats.TotalBytes)
}

func TestMetricsExposed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
