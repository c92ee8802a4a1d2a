package parthttp

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	"github.com/sir_venger/wasm_merge/internal/metrics"
	"github.com/sir_venger/wasm_merge/internal/models"
	"github.com/sir_venger/wasm_merge/pkg/httperrors"
	"github.com/sir_venger/wasm_merge/pkg/partproto"
)

// fetchPart обслуживает GET и HEAD, возвращая содержимое части либо только заголовки.
func (a *Server) fetchPart(w http.ResponseWriter, r *http.Request) {
	req, err := newPartRequest(a.dataDir, r)
	if err != nil {
		a.fail(w, err)
		return
	}

	f, err := os.Open(req.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", models.ErrPartNotFound, req.name)
		}
		a.fail(w, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		a.fail(w, err)
		return
	}
	if info.IsDir() {
		a.fail(w, fmt.Errorf("%w: %s", models.ErrPartNotFound, req.name))
		return
	}

	size := strconv.FormatInt(info.Size(), 10)
	w.Header().Set("Content-Length", size)
	w.Header().Set(partproto.HeaderPartSize, size)
	w.Header().Set("Content-Type", partproto.ContentType)
	metrics.PartsServed.WithLabelValues(metrics.Status(http.StatusOK)).Inc()

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Заголовки уже отправлены, поэтому ошибку копирования можно только залогировать.
	if _, err = io.Copy(w, f); err != nil {
		a.log.WithError(err).WithField("part", req.name).Warn("part copy interrupted")
	}
}

func (a *Server) fail(w http.ResponseWriter, err error) {
	status := httperrors.Write(w, err)
	metrics.PartsServed.WithLabelValues(metrics.Status(status)).Inc()
}
