package parthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/sir_venger/wasm_merge/pkg/partproto"
)

// requestLogger пишет структурированный лог доступа: метод, путь, статус, длительность.
func (a *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := a.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": middleware.GetReqID(r.Context()),
			"run_id":     r.Header.Get(partproto.HeaderRequestID),
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("request completed with errors")
			return
		}
		entry.Debug("request completed")
	})
}
