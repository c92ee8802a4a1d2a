package parthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/sir_venger/wasm_merge/internal/metrics"
)

// Server раздаёт части артефакта из каталога на диске.
type Server struct {
	dataDir string
	log     logrus.FieldLogger
}

// New создаёт HTTP-обработчик сервера частей поверх каталога с данными.
func New(dataDir string, log logrus.FieldLogger) http.Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	srv := &Server{
		dataDir: dataDir,
		log:     log,
	}

	return srv.routes()
}

// routes регистрирует обработчики для частей, здоровья и метрик.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", a.health)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/{name}", a.fetchPart)
	r.Head("/{name}", a.fetchPart)

	return r
}
