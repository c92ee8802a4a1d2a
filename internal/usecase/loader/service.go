package loader

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sir_venger/wasm_merge/internal/handoff"
	"github.com/sir_venger/wasm_merge/internal/models"
	"github.com/sir_venger/wasm_merge/internal/readiness"
	"github.com/sir_venger/wasm_merge/pkg/partclient"
)

const defaultPollInterval = 50 * time.Millisecond

// Service — загрузка частей, склейка и передача буфера рантайму.
type Service interface {
	Load(ctx context.Context) (models.LoadResult, error)
	Handoff(ctx context.Context) error
	Run(ctx context.Context) (models.LoadResult, error)
}

type Deps struct {
	PartCli partclient.Client
	Host    handoff.Host
	Gate    readiness.Gate
	Logger  logrus.FieldLogger

	BaseURL string
	Parts   []string
	// PollInterval — пауза между проверками точки входа.
	PollInterval time.Duration
	// PollTimeout — предел ожидания точки входа; 0 — без ограничения.
	PollTimeout time.Duration
	// Progress, если задан, получает ASCII-индикатор загрузки.
	Progress io.Writer
	// Stdout принимает вывод Print по умолчанию; nil — os.Stdout.
	Stdout io.Writer
}

type Loader struct {
	Deps
}

// New конструирует загрузчик с заданными зависимостями, подставляя значения по умолчанию.
func New(deps Deps) *Loader {
	if deps.Gate == nil {
		deps.Gate = readiness.Ready()
	}
	if deps.PollInterval <= 0 {
		deps.PollInterval = defaultPollInterval
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	if deps.PartCli == nil {
		deps.PartCli = partclient.New(nil)
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	return &Loader{Deps: deps}
}

// Loader, собранный литералом в обход New, получает те же значения по умолчанию.

func (l *Loader) gate() readiness.Gate {
	if l.Gate == nil {
		return readiness.Ready()
	}
	return l.Gate
}

func (l *Loader) pollInterval() time.Duration {
	if l.PollInterval <= 0 {
		return defaultPollInterval
	}
	return l.PollInterval
}

func (l *Loader) logger() logrus.FieldLogger {
	if l.Logger == nil {
		return logrus.StandardLogger()
	}
	return l.Logger
}

func (l *Loader) partCli() partclient.Client {
	if l.PartCli == nil {
		return partclient.New(nil)
	}
	return l.PartCli
}

func (l *Loader) stdout() io.Writer {
	if l.Stdout == nil {
		return os.Stdout
	}
	return l.Stdout
}

var _ Service = (*Loader)(nil)
