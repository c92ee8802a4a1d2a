package loader

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sir_venger/wasm_merge/internal/handoff"
	"github.com/sir_venger/wasm_merge/internal/metrics"
	"github.com/sir_venger/wasm_merge/internal/models"
	"github.com/sir_venger/wasm_merge/pkg/partclient"
)

// Load скачивает части, склеивает их и публикует буфер в объекте передачи.
// При ошибке загрузки любой части буфер не публикуется.
func (l *Loader) Load(ctx context.Context) (models.LoadResult, error) {
	if len(l.Parts) == 0 {
		return models.LoadResult{}, models.ErrNoParts
	}
	if l.Host == nil {
		return models.LoadResult{}, models.ErrHandoffUnavailable
	}

	runID := uuid.NewString()
	log := l.logger().WithField("run_id", runID)

	ctx = partclient.WithRequestID(ctx, runID)
	if l.Progress != nil {
		ctx = partclient.WithProgress(ctx, l.Progress, len(l.Parts))
	}

	fragments, err := l.fetchParts(ctx)
	if err != nil {
		log.WithError(err).Error("wasm-merge-loader failed")
		return models.LoadResult{}, fmt.Errorf("load parts: %w", err)
	}

	merged := Merge(fragments)
	res := models.LoadResult{
		RunID:      runID,
		Parts:      make([]models.Part, len(fragments)),
		TotalBytes: int64(len(merged)),
	}
	for idx, f := range fragments {
		res.Parts[idx] = models.Part{Index: idx, Name: l.Parts[idx], Size: int64(len(f))}
	}

	l.Host.Publish(merged, l.defaultCallbacks())
	metrics.MergedBytes.Set(float64(len(merged)))

	log.WithFields(logrus.Fields{
		"parts": len(fragments),
		"bytes": res.TotalBytes,
	}).Infof("wasm-merge-loader: merged wasm ready (%d bytes)", res.TotalBytes)

	return res, nil
}

// defaultCallbacks: Print пишет строку в Stdout, PrintErr уходит в логгер (stderr).
func (l *Loader) defaultCallbacks() handoff.Callbacks {
	out, log := l.stdout(), l.logger()
	return handoff.Callbacks{
		Print:    func(args ...any) { fmt.Fprintln(out, args...) },
		PrintErr: func(args ...any) { log.Error(args...) },
	}
}
