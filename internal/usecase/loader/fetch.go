package loader

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/wasm_merge/internal/models"
)

// fetchParts запускает загрузку всех частей одновременно и ждёт их все.
// Первая ошибка отменяет остальные запросы; частичные результаты отбрасываются.
func (l *Loader) fetchParts(ctx context.Context) ([][]byte, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	fragments := make([][]byte, len(l.Parts))

	for idx, name := range l.Parts {
		eg.Go(func() error {
			b, err := l.partCli().GetPart(egCtx, l.BaseURL, name)
			if err != nil {
				var perr *models.PartError
				if errors.As(err, &perr) {
					perr.Index = idx
				}
				return err
			}
			// Каждая горутина пишет только в свой слот.
			fragments[idx] = b
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return fragments, nil
}
