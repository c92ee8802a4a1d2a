package loader

import (
	"context"
	"errors"

	"github.com/sir_venger/wasm_merge/internal/models"
)

// Run выполняет Load и Handoff подряд. Ошибки загрузки возвращаются,
// ошибка вызова точки входа только логируется через PrintErr и не считается
// провалом загрузчика.
func (l *Loader) Run(ctx context.Context) (models.LoadResult, error) {
	res, err := l.Load(ctx)
	if err != nil {
		return models.LoadResult{}, err
	}

	if err = l.Handoff(ctx); err != nil {
		if errors.Is(err, models.ErrInvoke) {
			l.Host.Errorf("Error while starting runtime with merged wasm: %v", err)
			return res, nil
		}
		return res, err
	}

	return res, nil
}
