package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/sir_venger/wasm_merge/internal/handoff"
	"github.com/sir_venger/wasm_merge/internal/metrics"
	"github.com/sir_venger/wasm_merge/internal/models"
)

// Handoff дожидается готовности окружения, затем опрашивает хост, пока не
// появится точка входа, и вызывает её ровно один раз.
// Ошибка или паника внутри точки входа возвращается обёрнутой в models.ErrInvoke.
func (l *Loader) Handoff(ctx context.Context) error {
	if l.Host == nil {
		return models.ErrHandoffUnavailable
	}
	if err := l.gate().Wait(ctx); err != nil {
		return err
	}

	invoke, err := l.waitEntryPoint(ctx)
	if err != nil {
		return err
	}

	if err = call(invoke); err != nil {
		metrics.Invocations.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: %w", models.ErrInvoke, err)
	}
	metrics.Invocations.WithLabelValues("ok").Inc()

	return nil
}

// waitEntryPoint проверяет наличие точки входа сразу, затем раз в PollInterval.
// Истечение PollTimeout даёт models.ErrEntryPointTimeout; отмена или дедлайн
// вызывающего контекста возвращаются как есть.
func (l *Loader) waitEntryPoint(ctx context.Context) (handoff.Invoker, error) {
	if l.PollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, l.PollTimeout,
			fmt.Errorf("%w after %s", models.ErrEntryPointTimeout, l.PollTimeout))
		defer cancel()
	}

	ticker := time.NewTicker(l.pollInterval())
	defer ticker.Stop()

	for {
		metrics.EntryPointPolls.Inc()
		if invoke, ok := l.Host.EntryPoint(); ok {
			return invoke, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, context.Cause(ctx)
		}
	}
}

// call вызывает точку входа, превращая панику в ошибку.
func call(invoke handoff.Invoker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return invoke()
}
