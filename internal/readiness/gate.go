// Package readiness — сигнал готовности страницы, после которого можно
// передавать управление рантайму.
package readiness

import (
	"context"
	"sync"
)

// Gate блокирует до готовности окружения.
type Gate interface {
	Wait(ctx context.Context) error
}

type ready struct{}

// Ready возвращает всегда открытый Gate.
func Ready() Gate { return ready{} }

func (ready) Wait(context.Context) error { return nil }

// Signal открывается один раз вызовом Open.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

// NewSignal создаёт закрытый Signal.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Open открывает сигнал; повторные вызовы ничего не делают.
func (s *Signal) Open() {
	s.once.Do(func() { close(s.ch) })
}

// Done возвращает канал, закрывающийся при открытии.
func (s *Signal) Done() <-chan struct{} { return s.ch }

// Wait блокирует до Open или отмены ctx; после Open возвращает nil сразу.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
