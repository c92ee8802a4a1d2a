package handoff

import (
	"fmt"
	"sync"
)

// Registry — хост внутри процесса: хранит Module и зарегистрированную точку входа.
type Registry struct {
	mu     sync.Mutex
	module *Module
	entry  EntryPoint
}

var defaultRegistry = NewRegistry()

// Default возвращает общий для процесса реестр.
func Default() *Registry { return defaultRegistry }

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{}
}

// Module возвращает объект передачи, создавая его при первом обращении.
func (r *Registry) Module() *Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moduleLocked()
}

func (r *Registry) moduleLocked() *Module {
	if r.module == nil {
		r.module = &Module{}
	}
	return r.module
}

// SetModule подставляет заранее подготовленный объект передачи,
// например с собственными Print/PrintErr.
func (r *Registry) SetModule(m *Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.module = m
}

// Register объявляет точку входа рантайма.
func (r *Registry) Register(fn EntryPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entry = fn
}

// Publish реализует Host.
func (r *Registry) Publish(binary []byte, defaults Callbacks) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.moduleLocked()
	m.WasmBinary = binary
	if m.Print == nil {
		m.Print = defaults.Print
	}
	if m.PrintErr == nil {
		m.PrintErr = defaults.PrintErr
	}
}

// EntryPoint реализует Host.
func (r *Registry) EntryPoint() (Invoker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entry == nil {
		return nil, false
	}

	fn, m := r.entry, r.moduleLocked()
	return func() error { return fn(m) }, true
}

// Errorf реализует Host.
func (r *Registry) Errorf(format string, args ...any) {
	m := r.Module()
	if m.PrintErr != nil {
		m.PrintErr(fmt.Sprintf(format, args...))
	}
}

var _ Host = (*Registry)(nil)
