//go:build js && wasm

// Package jshost — хост передачи для браузера: объект window.Module,
// глобальная функция-точка входа и ожидание DOMContentLoaded.
package jshost

import (
	"fmt"
	"syscall/js"

	"github.com/sir_venger/wasm_merge/internal/handoff"
	"github.com/sir_venger/wasm_merge/internal/readiness"
)

const (
	DefaultModuleName = "Module"
	DefaultEntryName  = "Godot"
)

// Host публикует буфер в глобальный объект и ищет глобальную точку входа.
type Host struct {
	global     js.Value
	moduleName string
	entryName  string
}

// New создаёт хост; пустые имена заменяются на Module и Godot.
func New(moduleName, entryName string) *Host {
	if moduleName == "" {
		moduleName = DefaultModuleName
	}
	if entryName == "" {
		entryName = DefaultEntryName
	}
	return &Host{
		global:     js.Global(),
		moduleName: moduleName,
		entryName:  entryName,
	}
}

func (h *Host) module() js.Value {
	m := h.global.Get(h.moduleName)
	if m.IsUndefined() || m.IsNull() {
		m = h.global.Get("Object").New()
		h.global.Set(h.moduleName, m)
	}
	return m
}

// Publish кладёт буфер в Module.wasmBinary как ArrayBuffer.
// print/printErr по умолчанию — console.log и console.error; заданные заранее не трогаются.
// Go-колбэки из defaults используются, только если в окружении нет console.
func (h *Host) Publish(binary []byte, defaults handoff.Callbacks) {
	m := h.module()

	arr := h.global.Get("Uint8Array").New(len(binary))
	js.CopyBytesToJS(arr, binary)
	m.Set("wasmBinary", arr.Get("buffer"))

	console := h.global.Get("console")
	if !isFunc(m.Get("print")) {
		m.Set("print", h.sink(console, "log", defaults.Print))
	}
	if !isFunc(m.Get("printErr")) {
		m.Set("printErr", h.sink(console, "error", defaults.PrintErr))
	}
}

func (h *Host) sink(console js.Value, method string, fallback func(args ...any)) js.Value {
	if console.Truthy() && isFunc(console.Get(method)) {
		return console.Get(method).Call("bind", console)
	}
	if fallback == nil {
		return js.Undefined()
	}
	return js.FuncOf(func(_ js.Value, args []js.Value) any {
		out := make([]any, len(args))
		for i, a := range args {
			out[i] = a.String()
		}
		fallback(out...)
		return nil
	}).Value
}

// EntryPoint реализует handoff.Host. Исключение JS превращается в панику js.Error,
// которую перехватывает загрузчик.
func (h *Host) EntryPoint() (handoff.Invoker, bool) {
	fn := h.global.Get(h.entryName)
	if !isFunc(fn) {
		return nil, false
	}
	return func() error {
		fn.Invoke(h.module())
		return nil
	}, true
}

// Errorf реализует handoff.Host.
func (h *Host) Errorf(format string, args ...any) {
	m := h.module()
	if isFunc(m.Get("printErr")) {
		m.Call("printErr", fmt.Sprintf(format, args...))
	}
}

// DocumentGate открывается по DOMContentLoaded либо сразу, если документ уже разобран.
func DocumentGate() readiness.Gate {
	sig := readiness.NewSignal()
	doc := js.Global().Get("document")
	if !doc.Truthy() || doc.Get("readyState").String() != "loading" {
		sig.Open()
		return sig
	}

	cb := js.FuncOf(func(js.Value, []js.Value) any {
		sig.Open()
		return nil
	})
	doc.Call("addEventListener", "DOMContentLoaded", cb)
	go func() {
		<-sig.Done()
		cb.Release()
	}()

	return sig
}

func isFunc(v js.Value) bool { return v.Type() == js.TypeFunction }

var _ handoff.Host = (*Host)(nil)
