package handoff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_PublishKeepsCallbacks(t *testing.T) {
	r := NewRegistry()
	var printed []any
	own := func(args ...any) { printed = append(printed, args...) }
	r.SetModule(&Module{Print: own, WasmBinary: []byte("old")})

	var defaultErr int
	r.Publish([]byte("new"), Callbacks{
		Print:    func(...any) { t.Fatal("default print must not replace the caller's") },
		PrintErr: func(...any) { defaultErr++ },
	})

	m := r.Module()
	require.Equal(t, []byte("new"), m.WasmBinary)
	m.Print("hi")
	require.Equal(t, []any{"hi"}, printed)
	m.PrintErr("boom")
	require.Equal(t, 1, defaultErr)
}

func TestRegistry_ModuleCreatedOnce(t *testing.T) {
	r := NewRegistry()
	require.Same(t, r.Module(), r.Module())
}

func TestRegistry_EntryPoint(t *testing.T) {
	r := NewRegistry()
	_, ok := r.EntryPoint()
	require.False(t, ok)

	var got *Module
	r.Register(func(m *Module) error { got = m; return nil })
	inv, ok := r.EntryPoint()
	require.True(t, ok)
	require.NoError(t, inv())
	require.Same(t, r.Module(), got)
}

func TestRegistry_ErrorfWithoutSink(t *testing.T) {
	r := NewRegistry()
	require.NotPanics(t, func() { r.Errorf("x %d", 1) })
}

func TestDefault(t *testing.T) {
	require.Same(t, Default(), Default())
}
