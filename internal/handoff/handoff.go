// Package handoff описывает объект передачи (Module), через который склеенный
// бинарник и функции логирования попадают во внешний рантайм, и хост, который
// этот объект хранит и знает, объявлена ли уже точка входа рантайма.
package handoff

// Callbacks — функции логирования, которые получает рантайм.
type Callbacks struct {
	Print    func(args ...any)
	PrintErr func(args ...any)
}

// Module — объект передачи. WasmBinary всегда перезаписывается загрузчиком,
// Print и PrintErr заполняются только если не заданы заранее.
type Module struct {
	WasmBinary []byte
	Print      func(args ...any)
	PrintErr   func(args ...any)
}

// EntryPoint — внешняя функция инициализации рантайма.
type EntryPoint func(m *Module) error

// Invoker вызывает уже найденную точку входа с объектом передачи хоста.
type Invoker func() error

// Host — среда, в которую передаётся склеенный буфер.
type Host interface {
	// Publish кладёт буфер в объект передачи и дополняет недостающие колбэки.
	Publish(binary []byte, defaults Callbacks)
	// EntryPoint возвращает вызов точки входа, если она уже объявлена.
	EntryPoint() (Invoker, bool)
	// Errorf сообщает об ошибке через PrintErr объекта передачи.
	Errorf(format string, args ...any)
}
