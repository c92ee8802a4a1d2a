package partclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует общий ASCII-индикатор для всех частей, скачиваемых параллельно.
// Ожидаемый объём растёт по мере того, как приходят заголовки ответов;
// строка закрывается, когда завершены все parts частей или одна из них упала.
type progressBar struct {
	out           io.Writer
	prefix        string
	total         int64
	current       int64
	pending       int
	lastRender    time.Time
	lastLineWidth int
	finished      bool
	mu            sync.Mutex
}

func newProgressBar(out io.Writer, prefix string, parts int) *progressBar {
	return &progressBar{
		out:     out,
		prefix:  prefix,
		pending: parts,
	}
}

// track добавляет ожидаемый размер очередной части (<=0 — неизвестен).
func (p *progressBar) track(expected int64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if expected > 0 {
		p.total += expected
	}
	p.mu.Unlock()
	p.render(true)
}

func (p *progressBar) AddBytes(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	p.current += n
	p.mu.Unlock()
	p.render(false)
}

func (p *progressBar) render(force bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		p.mu.Unlock()
		return
	}

	line := p.lineLocked()
	padding := ""
	if p.lastLineWidth > len(line) {
		padding = strings.Repeat(" ", p.lastLineWidth-len(line))
	}
	p.lastLineWidth = len(line)
	p.lastRender = now
	fmt.Fprintf(p.out, "\r%s%s", line, padding)
	p.mu.Unlock()
}

func (p *progressBar) lineLocked() string {
	var builder strings.Builder
	builder.Grow(len(p.prefix) + 64)
	builder.WriteString(p.prefix)
	builder.WriteByte(' ')

	if p.total > 0 {
		ratio := float64(p.current) / float64(p.total)
		if ratio > 1 {
			ratio = 1
		}
		filled := int(ratio*float64(progressBarWidth) + 0.5)
		if filled > progressBarWidth {
			filled = progressBarWidth
		}
		builder.WriteByte('[')
		builder.WriteString(strings.Repeat("=", filled))
		builder.WriteString(strings.Repeat(" ", progressBarWidth-filled))
		builder.WriteString("] ")
		builder.WriteString(fmt.Sprintf("%3d%% ", int(ratio*100+0.5)))
		builder.WriteString(humanBytes(p.current))
		builder.WriteByte('/')
		builder.WriteString(humanBytes(p.total))
	} else {
		builder.WriteString(humanBytes(p.current))
		builder.WriteString(" transferred")
	}

	return builder.String()
}

// done отмечает завершение одной части; после последней строка закрывается.
func (p *progressBar) done(err error) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.pending--
	if err == nil && p.pending > 0 {
		return
	}
	p.finished = true

	line := p.lineLocked()
	suffix := " ✓"
	if err != nil {
		suffix = fmt.Sprintf(" ✗ %v", err)
	}
	padding := ""
	if p.lastLineWidth > len(line)+len(suffix) {
		padding = strings.Repeat(" ", p.lastLineWidth-len(line)-len(suffix))
	}
	fmt.Fprintf(p.out, "\r%s%s%s\n", line, suffix, padding)
}

type progressReadCloser struct {
	inner io.ReadCloser
	bar   *progressBar
	once  sync.Once
}

func newProgressReadCloser(inner io.ReadCloser, bar *progressBar) io.ReadCloser {
	if bar == nil || inner == nil {
		return inner
	}

	return &progressReadCloser{
		inner: inner,
		bar:   bar,
	}
}

func (p *progressReadCloser) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	if n > 0 {
		p.bar.AddBytes(int64(n))
	}
	if err != nil {
		p.finish(err)
	}
	return n, err
}

func (p *progressReadCloser) Close() error {
	err := p.inner.Close()
	p.finish(err)
	return err
}

func (p *progressReadCloser) finish(err error) {
	p.once.Do(func() {
		if err == io.EOF {
			err = nil
		}
		p.bar.done(err)
	})
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
