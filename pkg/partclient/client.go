package partclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sir_venger/wasm_merge/internal/metrics"
	"github.com/sir_venger/wasm_merge/internal/models"
	"github.com/sir_venger/wasm_merge/pkg/partproto"
)

const (
	// MaxPartSize — предел размера одной части, заявленного сервером или фактического.
	MaxPartSize int64 = 1 << 30
	// maxPrealloc ограничивает предварительное выделение по заявленному размеру.
	maxPrealloc int64 = 64 << 20
)

type Client interface {
	// GetPart Достать часть целиком по имени относительно baseURL
	GetPart(ctx context.Context, baseURL, name string) ([]byte, error)
}

type httpClient struct {
	c *http.Client
}

// New создаёт HTTP-клиент; nil означает http.Client по умолчанию.
func New(c *http.Client) Client {
	if c == nil {
		c = &http.Client{}
	}
	return &httpClient{c: c}
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	progressKey
)

// WithRequestID привязывает идентификатор запуска к запросам частей.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithProgress включает общий индикатор прогресса для parts частей, выводимый в out.
func WithProgress(ctx context.Context, out io.Writer, parts int) context.Context {
	return context.WithValue(ctx, progressKey, newProgressBar(out, "Loading parts", parts))
}

// PartURL собирает адрес части; пустой baseURL оставляет имя как есть.
func PartURL(baseURL, name string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return name
	}
	return fmt.Sprintf(partproto.PartPathFormat, baseURL, name)
}

// GetPart скачивает часть и возвращает её содержимое.
// Любой ответ вне диапазона 2xx превращается в *models.PartError с кодом статуса.
func (h *httpClient) GetPart(ctx context.Context, baseURL, name string) ([]byte, error) {
	bar, _ := ctx.Value(progressKey).(*progressBar)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, PartURL(baseURL, name), nil)
	if err != nil {
		bar.done(err)
		return nil, &models.PartError{Part: name, Err: err}
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		req.Header.Set(partproto.HeaderRequestID, id)
	}

	resp, err := h.c.Do(req)
	if err != nil {
		metrics.PartFetches.WithLabelValues(name, metrics.Status(0)).Inc()
		bar.done(err)
		return nil, &models.PartError{Part: name, Err: err}
	}
	defer resp.Body.Close()

	metrics.PartFetches.WithLabelValues(name, metrics.Status(resp.StatusCode)).Inc()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		perr := &models.PartError{Part: name, StatusCode: resp.StatusCode}
		bar.done(perr)
		return nil, perr
	}

	expectedSize := resp.ContentLength
	if expectedSize <= 0 {
		if header := resp.Header.Get(partproto.HeaderPartSize); header != "" {
			if sz, parseErr := strconv.ParseInt(header, 10, 64); parseErr == nil && sz > 0 {
				expectedSize = sz
			}
		}
	}
	if expectedSize > MaxPartSize {
		perr := &models.PartError{Part: name, Err: tooLarge(expectedSize)}
		bar.done(perr)
		return nil, perr
	}
	bar.track(expectedSize)

	body := newProgressReadCloser(resp.Body, bar)
	var b []byte
	if expectedSize > 0 {
		b = make([]byte, 0, min(expectedSize, maxPrealloc))
	}
	b, err = readAll(io.LimitReader(body, MaxPartSize+1), b)
	if err == nil && int64(len(b)) > MaxPartSize {
		err = tooLarge(int64(len(b)))
		if pr, ok := body.(*progressReadCloser); ok {
			pr.finish(err)
		}
	}
	if err != nil {
		return nil, &models.PartError{Part: name, Err: err}
	}
	metrics.PartBytes.Add(float64(len(b)))

	return b, nil
}

func tooLarge(size int64) error {
	return fmt.Errorf("%w: %d bytes, limit %d", models.ErrPartTooLarge, size, MaxPartSize)
}

// readAll дочитывает r в buf, используя заранее выделенную ёмкость.
func readAll(r io.Reader, buf []byte) ([]byte, error) {
	for {
		if len(buf) == cap(buf) {
			buf = append(buf, 0)[:len(buf)]
		}
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return buf, err
		}
	}
}
