package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики загрузчика и сервера частей:
// - part_fetches_total: запросы частей по имени и коду ответа (0 — ответа нет)
// - part_fetched_bytes_total: полученные байты
// - merged_bytes: размер последнего склеенного буфера
// - entrypoint_polls_total: проверки наличия точки входа
// - entrypoint_invocations_total: вызовы точки входа по результату
// - parts_served_total: отданные сервером части по коду ответа
var (
	PartFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "part_fetches_total", Help: "Part fetch attempts by part and HTTP status"},
		[]string{"part", "status"},
	)
	PartBytes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "part_fetched_bytes_total", Help: "Bytes received across all parts"},
	)
	MergedBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "merged_bytes", Help: "Size of the last merged buffer"},
	)
	EntryPointPolls = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "entrypoint_polls_total", Help: "Entry point availability checks"},
	)
	Invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "entrypoint_invocations_total", Help: "Entry point invocations by result"},
		[]string{"result"},
	)
	PartsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "parts_served_total", Help: "Parts served by HTTP status"},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(PartFetches, PartBytes, MergedBytes, EntryPointPolls, Invocations, PartsServed)
}

// Status превращает HTTP-код в значение метки.
func Status(code int) string { return strconv.Itoa(code) }

// Handler возвращает стандартный обработчик экспозиции Prometheus.
func Handler() http.Handler { return promhttp.Handler() }
