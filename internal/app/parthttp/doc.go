// Package parthttp реализует сервер частей — HTTP-интерфейс, раздающий файлы частей
// из локального каталога только на чтение. Основные эндпоинты:
//   - GET /{name} — отдаёт часть как application/octet-stream вместе с X-Size.
//   - HEAD /{name} — возвращает только заголовки (размер части).
//   - GET /health — отдаёт число частей и их суммарный размер.
//   - GET /metrics — метрики Prometheus.
package parthttp
