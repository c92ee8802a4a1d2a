// Package partproto описывает протокол HTTP-взаимодействия загрузчика и сервера частей.
package partproto

// Параметры протокола раздачи частей.
const (
	PartPathFormat  = "%s/%s"
	HeaderPartSize  = "X-Size"
	HeaderRequestID = "X-Request-Id"
	ContentType     = "application/octet-stream"
)
