package middleware

import (
	"net/http"
)

// Middleware оборачивает http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain строит цепочку: первый мидлвар списка оказывается внешним.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusWriter запоминает код ответа и число записанных байт —
// их читают логирование и метрики после обработки запроса.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Write фиксирует неявный 200: net/http выставляет его при первой записи
// без явного WriteHeader.
func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}
