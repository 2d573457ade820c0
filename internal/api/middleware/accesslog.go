package middleware

import (
	"net/http"
	"time"
)

// AccessLog пишет строку лога на каждый запрос вместе с идентификатором запроса
// Должен стоять после RequestID
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			format := "HTTP: %s %s, status=%d, duration=%s, request_id=%s"
			args := []interface{}{r.Method, r.URL.Path, recorder.status, time.Since(start), GetRequestID(r.Context())}
			if recorder.status >= http.StatusInternalServerError {
				logger.Error(format, args...)
				return
			}
			logger.Info(format, args...)
		})
	}
}
