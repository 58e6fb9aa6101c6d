package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/sypnna/logger"
)

// probePaths are served without a log line.
var probePaths = map[string]bool{
	"/health": true,
	"/info":   true,
}

// RequestLogger logs one line per request. The level follows the status:
// 5xx at error, 4xx at warn, everything else at info.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if probePaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := newResponseRecorder(w)
			next.ServeHTTP(rec, r)

			status := rec.Status()
			fields := logger.RequestFields(r.Method, r.URL.Path, status, rec.written, time.Since(start))
			reqLog := log.WithContext(r.Context())
			switch {
			case status >= http.StatusInternalServerError:
				reqLog.Error("Request completed", fields)
			case status >= http.StatusBadRequest:
				reqLog.Warn("Request completed", fields)
			default:
				reqLog.Info("Request completed", fields)
			}
		})
	}
}
