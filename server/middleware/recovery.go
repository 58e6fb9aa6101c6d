package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/kbukum/sypnna/errors"
	"github.com/kbukum/sypnna/logger"
)

// Recovery returns middleware that recovers from panics, logs the stack and
// answers with a JSON 500.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					log.WithContext(r.Context()).Error("Panic recovered", logger.MergeWithError(logger.Fields(
						logger.FieldMethod, r.Method,
						logger.FieldPath, r.URL.Path,
						"stack", string(debug.Stack()),
					), err))
					body := apperrors.Internal(err).ToResponse()
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(body)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
