package middleware

import (
	"net/http"

	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
)

const msgRequestAborted = "Request cancelled or timeout"

// ContextGuard refuses requests whose context is already done.
func ContextGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.Context().Err(); err != nil {
			web.Fail(w, http.StatusRequestTimeout, err, msgRequestAborted, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
