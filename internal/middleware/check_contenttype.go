package middleware

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
)

// CheckContentType admits only requests whose body is declared as mimeType.
func CheckContentType(mimeType string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Debug("Checking Content-Type...")
			contentType := r.Header.Get(web.HeaderContentType)

			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != mimeType {
				web.Fail(w, http.StatusUnsupportedMediaType, fmt.Errorf("invalid content-type: %q", contentType), message.InvalidInput, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
