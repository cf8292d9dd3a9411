package auth

import (
	"net/http"

	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
	"github.com/ferdiebergado/pneumodetect/internal/platform/jwt"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

// RequireSession admits requests that carry a valid session cookie and
// stores the session subject in the request context.
func RequireSession(signer jwt.Signer, cfg config.Cookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := web.FindCookie(r.Cookies(), cfg.Name)
			if err != nil {
				web.Fail(w, http.StatusUnauthorized, err, message.Unauthorized, nil)
				return
			}

			claims, err := signer.Verify(cookie.Value)
			if err != nil {
				web.Fail(w, http.StatusUnauthorized, err, message.Unauthorized, nil)
				return
			}

			ctx := user.NewContextWithUser(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
