package app

import (
	"net/http"

	"github.com/ferdiebergado/pneumodetect/internal/auth"
	"github.com/ferdiebergado/pneumodetect/internal/config"
	"github.com/ferdiebergado/pneumodetect/internal/middleware"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/message"
	"github.com/ferdiebergado/pneumodetect/internal/pkg/web"
	"github.com/ferdiebergado/pneumodetect/internal/platform/router"
	"github.com/ferdiebergado/pneumodetect/internal/platform/validation"
	"github.com/ferdiebergado/pneumodetect/internal/prediction"
	"github.com/ferdiebergado/pneumodetect/internal/user"
)

type mw = func(http.Handler) http.Handler

func mountRootRoutes(r router.Router) {
	r.Get("/{$}", func(w http.ResponseWriter, _ *http.Request) {
		web.OK(w, http.StatusOK, map[string]string{"message": message.Welcome})
	})
}

func mountAuthRoutes(r router.Router, handler *auth.Handler, userHandler *user.Handler,
	validator validation.Validator, cfg *config.Config, limiter *middleware.RateLimiter, session mw,
) {
	maxBodySize := cfg.Server.MaxBodyBytes
	checkJSON := middleware.CheckContentType(web.MimeJSON)

	r.Group("/auth", func(gr router.Router) {
		gr.Post("/register", handler.Register,
			limiter.Middleware,
			checkJSON,
			middleware.DecodePayload[auth.RegisterRequest](maxBodySize),
			middleware.ValidateInput[auth.RegisterRequest](validator))
		gr.Get("/verify-email", handler.VerifyEmail, limiter.Middleware)
		gr.Post("/resend-verification", handler.ResendVerification,
			limiter.Middleware,
			checkJSON,
			middleware.DecodePayload[auth.ResendRequest](maxBodySize),
			middleware.ValidateInput[auth.ResendRequest](validator))
		gr.Post("/login", handler.Login,
			limiter.Middleware,
			checkJSON,
			middleware.DecodePayload[auth.LoginRequest](maxBodySize),
			middleware.ValidateInput[auth.LoginRequest](validator))
		gr.Post("/logout", handler.Logout)
		gr.Get("/me", userHandler.Me, session)
	})
}

func mountPredictionRoutes(r router.Router, handler *prediction.Handler, limiter *middleware.RateLimiter, session mw) {
	r.Post("/predict", handler.Predict, session)
	r.Post("/guest-predict", handler.GuestPredict, limiter.Middleware)
	r.Get("/history", handler.History, session)
}
