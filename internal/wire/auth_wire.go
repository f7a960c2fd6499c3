package wire

import (
	"speaker-booking/internal/adaptor"
	"speaker-booking/internal/data/repository"
	"speaker-booking/pkg/middleware"
	"speaker-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Register and login share one per-IP rate limit.
	limiter := middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter))

		// POST /api/register - Create new account
		r.Post("/api/register", authHandler.Register)

		// POST /api/login - Authenticate and get session token
		r.Post("/api/login", authHandler.Login)
	})

	// POST /api/send-otp - Request a verification code
	r.Post("/api/send-otp", authHandler.SendOTP)

	// POST /api/verify-email - Verify email with OTP
	r.Post("/api/verify-email", authHandler.VerifyEmail)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/logout - Revoke current session
		r.Post("/api/logout", authHandler.Logout)
	})
}
