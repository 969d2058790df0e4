package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-otp-login/internal/application/login"
	"github.com/go-otp-login/internal/application/user"
	"github.com/go-otp-login/internal/config"
	"github.com/go-otp-login/internal/transport/http/handler"
	appmiddleware "github.com/go-otp-login/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	// All request work is store round-trips; a request still running after
	// this long is stuck, not slow.
	r.Use(chimiddleware.Timeout(15 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	loginSvc := login.NewService(login.ServiceDeps{
		OTPRepo:     deps.OTPRepo,
		UserRepo:    deps.UserRepo,
		Mailer:      deps.Mailer,
		SMSSender:   deps.SMSSender,
		Signer:      deps.TokenSigner,
		OTPExpiry:   cfg.OTPExpiry,
		MaxAttempts: cfg.MaxOTPAttempts,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		CounterRepo: deps.CounterRepo,
	})

	healthH := handler.NewHealthHandler()
	loginH := handler.NewLoginHandler(loginSvc)
	userH := handler.NewUserHandler(userSvc)
	meH := handler.NewMeHandler(userSvc)

	r.Get("/", healthH.Root)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check", healthH.Check)

		r.Post("/login/get_otp", loginH.GetOTP)
		r.Post("/login/submit_otp", loginH.SubmitOTP)

		r.Get("/users", userH.List)
		r.Post("/users/add", userH.Create)
		r.Get("/users/{userId}", userH.Get)
		r.Put("/users/{userId}", userH.Update)
		r.Delete("/users/{userId}", userH.Delete)

		// The one route that consumes the tokens submit_otp mints.
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.TokenSigner))
			r.Get("/me", meH.Get)
		})
	})

	return r
}
