package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/http/handlers"
	"github.com/pribylovaa/go-qa-service/internal/http/middleware"
	"github.com/pribylovaa/go-qa-service/internal/service"
	"github.com/pribylovaa/go-qa-service/internal/token"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger         *slog.Logger
	Timeout        time.Duration
	AllowedOrigins []string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, codec *token.Codec, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.RequestID(),          // X-Request-Id до логирования
		middleware.Logging(opts.Logger), // request-scoped логгер в контексте
		middleware.Recover(),            // паника пишется в лог запроса
		middleware.Metrics(),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	root.NotFound(apierrors.NotFound)
	root.MethodNotAllowed(apierrors.MethodNotAllowed)

	h := handlers.New(svc)
	auth := middleware.RequireSession(codec, svc.Now)

	registerRoutes(root, h, auth)

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.Middleware) {
	// публичные
	r.Get("/questions", h.ListQuestions)
	r.Get("/questions/{id}/answers", h.ListAnswers)
	r.Post("/registration", h.Register)
	r.Post("/login", h.Login)

	// с сессией
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/questions", h.AddQuestion)
		r.Put("/questions/{id}", h.UpdateQuestion)
		r.Delete("/questions/{id}", h.DeleteQuestion)

		r.Post("/answers", h.AddAnswer)
		r.Put("/answers/{id}", h.UpdateAnswer)
		r.Delete("/answers/{id}", h.DeleteAnswer)

		r.Get("/accounts/me", h.AccountInfo)
		r.Put("/accounts", h.UpdateAccount)
		r.Put("/accounts/update_password", h.UpdatePassword)
	})
}
