package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
	logctx "github.com/pribylovaa/go-qa-service/internal/pkg/log"
	"github.com/pribylovaa/go-qa-service/internal/pkg/redact"
	"github.com/pribylovaa/go-qa-service/internal/token"
)

// Authorize извлекает токен из Authorization и проверяет его.
// Два исхода отказа:
//   - заголовка нет или он пуст: KindMissingCredential;
//   - любая ошибка проверки токена: KindInvalidCredential.
//
// Хранилище не затрагивается, новые токены не выпускаются.
func Authorize(r *http.Request, codec *token.Codec, now time.Time) (models.Session, error) {
	const op = "middleware.Authorize"

	raw, ok := bearer(r.Header.Get("Authorization"))
	if !ok {
		return models.Session{}, apierrors.E(apierrors.KindMissingCredential, op, nil)
	}

	s, err := codec.Validate(raw, now)
	if err != nil {
		logctx.From(r.Context()).Debug("token_rejected", slog.String("token", redact.Token(raw)))
		return models.Session{}, apierrors.E(apierrors.KindInvalidCredential, op, err)
	}

	return s, nil
}

// RequireSession пропускает запрос дальше только с валидной сессией.
// Сессия кладётся в контекст (SessionFrom), а логгер запроса получает
// account_id. Отказ отдаётся через классификатор до вызова обработчика.
func RequireSession(codec *token.Codec, now func() time.Time) Middleware {
	if now == nil {
		now = time.Now
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := Authorize(r, codec, now())
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := WithSession(r.Context(), s)
			ctx = logctx.With(ctx, slog.Int64("account_id", s.AccountID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession кладёт сессию в контекст.
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom достаёт сессию, положенную RequireSession.
func SessionFrom(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(models.Session)
	return s, ok
}

// bearer принимает "Bearer <token>" (схема без учёта регистра) или токен
// без схемы. "Bearer" без значения считается отсутствием токена.
func bearer(h string) (string, bool) {
	h = strings.TrimSpace(h)
	if h == "" {
		return "", false
	}

	const scheme = "bearer"
	if len(h) >= len(scheme) && strings.EqualFold(h[:len(scheme)], scheme) {
		rest := h[len(scheme):]
		if rest == "" {
			return "", false
		}

		if rest[0] == ' ' || rest[0] == '\t' {
			tok := strings.TrimSpace(rest)
			return tok, tok != ""
		}
	}

	return h, true
}
