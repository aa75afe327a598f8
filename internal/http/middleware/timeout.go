package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
)

// Timeout ограничивает время обработки запроса. Уже заданный deadline
// не переопределяется; d <= 0 отключает мидлвар.
//
// Если deadline истёк, а обработчик так ничего и не ответил, клиент
// получает upstream_failure.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			sw := newStatusWriter(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(sw, r)

			if sw.status == 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				apierrors.WriteError(w, r, apierrors.E(apierrors.KindUpstreamFailure, "middleware.Timeout", ctx.Err()))
			}
		})
	}
}
