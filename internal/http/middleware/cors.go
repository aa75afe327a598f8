package middleware

import (
	"net/http"
	"slices"
	"strings"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	corsHeaders = []string{"content-type", "authorization"}
)

// CORS разрешает запросы с источников из origins ("*" — любой), методы
// GET/POST/PUT/DELETE и заголовки Content-Type, Authorization.
// Preflight с чем-то сверх этого и запрос с чужого Origin получают
// KindCORSForbidden.
func CORS(origins []string) Middleware {
	anyOrigin := slices.Contains(origins, "*")

	allowed := func(origin string) bool {
		return anyOrigin || slices.Contains(origins, origin)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.CORS"

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowed(origin) {
				apierrors.WriteError(w, r, apierrors.E(apierrors.KindCORSForbidden, op, nil))
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			if anyOrigin {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}

			reqMethod := r.Header.Get("Access-Control-Request-Method")
			if r.Method != http.MethodOptions || reqMethod == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !slices.Contains(corsMethods, reqMethod) || !headersAllowed(r.Header.Get("Access-Control-Request-Headers")) {
				apierrors.WriteError(w, r, apierrors.E(apierrors.KindCORSForbidden, op, nil))
				return
			}

			h.Set("Access-Control-Allow-Methods", strings.Join(corsMethods, ", "))
			h.Set("Access-Control-Allow-Headers", strings.Join(corsHeaders, ", "))
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func headersAllowed(list string) bool {
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		if !slices.Contains(corsHeaders, name) {
			return false
		}
	}

	return true
}
