package errors

import (
	"log/slog"
	"net/http"
)

// Kind — закрытый перечень категорий отказов.
// Нулевое значение — KindRouteNotFound: неклассифицированное превращается в 404.
type Kind uint8

const (
	KindRouteNotFound Kind = iota
	KindMissingCredential
	KindInvalidCredential
	KindWrongSecret
	KindUnauthorized
	KindValidation
	KindDuplicateResource
	KindStorageFailure
	KindCredentialHash
	KindUpstreamFailure
	KindConfiguration
	KindCORSForbidden
	KindInternal

	kindCount
)

// Policy — ответ, который получает клиент для данного Kind.
type Policy struct {
	Status  int
	Code    string
	Message string
	Level   slog.Level
}

// policies индексируется Kind; каждая категория имеет ровно одну запись.
var policies = [kindCount]Policy{
	KindRouteNotFound:     {http.StatusNotFound, "route_not_found", "Route not found", slog.LevelWarn},
	KindMissingCredential: {http.StatusUnauthorized, "missing_credential", "Missing credentials", slog.LevelError},
	KindInvalidCredential: {http.StatusUnauthorized, "invalid_credential", "Invalid credentials", slog.LevelError},
	KindWrongSecret:       {http.StatusUnauthorized, "wrong_secret", "Wrong E-Mail/Password combination", slog.LevelError},
	KindUnauthorized:      {http.StatusUnauthorized, "unauthorized", "No permission to change underlying resource", slog.LevelError},
	KindValidation:        {http.StatusUnprocessableEntity, "validation_error", "Invalid request data", slog.LevelError},
	KindDuplicateResource: {http.StatusUnprocessableEntity, "duplicate_resource", "Account already exists", slog.LevelError},
	KindStorageFailure:    {http.StatusUnprocessableEntity, "storage_failure", "Cannot update data", slog.LevelError},
	KindCredentialHash:    {http.StatusUnprocessableEntity, "credential_hash", "Cannot verify password", slog.LevelError},
	KindUpstreamFailure:   {http.StatusInternalServerError, "upstream_failure", "Internal Server Error", slog.LevelError},
	KindConfiguration:     {http.StatusInternalServerError, "configuration_error", "Internal Server Error", slog.LevelError},
	KindCORSForbidden:     {http.StatusForbidden, "cors_forbidden", "CORS request forbidden", slog.LevelError},
	KindInternal:          {http.StatusInternalServerError, "internal", "Internal Server Error", slog.LevelError},
}

// PolicyFor возвращает политику для k. Значения вне перечня трактуются как 404.
func PolicyFor(k Kind) Policy {
	if k >= kindCount {
		return policies[KindRouteNotFound]
	}

	return policies[k]
}

// Kinds перечисляет все определённые категории.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}

	return out
}

func (k Kind) String() string {
	return PolicyFor(k).Code
}
