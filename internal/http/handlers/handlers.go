// handlers — REST-обработчики Q&A-сервиса поверх service.Service.
//
// Тела запросов разбираются строго (неизвестные поля запрещены),
// нормализуются mold (trim, lcase) и проверяются validator.
// Любая ошибка отдаётся через apierrors.WriteError.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/http/middleware"
	"github.com/pribylovaa/go-qa-service/internal/service"
)

// maxBodyBytes — предел размера тела запроса.
const maxBodyBytes = 1 << 20

var (
	formModifier  = modifiers.New()
	formValidator = validator.New(validator.WithRequiredStructEnabled())
)

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// errTrailingData — после JSON-значения в теле есть что-то ещё.
var errTrailingData = errors.New("unexpected data after JSON body")

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля и
// любые данные после первого значения.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return err
	}

	switch err := dec.Decode(&struct{}{}); {
	case err == nil:
		return errTrailingData
	case !errors.Is(err, io.EOF):
		return fmt.Errorf("%w: %w", errTrailingData, err)
	}

	return nil
}

// bind читает тело в value, нормализует и валидирует его.
func bind(w http.ResponseWriter, r *http.Request, value any) error {
	const op = "handlers.bind"

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	// Ошибки вида "unknown field" не типизированы, поэтому категория
	// назначается здесь.
	if err := decodeStrict(r, value); err != nil {
		return apierrors.E(apierrors.KindValidation, op, err)
	}

	if err := formModifier.Struct(r.Context(), value); err != nil {
		return apierrors.E(apierrors.KindValidation, op, err)
	}

	if err := formValidator.Struct(value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// pathID разбирает числовой параметр маршрута.
func pathID(r *http.Request, name string) (int64, error) {
	const op = "handlers.pathID"

	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if id <= 0 {
		return 0, apierrors.E(apierrors.KindValidation, op, fmt.Errorf("%s must be positive", name))
	}

	return id, nil
}

// accountID — владелец запроса из сессии, положенной RequireSession.
func accountID(r *http.Request) (int64, error) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		return 0, apierrors.E(apierrors.KindMissingCredential, "handlers.accountID", nil)
	}

	return s.AccountID, nil
}
