package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/pribylovaa/go-qa-service/internal/hasher"
	"github.com/pribylovaa/go-qa-service/internal/storage"
	"github.com/pribylovaa/go-qa-service/internal/token"
)

// rule — одна строка таблицы классификации.
type rule struct {
	name  string
	match func(error) (Kind, bool)
}

// rules проверяются сверху вниз, выигрывает первое совпадение.
// Дубликат и истёкший дедлайн запроса проверяются раньше общего сбоя
// хранилища: postgres.wrap сохраняет причину в цепочке.
var rules = []rule{
	{"typed", KindOf},
	{"duplicate", is(KindDuplicateResource, storage.ErrAlreadyExists)},
	{"deadline", is(KindUpstreamFailure, context.DeadlineExceeded)},
	{"storage", is(KindStorageFailure, storage.ErrNotFound, storage.ErrQuery)},
	{"token", is(KindInvalidCredential, token.ErrMalformed, token.ErrExpired, token.ErrNotYetValid)},
	{"empty_secret", is(KindValidation, hasher.ErrTooShort)},
	{"hash", is(KindCredentialHash, hasher.ErrMalformedHash, hasher.ErrIncompatibleVersion)},
	{"config", is(KindConfiguration, token.ErrKeyTooShort)},
	{"decode", decodeFailure},
}

// Classify — тотальная функция: любая ошибка получает ровно одну категорию.
// nil считается ошибкой вызова и даёт KindInternal; нераспознанное — 404.
func Classify(err error) Kind {
	if err == nil {
		return KindInternal
	}

	for _, r := range rules {
		if k, ok := r.match(err); ok {
			return k
		}
	}

	return KindRouteNotFound
}

func is(kind Kind, targets ...error) func(error) (Kind, bool) {
	return func(err error) (Kind, bool) {
		for _, t := range targets {
			if stderrors.Is(err, t) {
				return kind, true
			}
		}

		return 0, false
	}
}

func decodeFailure(err error) (Kind, bool) {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
		numErr    *strconv.NumError
		validErrs validator.ValidationErrors
	)

	switch {
	case stderrors.As(err, &syntaxErr),
		stderrors.As(err, &typeErr),
		stderrors.As(err, &maxErr),
		stderrors.As(err, &numErr),
		stderrors.As(err, &validErrs),
		stderrors.Is(err, io.EOF),
		stderrors.Is(err, io.ErrUnexpectedEOF):
		return KindValidation, true
	}

	return 0, false
}
