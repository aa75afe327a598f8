package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
)

var (
	// ErrPaginationPair — передан только один из limit/offset.
	ErrPaginationPair = errors.New("limit and offset must be given together")
	// ErrPaginationRange — отрицательное значение.
	ErrPaginationRange = errors.New("limit and offset must not be negative")
)

// parsePagination: без параметров — все строки; иначе нужны оба.
func parsePagination(q url.Values) (models.Pagination, error) {
	const op = "handlers.parsePagination"

	_, hasLimit := q["limit"]
	_, hasOffset := q["offset"]

	if !hasLimit && !hasOffset {
		return models.Pagination{}, nil
	}

	if !hasLimit || !hasOffset {
		return models.Pagination{}, apierrors.E(apierrors.KindValidation, op, ErrPaginationPair)
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil {
		return models.Pagination{}, fmt.Errorf("%s: %w", op, err)
	}

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil {
		return models.Pagination{}, fmt.Errorf("%s: %w", op, err)
	}

	if limit < 0 || offset < 0 {
		return models.Pagination{}, apierrors.E(apierrors.KindValidation, op, ErrPaginationRange)
	}

	return models.Pagination{Limit: &limit, Offset: offset}, nil
}
