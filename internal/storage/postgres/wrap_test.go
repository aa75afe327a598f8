package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-qa-service/internal/storage"
)

func TestWrap_MapsDriverErrors(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		in   error
		want error
	}{
		{"no_rows", pgx.ErrNoRows, storage.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, storage.ErrAlreadyExists},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, storage.ErrNotFound},
		{"other_pg", &pgconn.PgError{Code: pgerrcode.SyntaxError}, storage.ErrQuery},
		{"ctx", context.DeadlineExceeded, storage.ErrQuery},
		{"plain", errors.New("boom"), storage.ErrQuery},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			err := wrap("op.test", tc.in)
			require.ErrorIs(t, err, tc.want)
			require.Contains(t, err.Error(), "op.test")
		})
	}
}

func TestWrap_UniqueViolation_HidesDriverDetails(t *testing.T) {
	t.Parallel()

	err := wrap("op", &pgconn.PgError{Code: pgerrcode.UniqueViolation, Message: "duplicate key value violates unique constraint"})

	var pgErr *pgconn.PgError
	require.False(t, errors.As(err, &pgErr))
	require.NotContains(t, err.Error(), "duplicate key")
}

func TestWrap_KeepsContextCause(t *testing.T) {
	t.Parallel()

	err := wrap("storage.postgres.ListQuestions", context.DeadlineExceeded)
	require.ErrorIs(t, err, storage.ErrQuery)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
