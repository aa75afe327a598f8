package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-qa-service/internal/models"
)

// AddAccount создает новый аккаунт в БД.
func (s *Storage) AddAccount(ctx context.Context, account *models.Account) (int64, error) {
	const op = "storage.postgres.AddAccount"

	query := `
		INSERT INTO accounts(email, password)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRow(ctx, query, account.Email, account.PasswordHash).Scan(&id); err != nil {
		return 0, wrap(op, err)
	}

	return id, nil
}

// AccountByEmail находит аккаунт по email (регистронезависимо, CITEXT).
func (s *Storage) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.postgres.AccountByEmail"

	query := `
		SELECT id, email, password
		FROM accounts
		WHERE email = $1
	`

	var a models.Account
	if err := s.db.QueryRow(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash); err != nil {
		return nil, wrap(op, err)
	}

	return &a, nil
}

// AccountByID находит аккаунт по ID.
func (s *Storage) AccountByID(ctx context.Context, id int64) (*models.Account, error) {
	const op = "storage.postgres.AccountByID"

	query := `
		SELECT id, email, password
		FROM accounts
		WHERE id = $1
	`

	var a models.Account
	if err := s.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Email, &a.PasswordHash); err != nil {
		return nil, wrap(op, err)
	}

	return &a, nil
}

// UpdateEmail меняет email; занятый email — storage.ErrAlreadyExists.
func (s *Storage) UpdateEmail(ctx context.Context, id int64, email string) (*models.Account, error) {
	const op = "storage.postgres.UpdateEmail"

	query := `
		UPDATE accounts SET email = $1
		WHERE id = $2
		RETURNING id, email, password
	`

	var a models.Account
	if err := s.db.QueryRow(ctx, query, email, id).Scan(&a.ID, &a.Email, &a.PasswordHash); err != nil {
		return nil, wrap(op, err)
	}

	return &a, nil
}

// UpdatePassword заменяет хэш пароля.
func (s *Storage) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const op = "storage.postgres.UpdatePassword"

	tag, err := s.db.Exec(ctx, `UPDATE accounts SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrap(op, pgx.ErrNoRows)
	}

	return nil
}
