package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
	logctx "github.com/pribylovaa/go-qa-service/internal/pkg/log"
	"github.com/pribylovaa/go-qa-service/internal/pkg/redact"
	"github.com/pribylovaa/go-qa-service/internal/storage"
	"github.com/pribylovaa/go-qa-service/internal/token"
)

// Register создаёт аккаунт и сразу выпускает токен сессии.
// Email ожидается уже нормализованным (trim, lower case).
func (s *Service) Register(ctx context.Context, email, password string) (models.AccountInfo, string, error) {
	const op = "service.accounts.Register"

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return models.AccountInfo{}, "", fmt.Errorf("%s: %w", op, err)
	}

	acc := &models.Account{Email: email, PasswordHash: hash}

	id, err := s.storage.AddAccount(ctx, acc)
	if err != nil {
		return models.AccountInfo{}, "", fmt.Errorf("%s: %w", op, err)
	}
	acc.ID = id

	tok, err := s.issue(id)
	if err != nil {
		return models.AccountInfo{}, "", fmt.Errorf("%s: %w", op, err)
	}

	logctx.From(ctx).Info("account_registered",
		slog.Int64("account_id", id),
		slog.String("email", redact.Email(email)),
	)

	return acc.Info(), tok, nil
}

// Login проверяет пароль и выпускает токен сессии.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "service.accounts.Login"

	acc, err := s.storage.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apierrors.E(apierrors.KindWrongSecret, op, err)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.hasher.Verify(acc.PasswordHash, []byte(password))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		return "", apierrors.E(apierrors.KindWrongSecret, op, nil)
	}

	tok, err := s.issue(acc.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return tok, nil
}

// AccountInfo возвращает публичные данные аккаунта.
func (s *Service) AccountInfo(ctx context.Context, accountID int64) (models.AccountInfo, error) {
	const op = "service.accounts.AccountInfo"

	acc, err := s.storage.AccountByID(ctx, accountID)
	if err != nil {
		return models.AccountInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	return acc.Info(), nil
}

// UpdateAccount меняет email аккаунта.
func (s *Service) UpdateAccount(ctx context.Context, accountID int64, email string) (models.AccountInfo, error) {
	const op = "service.accounts.UpdateAccount"

	acc, err := s.storage.UpdateEmail(ctx, accountID, email)
	if err != nil {
		return models.AccountInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	return acc.Info(), nil
}

// UpdatePassword хэширует новый пароль и сохраняет хэш.
func (s *Service) UpdatePassword(ctx context.Context, accountID int64, password string) error {
	const op = "service.accounts.UpdatePassword"

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdatePassword(ctx, accountID, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logctx.From(ctx).Info("password_updated", slog.Int64("account_id", accountID))

	return nil
}

func (s *Service) issue(accountID int64) (string, error) {
	return s.codec.Issue(token.NewSession(accountID, s.now()))
}
