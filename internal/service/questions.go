package service

import (
	"context"
	"fmt"
	"log/slog"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
	logctx "github.com/pribylovaa/go-qa-service/internal/pkg/log"
)

// ListQuestions возвращает страницу вопросов, по возможности из кэша.
func (s *Service) ListQuestions(ctx context.Context, page models.Pagination) ([]models.Question, error) {
	const op = "service.questions.ListQuestions"

	key := s.cacheKey(ctx, page)
	if key != "" {
		qs, ok, err := s.qcache.Get(ctx, key)
		switch {
		case err != nil:
			cacheFailed(ctx, "get", err)
		case ok:
			return qs, nil
		}
	}

	qs, err := s.storage.Questions(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if key != "" {
		if err := s.qcache.Set(ctx, key, qs); err != nil {
			cacheFailed(ctx, "set", err)
		}
	}

	return qs, nil
}

// AddQuestion сохраняет вопрос от имени аккаунта.
func (s *Service) AddQuestion(ctx context.Context, accountID int64, q models.NewQuestion) (*models.Question, error) {
	const op = "service.questions.AddQuestion"

	out, err := s.storage.AddQuestion(ctx, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)

	return out, nil
}

// UpdateQuestion обновляет вопрос; доступно только автору.
func (s *Service) UpdateQuestion(ctx context.Context, accountID, id int64, q models.NewQuestion) (*models.Question, error) {
	const op = "service.questions.UpdateQuestion"

	if err := s.ownsQuestion(ctx, op, id, accountID); err != nil {
		return nil, err
	}

	out, err := s.storage.UpdateQuestion(ctx, id, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)

	return out, nil
}

// DeleteQuestion удаляет вопрос (и его ответы); доступно только автору.
func (s *Service) DeleteQuestion(ctx context.Context, accountID, id int64) error {
	const op = "service.questions.DeleteQuestion"

	if err := s.ownsQuestion(ctx, op, id, accountID); err != nil {
		return err
	}

	if err := s.storage.DeleteQuestion(ctx, id, accountID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.invalidate(ctx)

	return nil
}

// ownsQuestion: отсутствующий вопрос неотличим от чужого.
func (s *Service) ownsQuestion(ctx context.Context, op string, id, accountID int64) error {
	ok, err := s.storage.IsQuestionOwner(ctx, id, accountID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		return apierrors.E(apierrors.KindUnauthorized, op, nil)
	}

	return nil
}

func (s *Service) cacheKey(ctx context.Context, page models.Pagination) string {
	if s.qcache == nil {
		return ""
	}

	key, err := s.qcache.Key(ctx, page)
	if err != nil {
		cacheFailed(ctx, "key", err)
		return ""
	}

	return key
}

func (s *Service) invalidate(ctx context.Context) {
	if s.qcache == nil {
		return
	}

	if err := s.qcache.Invalidate(ctx); err != nil {
		cacheFailed(ctx, "invalidate", err)
	}
}

func cacheFailed(ctx context.Context, stage string, err error) {
	logctx.From(ctx).Warn("question_cache_failed",
		slog.String("stage", stage),
		slog.String("err", err.Error()),
	)
}
