package service

import (
	"context"
	"fmt"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/models"
)

// ListAnswers возвращает страницу ответов на вопрос.
func (s *Service) ListAnswers(ctx context.Context, questionID int64, page models.Pagination) ([]models.Answer, error) {
	const op = "service.answers.ListAnswers"

	out, err := s.storage.Answers(ctx, questionID, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// AddAnswer сохраняет ответ от имени аккаунта.
// Ответ на несуществующий вопрос даёт storage.ErrNotFound.
func (s *Service) AddAnswer(ctx context.Context, accountID int64, a models.NewAnswer) (*models.Answer, error) {
	const op = "service.answers.AddAnswer"

	out, err := s.storage.AddAnswer(ctx, a, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateAnswer меняет текст ответа; доступно только автору.
func (s *Service) UpdateAnswer(ctx context.Context, accountID, id int64, content string) (*models.Answer, error) {
	const op = "service.answers.UpdateAnswer"

	if err := s.ownsAnswer(ctx, op, id, accountID); err != nil {
		return nil, err
	}

	out, err := s.storage.UpdateAnswer(ctx, id, content, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// DeleteAnswer удаляет ответ; доступно только автору.
func (s *Service) DeleteAnswer(ctx context.Context, accountID, id int64) error {
	const op = "service.answers.DeleteAnswer"

	if err := s.ownsAnswer(ctx, op, id, accountID); err != nil {
		return err
	}

	if err := s.storage.DeleteAnswer(ctx, id, accountID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) ownsAnswer(ctx context.Context, op string, id, accountID int64) error {
	ok, err := s.storage.IsAnswerOwner(ctx, id, accountID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		return apierrors.E(apierrors.KindUnauthorized, op, nil)
	}

	return nil
}
