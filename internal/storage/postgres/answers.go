package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-qa-service/internal/models"
)

// Answers возвращает страницу ответов на вопрос questionID.
func (s *Storage) Answers(ctx context.Context, questionID int64, page models.Pagination) ([]models.Answer, error) {
	const op = "storage.postgres.Answers"

	query := `
		SELECT id, content, corresponding_question
		FROM answers
		WHERE corresponding_question = $1
		ORDER BY id
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, questionID, page.Limit, page.Offset)
	if err != nil {
		return nil, wrap(op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Answer, error) {
		return scanAnswer(row)
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	return out, nil
}

// AddAnswer создает ответ; несуществующий вопрос — storage.ErrNotFound.
func (s *Storage) AddAnswer(ctx context.Context, a models.NewAnswer, accountID int64) (*models.Answer, error) {
	const op = "storage.postgres.AddAnswer"

	query := `
		INSERT INTO answers (content, corresponding_question, account_id)
		VALUES ($1, $2, $3)
		RETURNING id, content, corresponding_question
	`

	out, err := scanAnswer(s.db.QueryRow(ctx, query, a.Content, a.QuestionID, accountID))
	if err != nil {
		return nil, wrap(op, err)
	}

	return &out, nil
}

// UpdateAnswer обновляет текст ответа, если он принадлежит accountID.
func (s *Storage) UpdateAnswer(ctx context.Context, id int64, content string, accountID int64) (*models.Answer, error) {
	const op = "storage.postgres.UpdateAnswer"

	query := `
		UPDATE answers SET content = $1
		WHERE id = $2 AND account_id = $3
		RETURNING id, content, corresponding_question
	`

	out, err := scanAnswer(s.db.QueryRow(ctx, query, content, id, accountID))
	if err != nil {
		return nil, wrap(op, err)
	}

	return &out, nil
}

// DeleteAnswer удаляет ответ accountID.
func (s *Storage) DeleteAnswer(ctx context.Context, id, accountID int64) error {
	const op = "storage.postgres.DeleteAnswer"

	tag, err := s.db.Exec(ctx, `DELETE FROM answers WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrap(op, pgx.ErrNoRows)
	}

	return nil
}

// IsAnswerOwner сообщает, принадлежит ли ответ id аккаунту accountID.
func (s *Storage) IsAnswerOwner(ctx context.Context, id, accountID int64) (bool, error) {
	const op = "storage.postgres.IsAnswerOwner"

	query := `SELECT EXISTS (SELECT 1 FROM answers WHERE id = $1 AND account_id = $2)`

	var ok bool
	if err := s.db.QueryRow(ctx, query, id, accountID).Scan(&ok); err != nil {
		return false, wrap(op, err)
	}

	return ok, nil
}

func scanAnswer(row pgx.Row) (models.Answer, error) {
	var a models.Answer
	err := row.Scan(&a.ID, &a.Content, &a.QuestionID)
	return a, err
}
