package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-qa-service/internal/models"
)

// Questions возвращает страницу вопросов по возрастанию id.
// page.Limit == nil — без ограничения (LIMIT NULL).
func (s *Storage) Questions(ctx context.Context, page models.Pagination) ([]models.Question, error) {
	const op = "storage.postgres.Questions"

	query := `
		SELECT id, title, content, tags
		FROM questions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.Query(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, wrap(op, err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Question, error) {
		return scanQuestion(row)
	})
	if err != nil {
		return nil, wrap(op, err)
	}

	return out, nil
}

// AddQuestion создает вопрос от имени accountID.
func (s *Storage) AddQuestion(ctx context.Context, q models.NewQuestion, accountID int64) (*models.Question, error) {
	const op = "storage.postgres.AddQuestion"

	query := `
		INSERT INTO questions (title, content, tags, account_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, tags
	`

	row := s.db.QueryRow(ctx, query, q.Title, q.Content, q.Tags, accountID)

	out, err := scanQuestion(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return &out, nil
}

// UpdateQuestion обновляет вопрос, если он принадлежит accountID.
func (s *Storage) UpdateQuestion(ctx context.Context, id int64, q models.NewQuestion, accountID int64) (*models.Question, error) {
	const op = "storage.postgres.UpdateQuestion"

	query := `
		UPDATE questions SET title = $1, content = $2, tags = $3
		WHERE id = $4 AND account_id = $5
		RETURNING id, title, content, tags
	`

	row := s.db.QueryRow(ctx, query, q.Title, q.Content, q.Tags, id, accountID)

	out, err := scanQuestion(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return &out, nil
}

// DeleteQuestion удаляет вопрос accountID (ответы удаляются каскадом).
func (s *Storage) DeleteQuestion(ctx context.Context, id, accountID int64) error {
	const op = "storage.postgres.DeleteQuestion"

	tag, err := s.db.Exec(ctx, `DELETE FROM questions WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		return wrap(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrap(op, pgx.ErrNoRows)
	}

	return nil
}

// IsQuestionOwner сообщает, принадлежит ли вопрос id аккаунту accountID.
func (s *Storage) IsQuestionOwner(ctx context.Context, id, accountID int64) (bool, error) {
	const op = "storage.postgres.IsQuestionOwner"

	query := `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1 AND account_id = $2)`

	var ok bool
	if err := s.db.QueryRow(ctx, query, id, accountID).Scan(&ok); err != nil {
		return false, wrap(op, err)
	}

	return ok, nil
}

func scanQuestion(row pgx.Row) (models.Question, error) {
	var q models.Question
	err := row.Scan(&q.ID, &q.Title, &q.Content, &q.Tags)
	return q, err
}
