// storage описывает контракт хранилища вопросов, ответов и аккаунтов.
//
// Реализации обязаны сообщать о нарушении уникальности через ErrAlreadyExists,
// об отсутствии записи через ErrNotFound, а любые прочие сбои оборачивать
// в ErrQuery. Коды конкретной СУБД наружу не выходят.
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-qa-service/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email аккаунта).
	ErrAlreadyExists = errors.New("already exists")
	// ErrQuery — прочий сбой хранилища.
	ErrQuery = errors.New("query failed")
)

// AccountStorage выполняет операции над аккаунтами.
type AccountStorage interface {
	// AddAccount сохраняет аккаунт и возвращает присвоенный ID.
	AddAccount(ctx context.Context, account *models.Account) (int64, error)
	// AccountByEmail находит аккаунт по email.
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
	// AccountByID находит аккаунт по ID.
	AccountByID(ctx context.Context, id int64) (*models.Account, error)
	// UpdateEmail меняет email аккаунта.
	UpdateEmail(ctx context.Context, id int64, email string) (*models.Account, error)
	// UpdatePassword заменяет хэш пароля.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// QuestionStorage выполняет операции над вопросами.
type QuestionStorage interface {
	Questions(ctx context.Context, page models.Pagination) ([]models.Question, error)
	AddQuestion(ctx context.Context, q models.NewQuestion, accountID int64) (*models.Question, error)
	UpdateQuestion(ctx context.Context, id int64, q models.NewQuestion, accountID int64) (*models.Question, error)
	DeleteQuestion(ctx context.Context, id, accountID int64) error
	// IsQuestionOwner сообщает, принадлежит ли вопрос аккаунту.
	// Отсутствующий вопрос — (false, nil).
	IsQuestionOwner(ctx context.Context, id, accountID int64) (bool, error)
}

// AnswerStorage выполняет операции над ответами.
type AnswerStorage interface {
	Answers(ctx context.Context, questionID int64, page models.Pagination) ([]models.Answer, error)
	AddAnswer(ctx context.Context, a models.NewAnswer, accountID int64) (*models.Answer, error)
	UpdateAnswer(ctx context.Context, id int64, content string, accountID int64) (*models.Answer, error)
	DeleteAnswer(ctx context.Context, id, accountID int64) error
	// IsAnswerOwner сообщает, принадлежит ли ответ аккаунту.
	IsAnswerOwner(ctx context.Context, id, accountID int64) (bool, error)
}

// Storage задает контракт работы с БД.
type Storage interface {
	AccountStorage
	QuestionStorage
	AnswerStorage
	Ping(ctx context.Context) error
	Close()
}
