// service содержит бизнес-логику Q&A-сервиса: регистрацию и вход по
// email+пароль, выпуск токенов, CRUD вопросов и ответов с проверкой владельца.
//
// Основные аспекты:
//   - Service не хранит состояние запроса и безопасен для конкурентного
//     использования при потокобезопасных storage и cache.
//   - Где категория отказа известна на месте (неверный пароль, чужой ресурс),
//     возвращается *errors.Error с нужной Kind. Остальное оборачивается через
//     op и классифицируется на краю HTTP-слоя.
//   - Кэш страниц вопросов опционален; его сбои логируются и не влияют
//     на ответ.
package service

import (
	"time"

	"github.com/pribylovaa/go-qa-service/internal/cache"
	"github.com/pribylovaa/go-qa-service/internal/hasher"
	"github.com/pribylovaa/go-qa-service/internal/storage"
	"github.com/pribylovaa/go-qa-service/internal/token"
)

// Service описывает бизнес-логику сервиса.
type Service struct {
	storage storage.Storage
	hasher  *hasher.Hasher
	codec   *token.Codec
	qcache  cache.QuestionCache // может быть nil, если кэш не сконфигурирован
	now     func() time.Time
}

// New создаёт новый экземпляр Service.
func New(st storage.Storage, h *hasher.Hasher, codec *token.Codec) *Service {
	return &Service{
		storage: st,
		hasher:  h,
		codec:   codec,
		now:     time.Now,
	}
}

// SetQuestionCache устанавливает кэш страниц вопросов (опционально).
func (s *Service) SetQuestionCache(c cache.QuestionCache) {
	s.qcache = c
}

// Now возвращает текущее время сервиса; используется мидлваром авторизации,
// чтобы выпуск и проверка токенов шли по одним часам.
func (s *Service) Now() time.Time {
	return s.now()
}
