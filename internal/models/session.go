package models

import "time"

// Session — проверенная личность и окно действия токена.
// Не хранится на сервере: восстанавливается из токена на каждом запросе.
type Session struct {
	AccountID int64
	NotBefore time.Time
	ExpiresAt time.Time
}

// Valid проверяет инвариант окна: NotBefore <= ExpiresAt и AccountID > 0.
func (s Session) Valid() bool {
	return s.AccountID > 0 && !s.ExpiresAt.Before(s.NotBefore)
}
