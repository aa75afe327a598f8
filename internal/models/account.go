package models

// Account — учётная запись. PasswordHash всегда содержит результат
// hasher.Hash и никогда не сравнивается как открытый текст.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
}

// AccountInfo — публичное представление аккаунта (без хэша пароля).
type AccountInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Info возвращает публичное представление аккаунта.
func (a *Account) Info() AccountInfo {
	return AccountInfo{ID: a.ID, Email: a.Email}
}
