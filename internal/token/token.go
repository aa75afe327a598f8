// token выпускает и проверяет токены сессии.
//
// Токен — строка вида
//
//	v1.local.<base64url(nonce || XChaCha20-Poly1305(jwt))>
//
// Внутри шифротекста лежит JWT (HS256) с claims sub/nbf/exp. Шифрование даёт
// конфиденциальность (account id не читается без ключа), AEAD и подпись JWT
// дают целостность. Ключи шифрования и подписи выводятся из общего секрета
// через HKDF-SHA256.
//
// Codec не имеет изменяемого состояния после создания и безопасен для
// конкурентного использования.
package token

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/pribylovaa/go-qa-service/internal/models"
)

const (
	// Lifetime — фиксированный срок жизни токена.
	Lifetime = 24 * time.Hour
	// MinKeyLen — минимальная длина секрета в байтах.
	MinKeyLen = 32

	header  = "v1.local."
	kdfInfo = "qa-service/token/v1"
	macLen  = 32
)

var (
	// ErrKeyTooShort — секрет короче MinKeyLen; фатально на старте.
	ErrKeyTooShort = errors.New("token key is too short")
	// ErrInvalidSession — попытка выпустить токен для некорректной сессии.
	ErrInvalidSession = errors.New("invalid session")
	// ErrMalformed — токен подделан, зашифрован другим ключом или повреждён.
	ErrMalformed = errors.New("malformed token")
	// ErrExpired — now > exp.
	ErrExpired = errors.New("token expired")
	// ErrNotYetValid — now < nbf.
	ErrNotYetValid = errors.New("token not yet valid")
)

// Codec кодирует models.Session в токен и обратно.
type Codec struct {
	aead   cipher.AEAD
	macKey []byte
}

// NewCodec выводит ключи из secret. Секрет короче MinKeyLen отклоняется.
func NewCodec(secret []byte) (*Codec, error) {
	const op = "token.NewCodec"

	if len(secret) < MinKeyLen {
		return nil, fmt.Errorf("%s: %w", op, ErrKeyTooShort)
	}

	kdf := hkdf.New(sha256.New, secret, nil, []byte(kdfInfo))

	encKey := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(kdf, encKey); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	macKey := make([]byte, macLen)
	if _, err := io.ReadFull(kdf, macKey); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	aead, err := chacha20poly1305.NewX(encKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Codec{aead: aead, macKey: macKey}, nil
}

// NewSession строит сессию с окном [now, now+Lifetime], округлённым до секунд.
func NewSession(accountID int64, now time.Time) models.Session {
	nbf := now.UTC().Truncate(time.Second)

	return models.Session{
		AccountID: accountID,
		NotBefore: nbf,
		ExpiresAt: nbf.Add(Lifetime),
	}
}

// Issue кодирует сессию в токен. Claims переносятся как есть, поэтому
// границы окна должны быть целыми секундами (точность NumericDate).
func (c *Codec) Issue(s models.Session) (string, error) {
	const op = "token.Codec.Issue"

	if !s.Valid() || !wholeSecond(s.NotBefore) || !wholeSecond(s.ExpiresAt) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidSession)
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(s.AccountID, 10),
		NotBefore: jwt.NewNumericDate(s.NotBefore),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.macKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	tok, err := c.seal([]byte(signed))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return tok, nil
}

// Validate расшифровывает токен, разбирает claims и проверяет окно действия
// относительно now. Порядок проверок: расшифровка, структура, время.
func (c *Codec) Validate(tok string, now time.Time) (models.Session, error) {
	const op = "token.Codec.Validate"

	plain, err := c.open(tok)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s, err := c.decodeClaims(string(plain))
	if err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if now.After(s.ExpiresAt) {
		return models.Session{}, fmt.Errorf("%s: %w", op, ErrExpired)
	}

	if now.Before(s.NotBefore) {
		return models.Session{}, fmt.Errorf("%s: %w", op, ErrNotYetValid)
	}

	return s, nil
}

func wholeSecond(t time.Time) bool { return t.Nanosecond() == 0 }

func (c *Codec) seal(plain []byte) (string, error) {
	nonceSize := c.aead.NonceSize()

	buf := make([]byte, nonceSize, nonceSize+len(plain)+c.aead.Overhead())
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(buf, buf[:nonceSize], plain, []byte(header))

	return header + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *Codec) open(tok string) ([]byte, error) {
	raw, ok := strings.CutPrefix(tok, header)
	if !ok {
		return nil, ErrMalformed
	}

	sealed, err := base64.RawURLEncoding.Strict().DecodeString(raw)
	if err != nil {
		return nil, ErrMalformed
	}

	// Неканоничная запись (например, с переводами строк) — тоже подделка.
	if base64.RawURLEncoding.EncodeToString(sealed) != raw {
		return nil, ErrMalformed
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize+c.aead.Overhead() {
		return nil, ErrMalformed
	}

	plain, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], []byte(header))
	if err != nil {
		return nil, ErrMalformed
	}

	return plain, nil
}

func (c *Codec) decodeClaims(signed string) (models.Session, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(signed, &claims,
		func(*jwt.Token) (any, error) { return c.macKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return models.Session{}, ErrMalformed
	}

	if claims.NotBefore == nil || claims.ExpiresAt == nil {
		return models.Session{}, ErrMalformed
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Session{}, ErrMalformed
	}

	s := models.Session{
		AccountID: id,
		NotBefore: claims.NotBefore.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}

	if !s.Valid() {
		return models.Session{}, ErrMalformed
	}

	return s, nil
}
