// hasher хэширует пароли алгоритмом Argon2id и проверяет их.
//
// Формат результата — PHC-строка, в которую встроены параметры и соль:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// Поэтому Verify не требует внешнего хранения параметров: старые хэши
// остаются проверяемыми после смены Params.
package hasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLen = 32
	keyLen  = 32
	prefix  = "argon2id"
)

var (
	// ErrTooShort — пустой секрет; хэширование не выполняется.
	ErrTooShort = errors.New("secret is too short")
	// ErrMalformedHash — сохранённый хэш не разбирается как PHC argon2id.
	ErrMalformedHash = errors.New("malformed password hash")
	// ErrIncompatibleVersion — хэш создан другой версией Argon2.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// Params — параметры Argon2id.
type Params struct {
	// Memory в KiB.
	Memory  uint32
	Time    uint32
	Threads uint8
}

// DefaultParams — 64 MiB, 1 проход, 4 потока.
var DefaultParams = Params{Memory: 64 * 1024, Time: 1, Threads: 4}

// Hasher не хранит изменяемого состояния и безопасен для конкурентного использования.
type Hasher struct {
	params Params
}

// New создаёт Hasher. Нулевые поля params заменяются значениями DefaultParams.
func New(params Params) *Hasher {
	if params.Memory == 0 {
		params.Memory = DefaultParams.Memory
	}

	if params.Time == 0 {
		params.Time = DefaultParams.Time
	}

	if params.Threads == 0 {
		params.Threads = DefaultParams.Threads
	}

	return &Hasher{params: params}
}

// Hash возвращает PHC-строку для secret со свежей случайной солью.
func (h *Hasher) Hash(secret []byte) (string, error) {
	const op = "hasher.Hash"

	if len(secret) == 0 {
		return "", fmt.Errorf("%s: %w", op, ErrTooShort)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := argon2.IDKey(secret, salt, h.params.Time, h.params.Memory, h.params.Threads, keyLen)

	return encode(h.params, salt, key), nil
}

// Verify сравнивает secret с сохранённым хэшем за постоянное время.
// Несовпадение — (false, nil); ошибка только для некорректного encoded.
func (h *Hasher) Verify(encoded string, secret []byte) (bool, error) {
	const op = "hasher.Verify"

	p, salt, want, err := decode(encoded)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if len(secret) == 0 {
		return false, nil
	}

	got := argon2.IDKey(secret, salt, p.Time, p.Memory, p.Threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func encode(p Params, salt, key []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		prefix,
		argon2.Version,
		p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != prefix {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	if version != argon2.Version {
		return p, nil, nil, ErrIncompatibleVersion
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.Strict().DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.Strict().DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	return p, salt, key, nil
}
