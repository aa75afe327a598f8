package hasher

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Лёгкие параметры, чтобы тесты не тратили 64 MiB на каждый вызов.
var testParams = Params{Memory: 1024, Time: 1, Threads: 1}

func TestHash_Verify_RoundTrip(t *testing.T) {
	t.Parallel()

	h := New(testParams)

	for _, pw := range []string{"pw123", "x", "пароль с пробелами", strings.Repeat("a", 512)} {
		encoded, err := h.Hash([]byte(pw))
		require.NoError(t, err)
		require.NotEqual(t, pw, encoded)
		require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))

		ok, err := h.Verify(encoded, []byte(pw))
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerify_WrongSecret_ReturnsFalseWithoutError(t *testing.T) {
	t.Parallel()

	h := New(testParams)
	encoded, err := h.Hash([]byte("correct"))
	require.NoError(t, err)

	ok, err := h.Verify(encoded, []byte("incorrect"))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = h.Verify(encoded, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHash_DistinctSalts(t *testing.T) {
	t.Parallel()

	h := New(testParams)
	a, err := h.Hash([]byte("same"))
	require.NoError(t, err)
	b, err := h.Hash([]byte("same"))
	require.NoError(t, err)

	require.NotEqual(t, a, b)

	for _, enc := range []string{a, b} {
		ok, err := h.Verify(enc, []byte("same"))
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestHash_EmptySecret_TooShort(t *testing.T) {
	t.Parallel()

	h := New(testParams)
	out, err := h.Hash(nil)
	require.ErrorIs(t, err, ErrTooShort)
	require.Empty(t, out)

	_, err = h.Hash([]byte{})
	require.ErrorIs(t, err, ErrTooShort)
}

func TestVerify_UsesEmbeddedParams(t *testing.T) {
	t.Parallel()

	old := New(Params{Memory: 2048, Time: 2, Threads: 2})
	encoded, err := old.Hash([]byte("secret"))
	require.NoError(t, err)

	ok, err := New(testParams).Verify(encoded, []byte("secret"))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := New(testParams)
	valid, err := h.Hash([]byte("secret"))
	require.NoError(t, err)
	parts := strings.Split(valid, "$")

	tcs := []struct {
		name    string
		encoded string
		want    error
	}{
		{"empty", "", ErrMalformedHash},
		{"plaintext", "pw123", ErrMalformedHash},
		{"wrong_algo", strings.Replace(valid, "argon2id", "argon2i", 1), ErrMalformedHash},
		{"bad_version", strings.Replace(valid, "v=19", "v=x", 1), ErrMalformedHash},
		{"other_version", strings.Replace(valid, "v=19", "v=16", 1), ErrIncompatibleVersion},
		{"bad_params", strings.Replace(valid, "m=1024,t=1,p=1", "m=a,t=1,p=1", 1), ErrMalformedHash},
		{"zero_params", strings.Replace(valid, "m=1024,t=1,p=1", "m=0,t=1,p=1", 1), ErrMalformedHash},
		{"bad_salt", strings.Join([]string{"", parts[1], parts[2], parts[3], "!!!", parts[5]}, "$"), ErrMalformedHash},
		{"empty_key", strings.Join([]string{"", parts[1], parts[2], parts[3], parts[4], ""}, "$"), ErrMalformedHash},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := h.Verify(tc.encoded, []byte("secret"))
			require.ErrorIs(t, err, tc.want)
			require.False(t, ok)
		})
	}
}

func TestNew_FillsDefaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultParams, New(Params{}).params)
	require.Equal(t, Params{Memory: 8, Time: 1, Threads: 4}, New(Params{Memory: 8}).params)
}

func TestHasher_ConcurrentUse(t *testing.T) {
	t.Parallel()

	h := New(testParams)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enc, err := h.Hash([]byte("parallel"))
			if err != nil {
				errs <- err
				return
			}
			if ok, err := h.Verify(enc, []byte("parallel")); err != nil || !ok {
				errs <- ErrMalformedHash
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
