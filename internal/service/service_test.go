package service

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-qa-service/internal/hasher"
	"github.com/pribylovaa/go-qa-service/internal/token"
	"github.com/pribylovaa/go-qa-service/mocks"
)

var (
	testKey    = []byte("0123456789abcdef0123456789abcdef")
	testParams = hasher.Params{Memory: 1024, Time: 1, Threads: 1}
	testNow    = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func intPtr(v int) *int { return &v }

// newSvc — сервис на моках хранилища и с фиксированными часами.
func newSvc(t *testing.T) (*Service, *mocks.MockStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)

	codec, err := token.NewCodec(testKey)
	require.NoError(t, err)

	svc := New(st, hasher.New(testParams), codec)
	svc.now = func() time.Time { return testNow }

	return svc, st
}

// withCache — то же, плюс мок кэша вопросов.
func withCache(t *testing.T) (*Service, *mocks.MockStorage, *mocks.MockQuestionCache) {
	t.Helper()
	svc, st := newSvc(t)
	qc := mocks.NewMockQuestionCache(gomock.NewController(t))
	svc.SetQuestionCache(qc)

	return svc, st, qc
}

func TestNew_DefaultClock(t *testing.T) {
	t.Parallel()

	codec, err := token.NewCodec(testKey)
	require.NoError(t, err)

	svc := New(nil, hasher.New(testParams), codec)
	require.WithinDuration(t, time.Now(), svc.Now(), time.Second)
}
