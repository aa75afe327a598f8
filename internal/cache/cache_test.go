package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/go-qa-service/internal/models"
)

func intPtr(v int) *int { return &v }

func TestPageKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, "p:g0:all:0", pageKey("p:", 0, models.Pagination{}))
	require.Equal(t, "p:g3:10:20", pageKey("p:", 3, models.Pagination{Limit: intPtr(10), Offset: 20}))
}

func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache(context.Background(), "not a url", "", time.Second)
	require.Error(t, err)
}

// startRedis — поднимает Redis через testcontainers-go.
// Без GO_TEST_INTEGRATION тест пропускается.
func startRedis(t *testing.T) (QuestionCache, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	qc, err := NewRedisCache(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "test:", time.Minute)
	require.NoError(t, err)

	return qc, func() {
		_ = qc.Close()
		_ = c.Terminate(context.Background())
	}
}

func TestIntegration_SetGet_Invalidate(t *testing.T) {
	qc, cleanup := startRedis(t)
	defer cleanup()

	ctx := context.Background()
	page := models.Pagination{Limit: intPtr(2)}

	key, err := qc.Key(ctx, page)
	require.NoError(t, err)
	require.Equal(t, "test:g0:2:0", key)

	_, ok, err := qc.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	qs := []models.Question{{ID: 1, Title: "t", Content: "c", Tags: []string{"go"}}}
	require.NoError(t, qc.Set(ctx, key, qs))

	got, ok, err := qc.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, qs, got)

	require.NoError(t, qc.Invalidate(ctx))

	newKey, err := qc.Key(ctx, page)
	require.NoError(t, err)
	require.NotEqual(t, key, newKey)

	_, ok, err = qc.Get(ctx, newKey)
	require.NoError(t, err)
	require.False(t, ok)
}
