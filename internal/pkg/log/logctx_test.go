package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrom_DefaultWhenEmpty(t *testing.T) {
	require.Same(t, slog.Default(), From(context.Background()))
}

func TestInto_From_RoundTrip(t *testing.T) {
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := Into(context.Background(), l)

	require.Same(t, l, From(ctx))
}

func TestWith_AddsAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(Into(context.Background(), l), slog.Int64("account_id", 7))
	From(ctx).Info("event")

	require.Contains(t, buf.String(), "account_id=7")
	require.Contains(t, buf.String(), "msg=event")
}

func TestWith_NoAttrs_KeepsContext(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, ctx, With(ctx))
}
