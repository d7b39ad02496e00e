package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), base)

	ctx = With(ctx, "run_id", "abc")
	FromContext(ctx).Info("Setup finalized.")

	assert.Contains(t, buf.String(), "run_id=abc")
	assert.Contains(t, buf.String(), "Setup finalized.")
}
