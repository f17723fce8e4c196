package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCslLogger_LevelsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCslLoggerTo(&buf, false)

	ctx := WithComponent(context.Background(), "readme")
	logger.Info(ctx, "fetched %s", "a/b")
	logger.Debug(ctx, "hidden")

	out := buf.String()
	assert.Contains(t, out, "[INFO] [readme] fetched a/b")
	assert.NotContains(t, out, "hidden")

	logger.SetDebug(true)
	logger.Debug(context.Background(), "shown")
	assert.Contains(t, buf.String(), "[DEBUG] shown")
}
