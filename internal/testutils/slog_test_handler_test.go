package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSlogHandler(t *testing.T) {
	logger, h := NewTestLogger()

	logger.With("component", "test").Warn("something happened", "count", 2)
	logger.Info("other")

	entries := h.Entries()
	require.Len(t, entries, 2)

	e, ok := h.Find("something happened")
	require.True(t, ok)
	assert.Equal(t, "WARN", e["level"])
	assert.Equal(t, "test", e["component"])
	assert.Equal(t, int64(2), e["count"])

	_, ok = h.Find("missing")
	assert.False(t, ok)

	h.Clear()
	assert.Empty(t, h.Entries())
}
