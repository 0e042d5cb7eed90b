package logx

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Returns the logger stored in the context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, "info", false)

		ctx := WithLogger(context.Background(), logger.With().Str("requestId", "abc").Logger())
		FromContext(ctx).Info().Msg("hello")

		require.Contains(t, buf.String(), `"requestId":"abc"`)
		require.Contains(t, buf.String(), `"message":"hello"`)
		require.Contains(t, buf.String(), `"service":"courses"`)
	})

	t.Run("Falls back to a no-op logger", func(t *testing.T) {
		require.NotPanics(t, func() {
			FromContext(context.Background()).Error().Msg("dropped")
		})
	})
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", false)

	logger.Info().Msg("hidden")
	require.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	fallback := NewWithWriter(&buf, "not-a-level", false)
	fallback.Debug().Msg("hidden")
	fallback.Info().Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
