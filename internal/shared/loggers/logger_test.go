package loggers

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithFallback(t *testing.T) {
	t.Parallel()

	var fallbackOut, carriedOut bytes.Buffer
	fallback, err := NewWithWriter("info", &fallbackOut)
	require.NoError(t, err)
	carried, err := NewWithWriter("info", &carriedOut)
	require.NoError(t, err)

	Ctx(WithFallback(context.Background(), fallback)).Info().Msg("from plain context")
	Ctx(WithFallback(carried.WithContext(context.Background()), fallback)).Info().Msg("from request context")

	assert.Contains(t, fallbackOut.String(), "from plain context")
	assert.NotContains(t, fallbackOut.String(), "from request context")
	assert.Contains(t, carriedOut.String(), "from request context")
}
