package logger

import (
	"testing"

	"tasknest/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitReturnsSingleton(t *testing.T) {
	cfg := config.Config{LogLevel: "debug", LogFormat: "text"}

	first, err := Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Later calls return the same instance even with a different config.
	second, err := Init(config.Config{LogLevel: "error", LogFormat: "json"})
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Same(t, first, L())
}
