package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "token-123")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_LEVEL", "error")

	application, err := InitializeApp()
	require.NoError(t, err)
	assert.NotNil(t, application)
}

func TestInitializeApp_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")

	_, err := InitializeApp()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_BOT_TOKEN")
}
