package session_test

import (
	"path/filepath"
	"testing"

	"kassa/internal/config"
	"kassa/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	tokens := session.NewTokenStore(config.Config{TokenFile: filepath.Join(t.TempDir(), "token")})

	got, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, got, "missing file means empty slot")

	require.NoError(t, tokens.Save("abc"))
	got, err = tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, tokens.Clear())
	require.NoError(t, tokens.Clear(), "clearing an empty slot is not an error")

	got, err = tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}
