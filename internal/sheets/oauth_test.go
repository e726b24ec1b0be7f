package sheets

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenRoundtrip(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "nested", "token.json")

	token := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	}

	require.NoError(t, saveToken(tokenFile, token))

	loaded, err := LoadToken(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.Equal(t, token.TokenType, loaded.TokenType)
	assert.WithinDuration(t, token.Expiry, loaded.Expiry, time.Second)
}

func TestLoadTokenMissingFile(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}

func TestRefreshTokenIfNeededValidToken(t *testing.T) {
	ctx := context.Background()
	config := OAuth2Config{
		ClientID:     "client",
		ClientSecret: "secret",
	}

	// A token that is still valid must be returned as-is, without
	// contacting Google.
	token := &oauth2.Token{
		AccessToken: "still-good",
		Expiry:      time.Now().Add(time.Hour),
	}

	got, err := RefreshTokenIfNeeded(ctx, config, token)
	require.NoError(t, err)
	assert.Same(t, token, got)
}
