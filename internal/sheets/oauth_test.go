package sheets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenFile_RoundTrip(t *testing.T) {
	path := tokenFile(filepath.Join(t.TempDir(), "nested", "token.json"))
	want := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, path.save(want))

	info, err := os.Stat(string(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := path.load()
	require.NoError(t, err)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)
	assert.True(t, want.Expiry.Equal(got.Expiry))
}

func TestTokenFile_Empty(t *testing.T) {
	var path tokenFile
	assert.NoError(t, path.save(&oauth2.Token{AccessToken: "x"}))
	_, err := path.load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTokenFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := tokenFile(path).load()
	assert.ErrorContains(t, err, "failed to decode token file")
}

func TestGetOrCreateToken_ReturnsValidStoredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	stored := &oauth2.Token{AccessToken: "still-good", Expiry: time.Now().Add(time.Hour)}
	require.NoError(t, tokenFile(path).save(stored))

	got, err := GetOrCreateToken(context.Background(), OAuth2Config{ClientID: "id", ClientSecret: "secret", TokenFile: path})
	require.NoError(t, err)
	assert.Equal(t, "still-good", got.AccessToken)
}

func TestOAuth2Config(t *testing.T) {
	cfg := OAuth2Config{ClientID: "id", ClientSecret: "secret"}.oauth2Config()
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "http://localhost:8080/callback", cfg.RedirectURL)
	assert.Len(t, cfg.Scopes, 1)
}
