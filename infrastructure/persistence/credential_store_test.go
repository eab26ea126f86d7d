package persistence_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-frame/domain/model"
	"photo-frame/domain/repository"
	"photo-frame/infrastructure/persistence"
)

func TestCredentialStore_LoadMissing(t *testing.T) {
	store := persistence.NewCredentialStore(filepath.Join(t.TempDir(), "token.json"))

	assert.False(t, store.Exists())
	cred, err := store.Load()
	assert.Nil(t, cred)
	assert.True(t, errors.Is(err, repository.ErrNoCredential))
}

func TestCredentialStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := persistence.NewCredentialStore(path)

	saved := &model.Credential{
		AccessToken:  "access-123",
		TokenType:    "Bearer",
		RefreshToken: "refresh-456",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
		Scopes:       []string{"https://www.googleapis.com/auth/photoslibrary.readonly"},
	}
	require.NoError(t, store.Save(saved))
	assert.True(t, store.Exists())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.AccessToken, loaded.AccessToken)
	assert.Equal(t, saved.RefreshToken, loaded.RefreshToken)
	assert.True(t, saved.Expiry.Equal(loaded.Expiry))
	assert.Equal(t, saved.Scopes, loaded.Scopes)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCredentialStore_SaveOverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := persistence.NewCredentialStore(filepath.Join(dir, "token.json"))

	require.NoError(t, store.Save(&model.Credential{AccessToken: "first", RefreshToken: "r1"}))
	require.NoError(t, store.Save(&model.Credential{AccessToken: "second", RefreshToken: "r2"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.AccessToken)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not accumulate")
}

func TestCredentialStore_RejectsUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	store := persistence.NewCredentialStore(path)

	assert.True(t, store.Exists())
	_, err := store.Load()
	assert.True(t, errors.Is(err, repository.ErrNoCredential))
}

func TestCredentialStore_ExpiryRules(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "token.json")
	store := persistence.NewCredentialStore(path).WithClock(func() time.Time { return now })

	require.NoError(t, store.Save(&model.Credential{AccessToken: "a", Expiry: now.Add(-time.Minute)}))
	_, err := store.Load()
	assert.True(t, errors.Is(err, repository.ErrNoCredential), "expired without refresh token")

	require.NoError(t, store.Save(&model.Credential{AccessToken: "a", RefreshToken: "r", Expiry: now.Add(-time.Minute)}))
	cred, err := store.Load()
	require.NoError(t, err, "refreshable credential stays usable")
	assert.Equal(t, "r", cred.RefreshToken)
}
