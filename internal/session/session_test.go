package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerdesk/internal/api/mockapi"
)

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewStore(path)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.Save("opaque-token"))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	fresh := NewStore(path)
	got, err = fresh.Load()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got)

	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.NoError(t, s.Clear(), "clearing twice is fine")
}

func TestSaveRejectsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "token"))
	assert.Error(t, s.Save("  "))
}

func TestExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	got, ok := Expiry(mockapi.IssueToken("admin", exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = Expiry("not-a-jwt")
	assert.False(t, ok)
	_, ok = Expiry("a.!!!.c")
	assert.False(t, ok)
	_, ok = Expiry("e30.e30.e30") // {} claims
	assert.False(t, ok)
}

func TestExpiredTokenIsAbsent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(filepath.Join(t.TempDir(), "token"))
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(mockapi.IssueToken("admin", now.Add(time.Hour))))
	_, err := s.Load()
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	token, err := s.Token()
	assert.NoError(t, err)
	assert.Empty(t, token)
}
