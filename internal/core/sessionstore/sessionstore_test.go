package sessionstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	urlA = "https://cmdb.example.org/src/jsonrpc.php"
	urlB = "http://127.0.0.1:8090/src/jsonrpc.php"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.ini")
	s := New(path)

	_, err := s.Load(urlA)
	require.ErrorIs(t, err, ErrNoSession)

	created := time.Unix(1700000000, 0)
	require.NoError(t, s.Save(&Record{URL: urlA, Username: "admin", SessionID: "abc", Created: created}))
	require.NoError(t, s.Save(&Record{URL: urlB, Username: "bob", SessionID: "def"}))

	r, err := s.Load(urlA)
	require.NoError(t, err)
	assert.Equal(t, "abc", r.SessionID)
	assert.Equal(t, "admin", r.Username)
	assert.True(t, created.Equal(r.Created))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.Save(&Record{URL: urlA, Username: "admin", SessionID: "xyz"}))
	r, err = s.Load(urlA)
	require.NoError(t, err)
	assert.Equal(t, "xyz", r.SessionID)

	require.NoError(t, s.Clear(urlA))
	_, err = s.Load(urlA)
	require.ErrorIs(t, err, ErrNoSession)

	r, err = s.Load(urlB)
	require.NoError(t, err, "clearing one endpoint keeps the others")
	assert.Equal(t, "def", r.SessionID)
}

func TestStore_ClearMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.ini"))
	require.NoError(t, s.Clear(urlA))
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "clearing nothing does not create the file")
}
