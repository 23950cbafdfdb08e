package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is the surface shared by LocalStorage and Memory.
type backend interface {
	Load(string) ([]byte, bool, error)
	Save(string, []byte) error
	Remove(string) error
	Keys() ([]string, error)
	Clear() error
	Close() error
}

func backends(t *testing.T) map[string]backend {
	t.Helper()
	modernc, err := Open(DriverModernc, ":memory:")
	require.NoError(t, err)
	file, err := Open(DriverModernc, filepath.Join(t.TempDir(), "nested", "daydream.db"))
	require.NoError(t, err)
	return map[string]backend{
		"modernc-memory": modernc,
		"modernc-file":   file,
		"memory":         NewMemory(),
	}
}

func TestBackends_RoundTrip(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer b.Close()

			_, ok, err := b.Load("daydream-user-storage")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Save("daydream-user-storage", []byte(`{"version":1}`)))
			require.NoError(t, b.Save("daydream-user-storage", []byte(`{"version":2}`)))
			require.NoError(t, b.Save("daydream-shadow-storage-v3", []byte(`{}`)))

			got, ok, err := b.Load("daydream-user-storage")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `{"version":2}`, string(got))

			keys, err := b.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"daydream-shadow-storage-v3", "daydream-user-storage"}, keys)

			require.NoError(t, b.Remove("daydream-user-storage"))
			require.NoError(t, b.Remove("never-existed"))
			_, ok, _ = b.Load("daydream-user-storage")
			assert.False(t, ok)

			require.NoError(t, b.Clear())
			keys, err = b.Keys()
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestLocalStorage_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daydream.db")

	s, err := Open(DriverModernc, path)
	require.NoError(t, err)
	require.NoError(t, s.Save("k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(DriverModernc, path)
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.Load("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))
	assert.Equal(t, path, s.Path())
	assert.Equal(t, DriverModernc, s.Driver())
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open("postgres", ":memory:")
	assert.Error(t, err)
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Save("k", buf))
	buf[0] = 'z'

	got, _, _ := m.Load("k")
	assert.Equal(t, "abc", string(got))
	assert.Equal(t, 1, m.Saves())
}

func TestLocalStorage_CgoDriver(t *testing.T) {
	s, err := Open(DriverCgo, filepath.Join(t.TempDir(), "cgo.db"))
	if err != nil {
		t.Skipf("cgo sqlite3 driver unavailable: %v", err)
	}
	defer s.Close()

	require.NoError(t, s.Save("k", []byte("v")))
	got, ok, err := s.Load("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(got))
}
