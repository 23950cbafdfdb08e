package shadow

import (
	"errors"
	"testing"

	"daydream/internal/narrative"
	"daydream/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ narrative.Resetter = (*Store)(nil)

func TestInitialRoster(t *testing.T) {
	s := New(nil)
	all := s.All()
	require.Len(t, all, 7)
	assert.Equal(t, "Qterw-E-63", all[0].Code)

	mine := s.AssignedTo(narrative.Protagonist)
	require.Len(t, mine, 1)
	assert.Equal(t, "양자택일", mine[0].Name)
}

func TestAssign(t *testing.T) {
	mem := store.NewMemory()
	s := New(mem)

	require.NoError(t, s.Assign("Qterw-E-7", "이사원", "X조"))
	e, err := s.Get("Qterw-E-7")
	require.NoError(t, err)
	assert.True(t, e.IsAssigned)
	assert.Equal(t, "X조", e.AssigneeTeam)

	err = s.Assign("nope", "a", "b")
	assert.True(t, errors.Is(err, ErrUnknownCode))
	_, err = s.Get("nope")
	assert.True(t, errors.Is(err, ErrUnknownCode))

	reloaded := New(mem)
	assert.Len(t, reloaded.AssignedTo("이사원"), 1)
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := New(nil)
	all := s.All()
	all[0].Name = "changed"
	assert.NotEqual(t, "changed", s.All()[0].Name)
}

func TestResetWithSession(t *testing.T) {
	mem := store.NewMemory()
	shadows := New(mem)
	session := narrative.New(narrative.WithPersister(mem), narrative.WithDependents(shadows))

	session.Login(narrative.Protagonist)
	require.NoError(t, shadows.Assign("Qterw-E-2884", narrative.Protagonist, "D조"))
	require.Len(t, shadows.AssignedTo(narrative.Protagonist), 2)

	session.Reset()
	assert.Len(t, shadows.AssignedTo(narrative.Protagonist), 1)
	assert.Len(t, New(mem).AssignedTo(narrative.Protagonist), 1)
}

func TestCorruptBlobFallsBack(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Save(StorageName, []byte(`{"state":`)))
	assert.Len(t, New(mem).All(), 7)
}
