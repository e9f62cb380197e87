package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(30 * time.Minute)
	defer store.Close()

	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	session, err := store.Create(now)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, StepService, session.Step)
	assert.Equal(t, now.Add(30*time.Minute), session.ExpiresAt)

	got, err := store.Get(session.ID, now)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestStore_GetUnknown(t *testing.T) {
	store := NewStore(30 * time.Minute)
	defer store.Close()

	_, err := store.Get("nonexistent", time.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_ExpiredSessionNotFound(t *testing.T) {
	store := NewStore(10 * time.Minute)
	defer store.Close()

	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	session, err := store.Create(now)
	require.NoError(t, err)

	// Истекшая сессия неотличима от отсутствующей
	_, err = store.Get(session.ID, now.Add(11*time.Minute))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = store.Update(session, now.Add(11*time.Minute))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_UpdateExtendsTTL(t *testing.T) {
	store := NewStore(10 * time.Minute)
	defer store.Close()

	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	session, err := store.Create(now)
	require.NoError(t, err)

	// Шаг за минуту до истечения продлевает сессию
	later := now.Add(9 * time.Minute)
	session.Step = StepEmployee
	require.NoError(t, store.Update(session, later))

	got, err := store.Get(session.ID, later.Add(9*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, StepEmployee, got.Step)
	assert.Equal(t, later.Add(10*time.Minute), got.ExpiresAt)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore(30 * time.Minute)
	defer store.Close()

	now := time.Now()
	session, err := store.Create(now)
	require.NoError(t, err)

	// Мутация полученной копии не меняет хранимое состояние
	got, err := store.Get(session.ID, now)
	require.NoError(t, err)
	got.Step = StepDone

	again, err := store.Get(session.ID, now)
	require.NoError(t, err)
	assert.Equal(t, StepService, again.Step)
}

func TestStore_RemoveExpired(t *testing.T) {
	store := NewStore(10 * time.Minute)
	defer store.Close()

	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	_, err := store.Create(now)
	require.NoError(t, err)
	fresh, err := store.Create(now.Add(5 * time.Minute))
	require.NoError(t, err)

	store.removeExpired(now.Add(11 * time.Minute))

	assert.Equal(t, 1, store.Len())
	_, err = store.Get(fresh.ID, now.Add(11*time.Minute))
	assert.NoError(t, err)
}

func TestStore_UniqueIDs(t *testing.T) {
	store := NewStore(time.Minute)
	defer store.Close()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		session, err := store.Create(time.Now())
		require.NoError(t, err)
		assert.False(t, seen[session.ID])
		seen[session.ID] = true
	}
}
