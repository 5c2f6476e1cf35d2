package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestRegisterIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Register(Device{ID: "dev-1", Code: "AF32", Name: "Lobby"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, first.Status)
	assert.Nil(t, first.ProjectID)

	// повторная регистрация не перезаписывает code/name
	second, err := s.Register(Device{ID: "dev-1", Code: "ZZZZ", Name: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "AF32", second.Code)
	assert.Equal(t, "Lobby", second.Name)

	devices, err := s.List()
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestRegisterDefaultName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(Device{ID: "dev-1", Code: "AAAA"})
	require.NoError(t, err)
	d, err := s.Register(Device{ID: "dev-2", Code: "BBBB"})
	require.NoError(t, err)
	assert.Equal(t, "Display 2", d.Name)
}

func TestAssignVisibleOnNextPoll(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(Device{ID: "dev-1", Code: "AF32"})
	require.NoError(t, err)

	require.NoError(t, s.Assign("dev-1", "p1"))

	res, err := s.Poll("dev-1")
	require.NoError(t, err)
	require.NotNil(t, res.AssignedProject)
	assert.Equal(t, "p1", *res.AssignedProject)
	assert.Equal(t, StatusActive, res.Status)
}

func TestAssignDoesNotValidateProject(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(Device{ID: "dev-1", Code: "AF32"})
	require.NoError(t, err)

	// назначение на несуществующий проект принимается как есть
	require.NoError(t, s.Assign("dev-1", "no-such-project"))
}

func TestReassignKeepsActive(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(Device{ID: "dev-1", Code: "AF32"})
	require.NoError(t, err)
	require.NoError(t, s.Assign("dev-1", "p1"))
	require.NoError(t, s.Assign("dev-1", "p2"))

	res, err := s.Poll("dev-1")
	require.NoError(t, err)
	assert.Equal(t, "p2", *res.AssignedProject)
	assert.Equal(t, StatusActive, res.Status)
}

func TestDeleteForcesRePairing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(Device{ID: "dev-1", Code: "AF32"})
	require.NoError(t, err)
	require.NoError(t, s.Delete("dev-1"))

	_, err = s.Poll("dev-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// удаление отсутствующего id — успех
	assert.NoError(t, s.Delete("dev-1"))
}

func TestPollUnknownDevice(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Poll("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPollBumpsLastSeen(t *testing.T) {
	s := newTestStore(t)

	d, err := s.Register(Device{ID: "dev-1", Code: "AF32"})
	require.NoError(t, err)

	_, err = s.Poll("dev-1")
	require.NoError(t, err)

	devices, err := s.List()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.False(t, devices[0].LastSeen.Before(d.LastSeen))
}

func TestConcurrentRegisterNoLostWrites(t *testing.T) {
	s := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Register(Device{ID: fmt.Sprintf("dev-%d", i), Code: "AAAA"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	devices, err := s.List()
	require.NoError(t, err)
	assert.Len(t, devices, n)
}

func TestConcurrentAssignAndRegister(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register(Device{ID: "dev-a", Code: "AAAA"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Assign("dev-a", "p1"))
	}()
	go func() {
		defer wg.Done()
		_, err := s.Register(Device{ID: "dev-b", Code: "BBBB"})
		assert.NoError(t, err)
	}()
	wg.Wait()

	// ни назначение, ни регистрация не потерялись
	res, err := s.Poll("dev-a")
	require.NoError(t, err)
	require.NotNil(t, res.AssignedProject)
	assert.Equal(t, "p1", *res.AssignedProject)

	devices, err := s.List()
	require.NoError(t, err)
	assert.Len(t, devices, 2)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = s.Register(Device{ID: "dev-1", Code: "AF32", Name: "Lobby"})
	require.NoError(t, err)

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	devices, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "Lobby", devices[0].Name)
}
