package store

import (
	"path/filepath"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func testStore(t *testing.T) (*RecentStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marquee.db")
	s, err := NewRecentStore(path, 5)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func addAll(t *testing.T, s *RecentStore, values ...string) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, s.Add(v))
	}
}

func TestLoadFirstRunIsEmpty(t *testing.T) {
	s, _ := testStore(t)

	got, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, s.List())
}

func TestAddInsertsAtFront(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "alien", "blade runner", "dune")

	assert.Equal(t, []string{"dune", "blade runner", "alien"}, s.List())
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "dune", "dune")
	assert.Equal(t, []string{"dune"}, s.List())

	addAll(t, s, "alien", "brazil", "heat")
	require.Equal(t, []string{"heat", "brazil", "alien", "dune"}, s.List())

	// "dune" sits at position 3 and must not be promoted
	require.NoError(t, s.Add("dune"))
	assert.Equal(t, []string{"heat", "brazil", "alien", "dune"}, s.List())
}

func TestAddEvictsOldestPastCapacity(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "a", "b", "c", "d", "e", "f")

	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, s.List())
}

func TestRemoveAtUsesOriginalPositions(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "d", "c", "b", "a")
	require.Equal(t, []string{"a", "b", "c", "d"}, s.List())

	require.NoError(t, s.RemoveAt(0, 2))
	assert.Equal(t, []string{"b", "d"}, s.List())
}

func TestRemoveAtOrderIndependent(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "d", "c", "b", "a")

	require.NoError(t, s.RemoveAt(3, 1, 3, 9, -1))
	assert.Equal(t, []string{"a", "c"}, s.List())
}

func TestRemoveAtNothingValid(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "a")

	require.NoError(t, s.RemoveAt())
	require.NoError(t, s.RemoveAt(4))
	assert.Equal(t, []string{"a"}, s.List())
}

func TestClear(t *testing.T) {
	s, path := testStore(t)
	addAll(t, s, "a", "b")

	require.NoError(t, s.Clear())
	assert.Empty(t, s.List())

	require.NoError(t, s.Close())
	reopened, err := NewRecentStore(path, 5)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Empty(t, reopened.List())
}

func TestLoadRoundTrip(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "a", "b", "c", "d")
	require.NoError(t, s.RemoveAt(1))
	addAll(t, s, "e")

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, s.List(), loaded)
	assert.Equal(t, []string{"e", "d", "b", "a"}, loaded)
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := testStore(t)
	addAll(t, s, "heat", "ronin")
	require.NoError(t, s.Close())

	reopened, err := NewRecentStore(path, 5)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, []string{"ronin", "heat"}, reopened.List())
}

func TestReopenWithSmallerCapacityTruncates(t *testing.T) {
	s, path := testStore(t)
	addAll(t, s, "a", "b", "c", "d")
	require.NoError(t, s.Close())

	reopened, err := NewRecentStore(path, 2)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, []string{"d", "c"}, reopened.List())
}

func TestStorageFailureLeavesMemoryUnchanged(t *testing.T) {
	s, _ := testStore(t)
	addAll(t, s, "a", "b")
	require.NoError(t, s.db.Close())

	err := s.Add("c")
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, []string{"b", "a"}, s.List())

	err = s.RemoveAt(0)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, []string{"b", "a"}, s.List())
}

func TestUnreadableEntryStartsEmpty(t *testing.T) {
	s, path := testStore(t)
	require.NoError(t, s.Close())

	for _, raw := range []string{"{not json", `"not an array"`, `[1, 2]`} {
		s, err := NewRecentStore(path, 5)
		require.NoError(t, err)
		require.NoError(t, s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketRecents).Put(keyRecents, []byte(raw))
		}))
		require.NoError(t, s.Close())

		s, err = NewRecentStore(path, 5)
		require.NoError(t, err, raw)
		assert.Empty(t, s.List(), raw)

		require.NoError(t, s.Add("heat"))
		require.NoError(t, s.Close())

		s, err = NewRecentStore(path, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"heat"}, s.List(), raw)
		require.NoError(t, s.Close())
	}
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewRecentStore("", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCapacity, s.Capacity())

	addAll(t, s, "a", "b", "a")
	assert.Equal(t, []string{"b", "a"}, s.List())

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, loaded)
	assert.NoError(t, s.Close())
}
