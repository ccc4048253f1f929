package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsync/teamsync/go/internal/models"
)

func newEventCollection() *Collection[models.Event] {
	return NewCollection(func(e models.Event) string { return e.ID }, nil)
}

func TestCollection_UpsertNeverDuplicatesIDs(t *testing.T) {
	c := newEventCollection()

	for i := 0; i < 5; i++ {
		c.Upsert(models.Event{ID: "e1", Title: fmt.Sprintf("rev %d", i)})
	}
	c.Upsert(models.Event{ID: "e2", Title: "other"})

	require.Equal(t, 2, c.Len())

	got, ok := c.Get("e1")
	require.True(t, ok)
	assert.Equal(t, "rev 4", got.Title, "re-upserting an id replaces the item wholesale")
}

func TestCollection_ReplaceIsAuthoritative(t *testing.T) {
	c := newEventCollection()
	c.Upsert(models.Event{ID: "stale"})

	c.Replace([]models.Event{{ID: "a"}, {ID: "b"}})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("stale")
	assert.False(t, ok)
}

func TestCollection_UpsertPreservesConcurrentlyFetchedItems(t *testing.T) {
	c := newEventCollection()
	c.Replace([]models.Event{{ID: "a"}, {ID: "b"}})

	c.Upsert(models.Event{ID: "c"})

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("a")
	assert.True(t, ok)
}

func TestCollection_SubscribeDeliversCurrentSnapshotAndUpdates(t *testing.T) {
	c := newEventCollection()
	c.Upsert(models.Event{ID: "a"})

	var snapshots [][]models.Event
	unsub := c.Subscribe(func(events []models.Event) {
		snapshots = append(snapshots, events)
	})

	require.Len(t, snapshots, 1, "subscriber gets the current snapshot synchronously")
	assert.Len(t, snapshots[0], 1)

	c.Upsert(models.Event{ID: "b"})
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 2)

	unsub()
	c.Upsert(models.Event{ID: "c"})
	assert.Len(t, snapshots, 2, "no updates after unsubscribe")
}

func TestCollection_SubscribersObserveIdenticalSequences(t *testing.T) {
	c := newEventCollection()

	var first, second [][]models.Event
	c.Subscribe(func(events []models.Event) { first = append(first, events) })
	c.Subscribe(func(events []models.Event) { second = append(second, events) })

	c.Replace([]models.Event{{ID: "a"}})
	c.Upsert(models.Event{ID: "b"})
	c.Remove("a")

	// The second subscriber joined one snapshot later; every shared
	// update must match element for element.
	require.Len(t, first, 4)
	require.Len(t, second, 4)
	for i := 1; i < 4; i++ {
		assert.ElementsMatch(t, first[i], second[i])
	}
}

func TestCollection_MessageStreamIsTimeOrdered(t *testing.T) {
	c := NewCollection(
		func(m models.Message) string { return m.ID },
		func(a, b models.Message) bool { return a.CreatedAt.Before(b.CreatedAt) },
	)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c.Upsert(models.Message{ID: "m3", CreatedAt: base.Add(2 * time.Hour)})
	c.Upsert(models.Message{ID: "m1", CreatedAt: base})
	c.Upsert(models.Message{ID: "m2", CreatedAt: base.Add(time.Hour)})

	snapshot := c.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{snapshot[0].ID, snapshot[1].ID, snapshot[2].ID})
}

func TestStore_SameTeamSameCollections(t *testing.T) {
	s := New()

	dashboard := s.Team("team-1")
	schedule := s.Team("team-1")

	assert.Same(t, dashboard, schedule, "two screens share one read model per team")
}

func TestTeamStore_ActiveMembers(t *testing.T) {
	s := New()
	ts := s.Team("team-1")
	ts.Members.Replace([]models.Player{
		{ID: "p1", Active: true},
		{ID: "p2", Active: false},
		{ID: "p3", Active: true},
	})

	active := ts.ActiveMembers()
	assert.Len(t, active, 2)
}
