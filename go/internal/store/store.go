package store

import (
	"sync"

	"github.com/teamsync/teamsync/go/internal/models"
)

// TeamStore holds every collection for one team. Screens subscribe to the
// collections they render; the Action Executor and push listener write into
// them.
type TeamStore struct {
	TeamID        string
	Events        *Collection[models.Event]
	Members       *Collection[models.Player]
	Messages      *Collection[models.Message]
	Announcements *Collection[models.Announcement]
	Attendance    *Collection[models.EventAttendance]
}

func newTeamStore(teamID string) *TeamStore {
	return &TeamStore{
		TeamID:  teamID,
		Events:  NewCollection(func(e models.Event) string { return e.ID }, nil),
		Members: NewCollection(func(p models.Player) string { return p.ID }, nil),
		Messages: NewCollection(
			func(m models.Message) string { return m.ID },
			func(a, b models.Message) bool { return a.CreatedAt.Before(b.CreatedAt) },
		),
		Announcements: NewCollection(func(a models.Announcement) string { return a.ID }, nil),
		Attendance:    NewCollection(func(a models.EventAttendance) string { return a.ID }, nil),
	}
}

// ActiveMembers returns the team's active roster, the default recipient set
// for team-wide sends.
func (ts *TeamStore) ActiveMembers() []models.Player {
	var active []models.Player
	for _, p := range ts.Members.Snapshot() {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// Store is the root read model: the user's teams plus per-team collections.
type Store struct {
	Teams *Collection[models.Team]

	mu        sync.Mutex
	teamState map[string]*TeamStore
}

func New() *Store {
	return &Store{
		Teams:     NewCollection(func(t models.Team) string { return t.ID }, nil),
		teamState: make(map[string]*TeamStore),
	}
}

// Team returns the per-team store, creating it on first use. Two screens
// asking for the same team get the same collections, so they observe the
// same state sequence.
func (s *Store) Team(teamID string) *TeamStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, ok := s.teamState[teamID]
	if !ok {
		ts = newTeamStore(teamID)
		s.teamState[teamID] = ts
	}
	return ts
}

// TeamIDs returns the ids of every team with local state.
func (s *Store) TeamIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.teamState))
	for id := range s.teamState {
		ids = append(ids, id)
	}
	return ids
}
