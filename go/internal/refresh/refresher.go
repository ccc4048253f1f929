package refresh

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/teamsync/teamsync/go/internal/models"
	"github.com/teamsync/teamsync/go/internal/store"
)

// API is the read surface screens refresh from. Satisfied by
// *teamsync_api_client.TeamSyncApiClient.
type API interface {
	FetchTeams(ctx context.Context) ([]models.Team, error)
	FetchPlayers(ctx context.Context, teamID string) ([]models.Player, error)
	FetchEvents(ctx context.Context, teamID string) ([]models.Event, error)
	FetchMessages(ctx context.Context, teamID string) ([]models.Message, error)
	FetchAnnouncements(ctx context.Context, teamID string) ([]models.Announcement, error)
}

// Refresher loads server state into the store when a screen appears.
// There is no durable local cache: every appearance refetches and the
// fetch result is authoritative.
type Refresher struct {
	api   API
	store *store.Store
}

func New(api API, st *store.Store) *Refresher {
	return &Refresher{api: api, store: st}
}

// RefreshTeams reloads the user's team list.
func (r *Refresher) RefreshTeams(ctx context.Context) error {
	teams, err := r.api.FetchTeams(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.store.Teams.Replace(teams)
	return nil
}

// RefreshTeam reloads every collection for one team. The four fetches run
// concurrently and each applies its own replace on completion; collections
// are independent, so out-of-order completion is fine. Cancelling ctx
// (screen went away) stops any not-yet-applied result from touching the
// store.
func (r *Refresher) RefreshTeam(ctx context.Context, teamID string) error {
	ts := r.store.Team(teamID)

	var wg sync.WaitGroup
	errs := make([]error, 4)

	run := func(slot int, apply func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[slot] = apply()
		}()
	}

	run(0, func() error {
		players, err := r.api.FetchPlayers(ctx, teamID)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ts.Members.Replace(players)
		return nil
	})

	run(1, func() error {
		events, err := r.api.FetchEvents(ctx, teamID)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ts.Events.Replace(events)
		return nil
	})

	run(2, func() error {
		messages, err := r.api.FetchMessages(ctx, teamID)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ts.Messages.Replace(messages)
		return nil
	})

	run(3, func() error {
		announcements, err := r.api.FetchAnnouncements(ctx, teamID)
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ts.Announcements.Replace(announcements)
		return nil
	})

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		log.Warn().Err(err).Str("team_id", teamID).Msg("team refresh incomplete")
		return err
	}
	return nil
}
