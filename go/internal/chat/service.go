package chat

import (
	"context"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/teamsync/teamsync/go/internal/assistant"
	"github.com/teamsync/teamsync/go/internal/executor"
	"github.com/teamsync/teamsync/go/internal/models"
	"github.com/teamsync/teamsync/go/internal/store"
)

// ActionFailedReply is shown when the assistant asked for an action the
// pipeline could not carry out. State is never partially changed.
const ActionFailedReply = "I couldn't complete that action."

// API is the assistant endpoint the service talks to.
type API interface {
	SendChatMessage(ctx context.Context, message string, chatContext map[string]interface{}) (string, error)
}

// CommandRunner executes interpreted commands. Satisfied by
// *executor.Executor.
type CommandRunner interface {
	Execute(ctx context.Context, cmd assistant.ActionCommand) (*executor.Result, error)
}

// Turn is the outcome of one conversational exchange.
type Turn struct {
	// Reply is the assistant's text with action markers stripped.
	Reply string

	// Result is set when the reply carried an action that was executed.
	Result *executor.Result

	// ActionErr is set when the reply carried an action that failed to
	// parse or execute. The conversation continues; the caller surfaces
	// ActionFailedReply.
	ActionErr error
}

// Service drives the assistant conversation: it ships each user message
// with a context snapshot of the user's teams, then routes any action
// marker in the reply through the interpreter and executor.
type Service struct {
	api         API
	interpreter *assistant.Interpreter
	runner      CommandRunner
	store       *store.Store
	clock       clockwork.Clock

	mu           sync.Mutex
	activeTeamID string
}

func NewService(api API, interpreter *assistant.Interpreter, runner CommandRunner, st *store.Store, clock clockwork.Clock) *Service {
	return &Service{
		api:         api,
		interpreter: interpreter,
		runner:      runner,
		store:       st,
		clock:       clock,
	}
}

// SetActiveTeam pins the conversation to one team, resolving the target
// for subsequent assistant actions. An empty id unpins.
func (s *Service) SetActiveTeam(teamID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTeamID = teamID
}

// Send posts one user message and handles the reply end to end.
func (s *Service) Send(ctx context.Context, message string) (*Turn, error) {
	reply, err := s.api.SendChatMessage(ctx, message, s.buildContext())
	if err != nil {
		return nil, err
	}

	turn := &Turn{Reply: assistant.StripMarkers(reply)}

	s.mu.Lock()
	convCtx := assistant.Context{
		Teams:        s.store.Teams.Snapshot(),
		ActiveTeamID: s.activeTeamID,
	}
	s.mu.Unlock()

	cmd, err := s.interpreter.Interpret(reply, convCtx)
	if err != nil {
		log.Warn().Err(err).Msg("assistant action could not be interpreted")
		turn.ActionErr = err
		return turn, nil
	}
	if cmd == nil {
		return turn, nil
	}

	result, err := s.runner.Execute(ctx, *cmd)
	if err != nil {
		log.Warn().
			Err(err).
			Str("correlation_id", cmd.CorrelationID.String()).
			Str("kind", string(cmd.Kind)).
			Msg("assistant action failed")
		turn.ActionErr = err
		return turn, nil
	}

	turn.Result = result
	return turn, nil
}

// buildContext snapshots the user's teams for the assistant: roster sizes,
// position breakdowns and upcoming events.
func (s *Service) buildContext() map[string]interface{} {
	now := s.clock.Now()
	teams := s.store.Teams.Snapshot()

	teamContexts := make([]map[string]interface{}, 0, len(teams))
	for _, team := range teams {
		ts := s.store.Team(team.ID)

		positions := make(map[string]int)
		for _, p := range ts.Members.Snapshot() {
			if p.Active {
				positions[p.Position]++
			}
		}

		var upcoming []models.Event
		for _, event := range ts.Events.Snapshot() {
			if event.StartTime.After(now) {
				upcoming = append(upcoming, event)
			}
		}
		sort.Slice(upcoming, func(i, j int) bool {
			return upcoming[i].StartTime.Before(upcoming[j].StartTime)
		})

		events := make([]map[string]interface{}, 0, len(upcoming))
		for _, event := range upcoming {
			events = append(events, map[string]interface{}{
				"title":      event.Title,
				"type":       string(event.EventType),
				"start_time": event.StartTime,
			})
		}

		teamContexts = append(teamContexts, map[string]interface{}{
			"id":              team.ID,
			"name":            team.Name,
			"age_group":       team.AgeGroup,
			"player_count":    len(ts.ActiveMembers()),
			"positions":       positions,
			"upcoming_events": events,
		})
	}

	return map[string]interface{}{
		"teams": teamContexts,
	}
}
