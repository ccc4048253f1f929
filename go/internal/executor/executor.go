package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/teamsync/teamsync/go/clients/teamsync_api_client"
	"github.com/teamsync/teamsync/go/internal/assistant"
	"github.com/teamsync/teamsync/go/internal/models"
	"github.com/teamsync/teamsync/go/internal/store"
)

// API is the backend surface the executor needs. Satisfied by
// *teamsync_api_client.TeamSyncApiClient.
type API interface {
	CreateEvent(ctx context.Context, teamID string, event models.Event) (*models.Event, error)
	SendMessage(ctx context.Context, teamID string, req teamsync_api_client.SendMessageRequest) (*models.Message, error)
	FetchPlayers(ctx context.Context, teamID string) ([]models.Player, error)
}

// EventConfirmer is the confirmation surface for CreateEvent: it shows the
// pre-filled draft and returns the event to submit. confirmed=false means
// the user backed out and nothing is sent.
type EventConfirmer interface {
	ConfirmEvent(ctx context.Context, draft models.Event) (event models.Event, confirmed bool, err error)
}

// Navigator receives redirect instructions. No network is involved.
type Navigator interface {
	Navigate(path string)
}

// RecipientNotifier observes the per-recipient fan-out of a sent message.
type RecipientNotifier interface {
	NotifyRecipient(message models.Message, recipient models.Player)
}

// Result is the outcome of one executed command. Duplicate submissions of
// a correlation id get the first result back.
type Result struct {
	CorrelationID uuid.UUID
	Kind          assistant.CommandKind

	Event        *models.Event
	Message      *models.Message
	RedirectPath string

	// Cancelled is set when the user declined the confirmation surface.
	Cancelled bool
}

type execution struct {
	done   chan struct{}
	result *Result
	err    error
}

// Executor applies an ActionCommand exactly once against the backend and
// folds the result into the store. Execution tracking lives for the
// session: a correlation id submitted twice costs one network call.
type Executor struct {
	api       API
	store     *store.Store
	confirmer EventConfirmer
	navigator Navigator
	notifier  RecipientNotifier
	clock     clockwork.Clock
	validate  *validator.Validate

	// baseCtx outlives any initiating screen: an in-flight command always
	// completes and updates state.
	baseCtx context.Context

	mu         sync.Mutex
	executions map[uuid.UUID]*execution
}

func New(baseCtx context.Context, api API, st *store.Store, confirmer EventConfirmer, navigator Navigator, notifier RecipientNotifier, clock clockwork.Clock) *Executor {
	return &Executor{
		api:        api,
		store:      st,
		confirmer:  confirmer,
		navigator:  navigator,
		notifier:   notifier,
		clock:      clock,
		validate:   validator.New(),
		baseCtx:    baseCtx,
		executions: make(map[uuid.UUID]*execution),
	}
}

// Execute runs cmd at most once. A duplicate correlation id joins the
// original execution and returns its result. ctx only bounds the caller's
// wait; the command itself runs on the executor's base context so side
// effects are never silently lost when a screen goes away.
func (e *Executor) Execute(ctx context.Context, cmd assistant.ActionCommand) (*Result, error) {
	e.mu.Lock()
	if ex, ok := e.executions[cmd.CorrelationID]; ok {
		e.mu.Unlock()
		log.Debug().
			Str("correlation_id", cmd.CorrelationID.String()).
			Msg("duplicate submission, joining original execution")
		return e.await(ctx, ex)
	}
	ex := &execution{done: make(chan struct{})}
	e.executions[cmd.CorrelationID] = ex
	e.mu.Unlock()

	go func() {
		ex.result, ex.err = e.run(cmd)
		close(ex.done)
	}()

	return e.await(ctx, ex)
}

func (e *Executor) await(ctx context.Context, ex *execution) (*Result, error) {
	select {
	case <-ex.done:
		return ex.result, ex.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Executor) run(cmd assistant.ActionCommand) (*Result, error) {
	switch cmd.Kind {
	case assistant.CommandCreateEvent:
		return e.runCreateEvent(cmd)
	case assistant.CommandSendMessage:
		return e.runSendMessage(cmd)
	case assistant.CommandRedirect:
		return e.runRedirect(cmd)
	default:
		return nil, fmt.Errorf("%w: unknown command kind %q", ErrValidation, cmd.Kind)
	}
}

func (e *Executor) runCreateEvent(cmd assistant.ActionCommand) (*Result, error) {
	if cmd.TeamID == "" {
		return nil, fmt.Errorf("%w: create event requires a team", ErrValidation)
	}

	draft := e.draftEvent(cmd.TeamID)
	event, confirmed, err := e.confirmer.ConfirmEvent(e.baseCtx, draft)
	if err != nil {
		return nil, fmt.Errorf("event confirmation failed: %w", err)
	}
	if !confirmed {
		log.Debug().
			Str("correlation_id", cmd.CorrelationID.String()).
			Msg("event creation declined")
		return &Result{CorrelationID: cmd.CorrelationID, Kind: cmd.Kind, Cancelled: true}, nil
	}

	event.TeamID = cmd.TeamID
	if err := e.validate.Struct(event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	created, err := e.api.CreateEvent(e.baseCtx, cmd.TeamID, event)
	if err != nil {
		// Nothing was applied locally; the user can retry.
		return nil, err
	}

	e.store.Team(cmd.TeamID).Events.Upsert(*created)
	log.Info().
		Str("correlation_id", cmd.CorrelationID.String()).
		Str("event_id", created.ID).
		Str("team_id", cmd.TeamID).
		Msg("event created")

	return &Result{CorrelationID: cmd.CorrelationID, Kind: cmd.Kind, Event: created}, nil
}

func (e *Executor) runSendMessage(cmd assistant.ActionCommand) (*Result, error) {
	if cmd.TeamID == "" {
		return nil, fmt.Errorf("%w: send message requires a team", ErrValidation)
	}
	if cmd.Content == "" {
		return nil, fmt.Errorf("%w: message content is empty", ErrValidation)
	}

	recipients, err := e.resolveRecipients(cmd.TeamID)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: team %s has no active members", ErrValidation, cmd.TeamID)
	}

	recipientIDs := make([]string, len(recipients))
	for i, p := range recipients {
		recipientIDs[i] = p.ID
	}

	sent, err := e.api.SendMessage(e.baseCtx, cmd.TeamID, teamsync_api_client.SendMessageRequest{
		Content:     cmd.Content,
		MessageType: models.MessageText,
		Recipients:  recipientIDs,
		SendEmail:   true,
	})
	if err != nil {
		return nil, err
	}

	e.store.Team(cmd.TeamID).Messages.Upsert(*sent)
	for _, recipient := range recipients {
		e.notifier.NotifyRecipient(*sent, recipient)
	}
	log.Info().
		Str("correlation_id", cmd.CorrelationID.String()).
		Str("message_id", sent.ID).
		Int("recipients", len(recipients)).
		Msg("message sent")

	return &Result{CorrelationID: cmd.CorrelationID, Kind: cmd.Kind, Message: sent}, nil
}

func (e *Executor) runRedirect(cmd assistant.ActionCommand) (*Result, error) {
	e.navigator.Navigate(cmd.Path)
	log.Debug().
		Str("correlation_id", cmd.CorrelationID.String()).
		Str("path", cmd.Path).
		Msg("redirect emitted")
	return &Result{CorrelationID: cmd.CorrelationID, Kind: cmd.Kind, RedirectPath: cmd.Path}, nil
}

// resolveRecipients prefers the roster already in the store and falls back
// to a fetch when no roster has been loaded yet.
func (e *Executor) resolveRecipients(teamID string) ([]models.Player, error) {
	ts := e.store.Team(teamID)
	if ts.Members.Len() > 0 {
		return ts.ActiveMembers(), nil
	}

	players, err := e.api.FetchPlayers(e.baseCtx, teamID)
	if err != nil {
		return nil, err
	}
	ts.Members.Replace(players)
	return ts.ActiveMembers(), nil
}

// draftEvent builds the pre-filled event shown on the confirmation surface.
func (e *Executor) draftEvent(teamID string) models.Event {
	start := e.clock.Now().Add(24 * time.Hour).Truncate(time.Hour)
	return models.Event{
		TeamID:    teamID,
		Title:     "Practice",
		EventType: models.EventPractice,
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	}
}
