package main

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/teamsync/teamsync/go/clients/teamsync_api_client"
	"github.com/teamsync/teamsync/go/internal/assistant"
	"github.com/teamsync/teamsync/go/internal/auth"
	"github.com/teamsync/teamsync/go/internal/chat"
	"github.com/teamsync/teamsync/go/internal/executor"
	"github.com/teamsync/teamsync/go/internal/models"
	"github.com/teamsync/teamsync/go/internal/notify"
	"github.com/teamsync/teamsync/go/internal/push"
	"github.com/teamsync/teamsync/go/internal/refresh"
	"github.com/teamsync/teamsync/go/internal/store"
)

type Services struct {
	Store     *store.Store
	API       *teamsync_api_client.TeamSyncApiClient
	Executor  *executor.Executor
	Scheduler *notify.Scheduler
	Watcher   *notify.Watcher
	Chat      *chat.Service
	Refresher *refresh.Refresher
	Listener  *push.Listener
}

func setupServices(ctx context.Context, config *Config, session *auth.Session, clock clockwork.Clock) *Services {
	api := teamsync_api_client.NewTeamSyncApiClient(config.API.BaseURL)
	api.SetAuthToken(session.Token)

	st := store.New()

	scheduler := notify.NewScheduler(clock, &logDelivery{})
	watcher := notify.NewWatcher(scheduler, session.UserID, config.Notifications.LeadMinutes)

	exec := executor.New(ctx, api, st, &autoConfirmer{}, &logNavigator{}, &logRecipientNotifier{}, clock)

	interpreter := assistant.NewInterpreter()
	chatService := chat.NewService(api, interpreter, exec, st, clock)

	var listener *push.Listener
	if config.API.PushURL != "" {
		listener = push.NewListener(
			push.DefaultListenerConfig(config.API.PushURL, session.Token),
			st, scheduler, clock,
		)
	}

	return &Services{
		Store:     st,
		API:       api,
		Executor:  exec,
		Scheduler: scheduler,
		Watcher:   watcher,
		Chat:      chatService,
		Refresher: refresh.New(api, st),
		Listener:  listener,
	}
}

// logDelivery is the default notification sink: a structured log line per
// notification. A host front end swaps in the platform's notification
// center.
type logDelivery struct{}

func (d *logDelivery) Deliver(n notify.Notification) error {
	log.Info().
		Str("notification_id", n.ID).
		Str("type", n.Payload["type"]).
		Str("title", n.Title).
		Bool("sound", n.Sound).
		Msg(n.Body)
	return nil
}

// logNavigator records navigation instructions; a host front end routes
// them to its own navigation stack.
type logNavigator struct{}

func (n *logNavigator) Navigate(path string) {
	log.Info().Str("path", path).Msg("navigate")
}

// autoConfirmer accepts event drafts as-is. A host front end replaces this
// with its confirmation dialog.
type autoConfirmer struct{}

func (c *autoConfirmer) ConfirmEvent(ctx context.Context, draft models.Event) (models.Event, bool, error) {
	return draft, true, nil
}

type logRecipientNotifier struct{}

func (l *logRecipientNotifier) NotifyRecipient(message models.Message, recipient models.Player) {
	log.Debug().
		Str("message_id", message.ID).
		Str("recipient_id", recipient.ID).
		Msg("message delivery queued")
}
