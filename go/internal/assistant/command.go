package assistant

import (
	"github.com/google/uuid"
)

// CommandKind is the closed set of side effects the assistant may request.
type CommandKind string

const (
	CommandCreateEvent CommandKind = "CREATE_EVENT"
	CommandSendMessage CommandKind = "SEND_MESSAGE"
	CommandRedirect    CommandKind = "REDIRECT"
)

// ActionCommand is a typed, transient command produced by the interpreter.
// The correlation id is unique per issuance and keys idempotent execution:
// submitting the same command value twice must result in one network call.
type ActionCommand struct {
	CorrelationID uuid.UUID
	Kind          CommandKind

	// TeamID is the resolved target team for CreateEvent and SendMessage.
	TeamID string

	// Content is the assistant's reply with markers stripped, used as the
	// message body for SendMessage.
	Content string

	// Path is the navigation target for Redirect.
	Path string
}
