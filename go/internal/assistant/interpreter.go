package assistant

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/teamsync/teamsync/go/internal/models"
)

const (
	markerPrefix = "[ACTION:"
	markerClose  = "]"
)

// Routes the app can navigate to. Redirect targets must fall under one of
// these.
var defaultRoutes = []string{
	"/dashboard/field",
	"/dashboard/teams",
	"/dashboard/schedule",
	"/dashboard/messages",
	"/dashboard/drills",
	"/dashboard/roster",
	"/dashboard/settings",
	"/dashboard",
}

// Context is the conversation state the interpreter resolves teams against.
type Context struct {
	Teams []models.Team

	// ActiveTeamID is set once the conversation has pinned down a team,
	// e.g. the user named one or is on a team screen.
	ActiveTeamID string
}

// ResolveTeam picks the target team for a command. A pinned team wins;
// otherwise the user must own exactly one team.
func (c Context) ResolveTeam() (string, error) {
	if c.ActiveTeamID != "" {
		return c.ActiveTeamID, nil
	}
	switch len(c.Teams) {
	case 0:
		return "", ErrNoTeam
	case 1:
		return c.Teams[0].ID, nil
	default:
		return "", ErrAmbiguousTeam
	}
}

// Interpreter turns assistant reply text into at most one typed command.
// It is a pure parse step: no side effects, no network.
type Interpreter struct {
	routes []string
}

func NewInterpreter() *Interpreter {
	return &Interpreter{routes: defaultRoutes}
}

// Interpret scans text for an action marker of the form
// [ACTION:KIND[:ARG]] and returns the corresponding command with a fresh
// correlation id. A reply with no marker returns (nil, nil).
func (i *Interpreter) Interpret(text string, convCtx Context) (*ActionCommand, error) {
	start := strings.Index(text, markerPrefix)
	if start < 0 {
		return nil, nil
	}

	rest := text[start+len(markerPrefix):]
	end := strings.Index(rest, markerClose)
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated marker", ErrMalformedAction)
	}

	inner := rest[:end]
	kind, arg, _ := strings.Cut(inner, ":")

	cmd := &ActionCommand{
		CorrelationID: uuid.New(),
		Content:       StripMarkers(text),
	}

	switch CommandKind(kind) {
	case CommandCreateEvent:
		teamID, err := convCtx.ResolveTeam()
		if err != nil {
			return nil, err
		}
		cmd.Kind = CommandCreateEvent
		cmd.TeamID = teamID

	case CommandSendMessage:
		teamID, err := convCtx.ResolveTeam()
		if err != nil {
			return nil, err
		}
		cmd.Kind = CommandSendMessage
		cmd.TeamID = teamID

	case CommandRedirect:
		if arg == "" {
			return nil, fmt.Errorf("%w: redirect without a path", ErrMalformedAction)
		}
		if !i.knownRoute(arg) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, arg)
		}
		cmd.Kind = CommandRedirect
		cmd.Path = arg

	default:
		return nil, fmt.Errorf("%w: unrecognized kind %q", ErrMalformedAction, kind)
	}

	return cmd, nil
}

func (i *Interpreter) knownRoute(path string) bool {
	// Match on the path portion only; quick actions carry query params
	// like /dashboard/field?type=practice.
	trimmed, _, _ := strings.Cut(path, "?")
	for _, route := range i.routes {
		if trimmed == route || strings.HasPrefix(trimmed, route+"/") {
			return true
		}
	}
	return false
}

// StripMarkers removes every well-formed action marker from text, leaving
// the human-readable reply. Raw marker strings never travel past this
// package.
func StripMarkers(text string) string {
	var b strings.Builder
	for {
		start := strings.Index(text, markerPrefix)
		if start < 0 {
			b.WriteString(text)
			break
		}
		end := strings.Index(text[start:], markerClose)
		if end < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:start])
		text = text[start+end+1:]
	}
	return strings.TrimSpace(b.String())
}
