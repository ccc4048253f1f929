package assistant

import "errors"

// ErrMalformedAction is returned for unmatched brackets or an unknown
// action kind inside a marker.
var ErrMalformedAction = errors.New("malformed action marker")

// ErrUnknownRoute is returned when a redirect target has no known prefix.
var ErrUnknownRoute = errors.New("unknown route")

// ErrAmbiguousTeam is returned when the user has more than one team and the
// conversation did not pin one down.
var ErrAmbiguousTeam = errors.New("ambiguous team")

// ErrNoTeam is returned when the user has no teams at all to act on.
var ErrNoTeam = errors.New("no team")
