package notify

import "errors"

// Notification payload types, used by the host platform to route a tap
// back into the app.
const (
	TypeEventReminder     = "eventReminder"
	TypeMessage           = "message"
	TypeAnnouncement      = "announcement"
	TypeAttendanceRequest = "attendanceRequest"
)

// Notification is one local notification handed to the platform sink.
type Notification struct {
	ID      string
	Title   string
	Body    string
	Sound   bool
	Payload map[string]string
}

// Delivery is the platform notification sink. Implementations post the
// notification to whatever the host OS provides.
type Delivery interface {
	Deliver(n Notification) error
}

// ErrPermissionDenied is returned by a Delivery when the user has not
// granted notification permission. It is reported once per session and
// individual items are not retried.
var ErrPermissionDenied = errors.New("notification permission denied")
