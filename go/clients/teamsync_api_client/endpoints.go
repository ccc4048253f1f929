package teamsync_api_client

const (
	// API Endpoints
	TeamsEndpoint         = "/teams"
	PlayersEndpoint       = "/teams/%s/players"
	EventsEndpoint        = "/teams/%s/events"
	AttendanceEndpoint    = "/teams/%s/events/%s/attendance"
	MessagesEndpoint      = "/teams/%s/messages"
	AnnouncementsEndpoint = "/teams/%s/announcements"
	DrillsEndpoint        = "/drills"
	StrategiesEndpoint    = "/strategies"
	ChatEndpoint          = "/chat"

	// Headers
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)
