package teamsync_api_client

import (
	"github.com/teamsync/teamsync/go/clients"
)

type TeamSyncApiClient struct {
	*clients.BaseClient
}

func NewTeamSyncApiClient(baseURL string) *TeamSyncApiClient {
	return &TeamSyncApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
}

// SetAuthToken attaches a bearer token to every subsequent request.
func (c *TeamSyncApiClient) SetAuthToken(token string) {
	c.SetHeader(AuthorizationHeader, BearerPrefix+token)
}
