package teamsync_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/teamsync/teamsync/go/internal/models"
)

func (c *TeamSyncApiClient) FetchTeams(ctx context.Context) ([]models.Team, error) {
	body, err := c.Get(ctx, TeamsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	var teams []models.Team
	if err := json.Unmarshal(body, &teams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal teams: %w", err)
	}
	return teams, nil
}

func (c *TeamSyncApiClient) FetchTeam(ctx context.Context, teamID string) (*models.Team, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s", TeamsEndpoint, teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team %s: %w", teamID, err)
	}

	var team models.Team
	if err := json.Unmarshal(body, &team); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team: %w", err)
	}
	return &team, nil
}

func (c *TeamSyncApiClient) FetchPlayers(ctx context.Context, teamID string) ([]models.Player, error) {
	body, err := c.Get(ctx, fmt.Sprintf(PlayersEndpoint, teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}

	var players []models.Player
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}
	return players, nil
}

func (c *TeamSyncApiClient) AddPlayer(ctx context.Context, teamID string, player models.Player) (*models.Player, error) {
	payload, err := json.Marshal(player)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player: %w", err)
	}

	body, err := c.Post(ctx, fmt.Sprintf(PlayersEndpoint, teamID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}

	var created models.Player
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return &created, nil
}

func (c *TeamSyncApiClient) UpdatePlayer(ctx context.Context, teamID string, player models.Player) (*models.Player, error) {
	payload, err := json.Marshal(player)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal player: %w", err)
	}

	body, err := c.Put(ctx, fmt.Sprintf(PlayersEndpoint+"/%s", teamID, player.ID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to update player %s: %w", player.ID, err)
	}

	var updated models.Player
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return &updated, nil
}

func (c *TeamSyncApiClient) DeletePlayer(ctx context.Context, teamID, playerID string) error {
	if _, err := c.Delete(ctx, fmt.Sprintf(PlayersEndpoint+"/%s", teamID, playerID)); err != nil {
		return fmt.Errorf("failed to delete player %s: %w", playerID, err)
	}
	return nil
}
