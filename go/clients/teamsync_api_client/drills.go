package teamsync_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/teamsync/teamsync/go/internal/models"
)

func (c *TeamSyncApiClient) FetchDrills(ctx context.Context, ageGroup string) ([]models.Drill, error) {
	endpoint := fmt.Sprintf("%s?ageGroup=%s", DrillsEndpoint, url.QueryEscape(ageGroup))
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drills: %w", err)
	}

	var drills []models.Drill
	if err := json.Unmarshal(body, &drills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal drills: %w", err)
	}
	return drills, nil
}

func (c *TeamSyncApiClient) FetchPlayStrategies(ctx context.Context, ageGroup string) ([]models.PlayStrategy, error) {
	endpoint := fmt.Sprintf("%s?ageGroup=%s", StrategiesEndpoint, url.QueryEscape(ageGroup))
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch strategies: %w", err)
	}

	var strategies []models.PlayStrategy
	if err := json.Unmarshal(body, &strategies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal strategies: %w", err)
	}
	return strategies, nil
}
