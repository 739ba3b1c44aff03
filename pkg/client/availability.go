package client

import (
	"context"
	"fmt"
	"net/http"

	"insightery/pkg/model"
)

// AvailabilityClient is the remote counterpart of the availability service.
// It satisfies the editor's Store contract, letting dashboard hosts run an
// edit session against a remote service instead of a local repository.
type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseURL string) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseURL),
	}
}

type scheduleEnvelope struct {
	Data *model.Schedule `json:"data"`
}

func (c *AvailabilityClient) Load(ctx context.Context, insighterID string) (*model.Schedule, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/availability/insighter/"+insighterID)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability load failed with status %d: %s", resp.StatusCode, resp.Body)
	}

	var envelope scheduleEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode availability response: %w", err)
	}
	if envelope.Data == nil {
		return model.DefaultSchedule(), nil
	}
	return envelope.Data, nil
}

func (c *AvailabilityClient) Save(ctx context.Context, insighterID string, schedule *model.Schedule) error {
	resp, err := c.httpClient.PUT(ctx, "/api/v1/availability/insighter/"+insighterID, schedule)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("availability save failed with status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
