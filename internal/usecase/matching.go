package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"blinddate-booking/internal/data/entity"
	"blinddate-booking/internal/negotiation"
	"blinddate-booking/pkg/utils"

	"go.uber.org/zap"
)

// MatchDirectory is the matching-service collaborator. The booking service
// only reads the confirmed (user1, user2) pair a booking is seeded from.
type MatchDirectory interface {
	GetConfirmedMatch(ctx context.Context, matchID int64) (*entity.Match, error)
}

type matchingClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewMatchingClient(config utils.MatchingConfig, log *zap.Logger) MatchDirectory {
	return &matchingClient{
		baseURL: config.BaseURL,
		http: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		log: log.With(zap.String("client", "matching")),
	}
}

func (c *matchingClient) GetConfirmedMatch(ctx context.Context, matchID int64) (*entity.Match, error) {
	url := fmt.Sprintf("%s/matches/%d", c.baseURL, matchID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build matching request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Matching service unreachable",
			zap.Error(err),
			zap.Int64("match_id", matchID),
		)
		return nil, fmt.Errorf("get match %d: %w", matchID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("match %d: %w", matchID, negotiation.ErrMatchNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("get match %d: matching service returned %d", matchID, resp.StatusCode)
	}

	var match entity.Match
	if err := json.NewDecoder(resp.Body).Decode(&match); err != nil {
		return nil, fmt.Errorf("decode match %d: %w", matchID, err)
	}

	return &match, nil
}
