/* dathost.go
 * Contains the HTTP client for the DatHost game server API. All requests use basic auth and
 * pass through a rate limiter; DatHost throttles aggressively and a veto completing across
 * several series at once would otherwise burst
 * Authors: Zachary Bower
 */

package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://dathost.net/api/0.1"

// Client talks to the DatHost API for one account
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	HTTPClient *http.Client

	limiter *rate.Limiter
}

// NewClient creates a DatHost API client
// Preconditions: Receives the account username and password
// Postconditions: Returns a Client limited to one request per second
func NewClient(username string, password string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		Username:   username,
		Password:   password,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// CreateMatch books one map on a game server
// Preconditions: Receives a context and a populated CreateMatchRequest
// Postconditions: Returns the created match id, or an error if it occurs
func (c *Client) CreateMatch(ctx context.Context, req CreateMatchRequest) (CreateMatchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return CreateMatchResponse{}, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return CreateMatchResponse{}, fmt.Errorf("failed to encode match request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/cs2-matches", bytes.NewReader(payload))
	if err != nil {
		return CreateMatchResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("accept", "application/json")
	request.Header.Set("content-type", "application/json")
	request.SetBasicAuth(c.Username, c.Password)

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return CreateMatchResponse{}, fmt.Errorf("match host request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return CreateMatchResponse{}, fmt.Errorf("match host returned status %d: %s", response.StatusCode, string(body))
	}

	var created CreateMatchResponse
	if err := json.NewDecoder(response.Body).Decode(&created); err != nil {
		return CreateMatchResponse{}, fmt.Errorf("failed to decode match response: %w", err)
	}
	return created, nil
}
