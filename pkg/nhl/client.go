package nhl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nhlpxp/pkg/errors"
	"nhlpxp/pkg/logger"
	"nhlpxp/pkg/ratelimit"
)

// Client talks to the upstream stats API. It performs network I/O only;
// persistence is the repository's job.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    ratelimit.Limiter
	logger     logger.Logger
}

// NewClient creates an API client. The limiter throttles the per-game
// log endpoint only; pass nil to disable throttling.
func NewClient(baseURL string, timeout time.Duration, limiter ratelimit.Limiter, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if baseURL == "" {
		baseURL = BaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		limiter: limiter,
		logger:  log,
	}
}

// GameIDsForDate lists the game identifiers scheduled on the given day.
// A day with no games returns a nil slice and no error. This endpoint
// is cheap and not rate limited.
func (c *Client) GameIDsForDate(date time.Time) ([]int, error) {
	isoDate := date.Format("2006-01-02")
	url := ScheduleURL(c.baseURL, isoDate)

	c.logger.DebugWithFields("fetching schedule", map[string]interface{}{
		"date": isoDate,
		"url":  url,
	})

	var schedule Schedule
	if _, err := c.getJSON(url, &schedule); err != nil {
		return nil, err
	}

	var gameIDs []int
	for _, day := range schedule.Dates {
		for _, game := range day.Games {
			if game.GamePk != 0 {
				gameIDs = append(gameIDs, game.GamePk)
			}
		}
	}

	c.logger.DebugWithFields("schedule fetched", map[string]interface{}{
		"date":  isoDate,
		"games": len(gameIDs),
	})

	return gameIDs, nil
}

// GameLog fetches the full live feed for a game. The call blocks on the
// rate limiter before touching the network. The raw body is returned
// alongside the decoded payload so callers can preserve it for
// forward-compatible re-parsing.
func (c *Client) GameLog(gameID int) (*GameLog, []byte, error) {
	if c.limiter != nil {
		c.limiter.Wait()
	}

	url := GameLogURL(c.baseURL, gameID)

	c.logger.DebugWithFields("fetching game log", map[string]interface{}{
		"game_id": gameID,
		"url":     url,
	})

	var gameLog GameLog
	raw, err := c.getJSON(url, &gameLog)
	if err != nil {
		return nil, nil, err
	}

	c.logger.DebugWithFields("game log fetched", map[string]interface{}{
		"game_id": gameID,
		"plays":   len(gameLog.LiveData.Plays.AllPlays),
		"bytes":   len(raw),
	})

	return &gameLog, raw, nil
}

// getJSON performs a GET request and decodes the JSON response,
// returning the raw body. Failures are classified, never swallowed;
// retry policy belongs to the caller.
func (c *Client) getJSON(url string, target interface{}) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewTransport(fmt.Sprintf("failed to create request: %v", err), 0, err)
	}
	req.Header.Set("User-Agent", "nhlpxp/1.0")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, errors.NewTransport(fmt.Sprintf("request failed: %v", err), 0, err)
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewTransport(
			fmt.Sprintf("upstream returned status %d for %s", resp.StatusCode, url),
			resp.StatusCode, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransport(fmt.Sprintf("failed to read response body: %v", err), resp.StatusCode, err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return nil, errors.NewParsing(fmt.Sprintf("failed to parse response from %s: %v", url, err), err)
	}

	return body, nil
}
