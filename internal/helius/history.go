package helius

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
)

// maxErrorBody bounds how much of an error response is echoed into
// error messages.
const maxErrorBody = 512

// Transactions fetches one page of enhanced transaction history for a
// wallet, newest first. An empty before cursor starts at the most
// recent transaction; an empty result marks the end of history.
func (c *Client) Transactions(ctx context.Context, wallet, before string) ([]domain.TransactionRecord, error) {
	u, err := url.Parse(c.restBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rest base url: %w", err)
	}
	u.Path = "/v0/addresses/" + wallet + "/transactions"

	q := u.Query()
	q.Set("api-key", c.apiKey)
	if before != "" {
		q.Set("before", before)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction history: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history API status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var records []domain.TransactionRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("unmarshal transaction history: %w", err)
	}

	return records, nil
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
