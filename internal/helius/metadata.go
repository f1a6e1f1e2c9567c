package helius

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
)

// ErrAssetNotFound is returned when the metadata provider has no record
// for a mint.
var ErrAssetNotFound = errors.New("asset not found")

// defaultDecimals is assumed when the provider omits token_info.
const defaultDecimals = 6

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// getAssetResult is the subset of the DAS getAsset response consumed
// for display metadata.
type getAssetResult struct {
	Content *struct {
		Metadata *struct {
			Symbol string `json:"symbol"`
			Name   string `json:"name"`
		} `json:"metadata"`
	} `json:"content"`
	TokenInfo *struct {
		Symbol   string `json:"symbol"`
		Name     string `json:"name"`
		Decimals *int   `json:"decimals"`
	} `json:"token_info"`
}

// GetAsset fetches display metadata for a mint via DAS getAsset.
// Returns ErrAssetNotFound when the provider reports no such asset.
func (c *Client) GetAsset(ctx context.Context, mint string) (*domain.TokenMetadata, error) {
	u, err := url.Parse(c.rpcBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc base url: %w", err)
	}
	q := u.Query()
	q.Set("api-key", c.apiKey)
	u.RawQuery = q.Encode()

	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  "getAsset",
		Params:  map[string]string{"id": mint},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset metadata: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata API status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}
	if rpcResp.Result == nil || string(rpcResp.Result) == "null" {
		return nil, ErrAssetNotFound
	}

	var result getAssetResult
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		return nil, fmt.Errorf("unmarshal asset: %w", err)
	}

	meta := &domain.TokenMetadata{Decimals: defaultDecimals}
	if result.Content != nil && result.Content.Metadata != nil {
		meta.Symbol = result.Content.Metadata.Symbol
		meta.Name = result.Content.Metadata.Name
	}
	if result.TokenInfo != nil {
		if meta.Symbol == "" {
			meta.Symbol = result.TokenInfo.Symbol
		}
		if meta.Name == "" {
			meta.Name = result.TokenInfo.Name
		}
		if result.TokenInfo.Decimals != nil {
			meta.Decimals = *result.TokenInfo.Decimals
		}
	}

	return meta, nil
}
