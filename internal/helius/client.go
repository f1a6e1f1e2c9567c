// Package helius wraps the two Helius APIs this service consumes: the
// enhanced transaction-history REST API and the DAS getAsset RPC for
// token metadata. Both are treated as black boxes at their interface
// boundary.
package helius

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Default configuration values.
const (
	DefaultRESTBaseURL = "https://api-mainnet.helius-rpc.com"
	DefaultRPCBaseURL  = "https://mainnet.helius-rpc.com"
	DefaultTimeout     = 30 * time.Second
)

// Client talks to the Helius REST and RPC endpoints.
//
// The client deliberately carries no retry loop: the history scanner
// must see provider failures immediately rather than have them masked
// by transport-level retries.
type Client struct {
	apiKey      string
	restBaseURL string
	rpcBaseURL  string
	client      *http.Client
	requestID   atomic.Uint64
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithRESTBaseURL overrides the enhanced-transactions base URL.
func WithRESTBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.restBaseURL = u
	}
}

// WithRPCBaseURL overrides the JSON-RPC base URL.
func WithRPCBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.rpcBaseURL = u
	}
}

// NewClient creates a Helius API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:      apiKey,
		restBaseURL: DefaultRESTBaseURL,
		rpcBaseURL:  DefaultRPCBaseURL,
		client:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
