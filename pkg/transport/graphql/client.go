package graphql

import "net/http"

// HTTPDoer is the minimal interface over *http.Client used by the transport.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes GraphQL operations.
type Client struct {
	doer HTTPDoer
}

// NewClient wraps an HTTPDoer (e.g. *http.Client or a retry transport).
func NewClient(doer HTTPDoer) *Client {
	return &Client{doer: doer}
}

// Execute sends a built request.
func (c *Client) Execute(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}
