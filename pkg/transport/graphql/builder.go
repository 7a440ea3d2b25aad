package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/saturnines/tap-cj/pkg/auth"
	"github.com/saturnines/tap-cj/pkg/pagination"
)

// Builder constructs GraphQL requests for one publisher/window pair.
type Builder struct {
	Endpoint    string
	Query       string // Raw query template with placeholder tokens
	Headers     map[string]string
	AuthHandler auth.Handler
}

// NewBuilder sets up a GraphQL Builder.
// Endpoint is the full URL of your GraphQL endpoint.
func NewBuilder(endpoint, query string, opts ...BuilderOption) *Builder {
	b := &Builder{
		Endpoint: endpoint,
		Query:    query,
	}
	b.ApplyOptions(opts...)
	return b
}

// Build creates the *http.Request with JSON body for one pagination step.
func (b *Builder) Build(ctx context.Context, pubID string, w pagination.Window) (*http.Request, error) {
	rendered, err := RenderQuery(b.Query, pubID, w)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"query": rendered,
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}
