package graphql

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/saturnines/tap-cj/pkg/auth"
)

func TestBuilderBuild(t *testing.T) {
	b := NewBuilder(
		"https://commissions.api.cj.com/query",
		DefaultCommissionsQuery,
		WithAuthHandler(auth.NewBearerAuth("secret-token")),
		WithUserAgent("tap-cj/1.0"),
	)

	req, err := b.Build(context.Background(), "p1", testWindow(t))
	if err != nil {
		t.Fatal(err)
	}

	if req.Method != "POST" {
		t.Errorf("expected POST, got %s", req.Method)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer secret-token" {
		t.Errorf("unexpected Authorization header: %q", got)
	}
	if got := req.Header.Get("User-Agent"); got != "tap-cj/1.0" {
		t.Errorf("unexpected User-Agent header: %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("unexpected Content-Type: %q", got)
	}

	var body map[string]string
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	query, ok := body["query"]
	if !ok {
		t.Fatal("request body has no query field")
	}
	if strings.Contains(query, "\n") {
		t.Errorf("query body is not flattened: %q", query)
	}
	if strings.Contains(query, TokenPubID) {
		t.Errorf("query body has unsubstituted tokens: %q", query)
	}
}

func TestBuilderBuildEmptyQuery(t *testing.T) {
	b := NewBuilder("https://example.com/query", "")
	if _, err := b.Build(context.Background(), "p1", testWindow(t)); err == nil {
		t.Fatal("expected error for missing query template")
	}
}
