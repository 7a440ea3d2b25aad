package graphql

import (
	"strings"
	"testing"
	"time"

	"github.com/saturnines/tap-cj/pkg/errors"
	"github.com/saturnines/tap-cj/pkg/pagination"
)

func testWindow(t *testing.T) pagination.Window {
	t.Helper()
	from, err := time.Parse(pagination.DateFormat, "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	return pagination.Window{From: from, To: from.AddDate(0, 0, 28)}
}

func TestRenderQuerySubstitution(t *testing.T) {
	got, err := RenderQuery(DefaultCommissionsQuery, "12345", testWindow(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, token := range []string{TokenPubID, TokenFromDate, TokenToDate} {
		if strings.Contains(got, token) {
			t.Errorf("rendered query still contains %s", token)
		}
	}
	if !strings.Contains(got, `forPublishers: ["12345"]`) {
		t.Errorf("publisher id not substituted: %s", got)
	}
	// substituted dates keep the adjacent time suffix intact
	if !strings.Contains(got, `sincePostingDate:"2024-01-01T00:00:00Z"`) {
		t.Errorf("from date not substituted: %s", got)
	}
	if !strings.Contains(got, `beforePostingDate:"2024-01-29T00:00:00Z"`) {
		t.Errorf("to date not substituted: %s", got)
	}
}

func TestRenderQuerySingleLine(t *testing.T) {
	got, err := RenderQuery(DefaultCommissionsQuery, "p1", testWindow(t))
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(got, "\n\r\t") {
		t.Errorf("rendered query is not a single line: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("rendered query has uncollapsed whitespace: %q", got)
	}
}

func TestRenderQueryWrapsQueryBlock(t *testing.T) {
	got, err := RenderQuery("publisherCommissions { count }", "p1", testWindow(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "query { ") || !strings.HasSuffix(got, " }") {
		t.Errorf("expected wrapped query block, got %q", got)
	}

	// already wrapped templates are left alone
	got, err = RenderQuery("query { publisherCommissions { count } }", "p1", testWindow(t))
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got, "query { query") {
		t.Errorf("double wrapped query: %q", got)
	}
}

func TestRenderQueryMissingTemplate(t *testing.T) {
	_, err := RenderQuery("", "p1", testWindow(t))
	if err == nil {
		t.Fatal("expected error for empty template")
	}
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	_, err = RenderQuery("   \n\t ", "p1", testWindow(t))
	if err == nil {
		t.Fatal("expected error for blank template")
	}
}
