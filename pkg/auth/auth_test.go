package auth

import (
	"net/http"
	"strings"
	"testing"

	"github.com/saturnines/tap-cj/pkg/errors"
)

func TestBearerAuthApply(t *testing.T) {
	req, _ := http.NewRequest("POST", "https://commissions.api.cj.com/query", nil)

	h := NewBearerAuth("abc123")
	if err := h.ApplyAuth(req); err != nil {
		t.Fatal(err)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer abc123" {
		t.Errorf("unexpected Authorization header: %q", got)
	}
}

func TestBearerAuthEmptyToken(t *testing.T) {
	req, _ := http.NewRequest("POST", "https://example.com", nil)

	h := NewBearerAuth("")
	err := h.ApplyAuth(req)
	if err == nil {
		t.Fatal("expected error for empty token")
	}
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestBearerAuthStringRedacts(t *testing.T) {
	h := NewBearerAuth("super-secret")
	if s := h.String(); strings.Contains(s, "super-secret") {
		t.Errorf("String() leaks the token: %q", s)
	}
}
