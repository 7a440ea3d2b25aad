package auth

import "net/http"

// Handler defines the interface for auth handlers
type Handler interface {
	ApplyAuth(req *http.Request) error
}
