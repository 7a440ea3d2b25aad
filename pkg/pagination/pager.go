package pagination

import "time"

// Pager drives one pagination strategy.
type Pager interface {
	HasMore() bool
	Window() Window
	Advance() (time.Time, bool)
}
