package pagination

import (
	"fmt"
	"time"

	"github.com/saturnines/tap-cj/pkg/errors"
)

// DateFormat is the wire format for all date parameters.
const DateFormat = "2006-01-02"

// Window is one closed-open [From, To) date range used as query parameters
// for a single page of results.
type Window struct {
	From time.Time
	To   time.Time
}

// WindowFrom derives the window for one pagination step: [start, start+increment),
// clipped at end. Keeping this a pure function makes the boundary policy a single
// testable decision.
func WindowFrom(start time.Time, incrementDays int, end time.Time) Window {
	to := start.AddDate(0, 0, incrementDays)
	if to.After(end) {
		to = end
	}
	return Window{From: start, To: to}
}

var _ Pager = (*DateCursor)(nil)

// DateCursor walks forward through a bounded date range in fixed-size day chunks.
// The end bound is captured once at construction, so a long-running sync keeps a
// fixed boundary. current never decreases; the cursor is exhausted exactly when
// current >= end.
type DateCursor struct {
	current   time.Time
	end       time.Time
	increment int
}

// NewDateCursor builds a DateCursor from a YYYY-MM-DD start date, bounded at today.
func NewDateCursor(startDate string, incrementDays int) (*DateCursor, error) {
	return NewDateCursorAt(startDate, incrementDays, time.Now().UTC().Truncate(24*time.Hour))
}

// NewDateCursorAt builds a DateCursor with an explicit end bound.
func NewDateCursorAt(startDate string, incrementDays int, end time.Time) (*DateCursor, error) {
	start, err := time.Parse(DateFormat, startDate)
	if err != nil {
		return nil, errors.WrapError(
			fmt.Errorf("start date %q: %w", startDate, err),
			errors.ErrConfiguration,
			"parse start date",
		)
	}
	if incrementDays <= 0 {
		return nil, errors.WrapError(
			fmt.Errorf("increment must be positive, got %d", incrementDays),
			errors.ErrConfiguration,
			"date cursor increment",
		)
	}

	return &DateCursor{
		current:   start,
		end:       end,
		increment: incrementDays,
	}, nil
}

// HasMore reports whether there are more windows to process.
func (c *DateCursor) HasMore() bool {
	return c.current.Before(c.end)
}

// Window returns the window for the current pagination step.
func (c *DateCursor) Window() Window {
	return WindowFrom(c.current, c.increment, c.end)
}

// Advance moves the cursor forward one increment and returns the new position.
// Returns false when the cursor is exhausted.
func (c *DateCursor) Advance() (time.Time, bool) {
	if !c.HasMore() {
		return time.Time{}, false
	}
	c.current = c.current.AddDate(0, 0, c.increment)
	return c.current, true
}

// End returns the end pagination bound.
func (c *DateCursor) End() time.Time {
	return c.end
}

// Increment returns the cursor increment in days.
func (c *DateCursor) Increment() int {
	return c.increment
}
