// Package budget enforces the daily quota of partner API calls.
//
// Two implementations are provided: Memory, for a single process, and Redis,
// shared by every replica that points at the same server. Both reset at the
// start of each calendar day in the configured timezone.
package budget

import (
	"context"
	"errors"
)

// ErrExhausted is returned by Reserve when the day's quota is used up.
var ErrExhausted = errors.New("daily api call budget exhausted")

// Budget hands out one call at a time.
type Budget interface {
	// Reserve takes one call from today's quota or fails with ErrExhausted.
	Reserve(ctx context.Context) error

	// Remaining returns the calls left today.
	Remaining(ctx context.Context) (int64, error)
}

// Unlimited never runs out.
type Unlimited struct{}

// Reserve always succeeds.
func (Unlimited) Reserve(context.Context) error { return nil }

// Remaining reports -1, meaning no limit.
func (Unlimited) Remaining(context.Context) (int64, error) { return -1, nil }

var _ Budget = Unlimited{}
