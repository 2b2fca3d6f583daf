package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// AvailabilityProvider answers atomic award availability queries.
// Implementations return *ProviderError on failure so the kind survives aggregation.
type AvailabilityProvider interface {
	// Name returns the unique identifier of this provider (e.g., "seatsaero").
	Name() string

	// Fetch returns the candidates for one origin, destination, program and date.
	// Implementations must honor ctx cancellation and deadlines.
	Fetch(ctx context.Context, query AtomicQuery) ([]FlightCandidate, error)
}
