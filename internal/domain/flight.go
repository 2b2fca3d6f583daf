// Package domain contains the core entities and rules of the award search engine.
// These types are provider-agnostic; the transport and rendering layers convert to and from them.
package domain

import (
	"strconv"
	"strings"
	"time"
)

// SeatsAtLeastThreshold is the count from which providers report "9+".
const SeatsAtLeastThreshold = 9

// Seats is the seats-remaining indicator of an award offer.
// AtLeast means the provider only guarantees Count or more seats.
type Seats struct {
	Count   int    `json:"count"`
	AtLeast bool   `json:"atLeast,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

// ExactSeats returns an exact seat count.
func ExactSeats(n int) Seats {
	return Seats{Count: n, Raw: strconv.Itoa(n)}
}

// AtLeastSeats returns a lower-bound seat count such as "9+".
func AtLeastSeats(n int) Seats {
	return Seats{Count: n, AtLeast: true, Raw: strconv.Itoa(n) + "+"}
}

// ParseSeats interprets a provider seat value. "9+" becomes AtLeastSeats(9);
// plain integers are exact; anything else keeps its literal text with Count 0.
func ParseSeats(raw string) Seats {
	s := strings.TrimSpace(raw)
	if n, ok := strings.CutSuffix(s, "+"); ok {
		if v, err := strconv.Atoi(n); err == nil {
			return Seats{Count: v, AtLeast: true, Raw: s}
		}
	}
	if v, err := strconv.Atoi(s); err == nil {
		return Seats{Count: v, Raw: s}
	}
	return Seats{Raw: s}
}

// String renders the indicator as the provider reported it.
func (s Seats) String() string {
	if s.Raw != "" {
		return s.Raw
	}
	if s.AtLeast {
		return strconv.Itoa(s.Count) + "+"
	}
	return strconv.Itoa(s.Count)
}

// Segment is one flown leg of an itinerary.
type Segment struct {
	// Carrier is the IATA marketing carrier code (e.g., "AS")
	Carrier string `json:"carrier"`

	// FlightNumber is the full flight number (e.g., "AS1234")
	FlightNumber string `json:"flightNumber"`

	// Origin is the departure airport code
	Origin string `json:"origin"`

	// Destination is the arrival airport code
	Destination string `json:"destination"`

	DepartsAt time.Time `json:"departsAt,omitempty"`
	ArrivesAt time.Time `json:"arrivesAt,omitempty"`

	Aircraft  string `json:"aircraft,omitempty"`
	FareClass string `json:"fareClass,omitempty"`
}

// FlightCandidate is a normalized award offer returned by a provider.
// Candidates are treated as immutable once created.
type FlightCandidate struct {
	// Program is the loyalty program the award is bookable with
	Program string `json:"program"`

	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Cabin       Cabin  `json:"cabin"`

	DepartsAt time.Time     `json:"departsAt"`
	ArrivesAt time.Time     `json:"arrivesAt,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`

	// Stops is the number of intermediate stops (0 = nonstop)
	Stops int `json:"stops"`

	Segments []Segment `json:"segments"`

	// Miles is the award cost in points
	Miles int `json:"miles"`

	// Taxes is the cash co-pay in USD cents
	Taxes Money `json:"taxes"`

	Seats Seats `json:"seats"`

	// SourceID is the provider record identifier, if any
	SourceID string `json:"sourceId,omitempty"`
}

// CandidateKey identifies an itinerary for deduplication.
type CandidateKey string

// Key returns the dedup key: program, departure timestamp and ordered segment list.
func (f FlightCandidate) Key() CandidateKey {
	var b strings.Builder
	b.WriteString(f.Program)
	b.WriteByte('|')
	b.WriteString(f.DepartsAt.UTC().Format(time.RFC3339))
	for _, s := range f.Segments {
		b.WriteByte('|')
		b.WriteString(s.Carrier)
		b.WriteByte(':')
		b.WriteString(s.FlightNumber)
		b.WriteByte(':')
		b.WriteString(s.Origin)
		b.WriteByte('-')
		b.WriteString(s.Destination)
	}
	return CandidateKey(b.String())
}

// FlightNumbers joins the segment flight numbers ("AS1, AS2").
func (f FlightCandidate) FlightNumbers() string {
	nums := make([]string, 0, len(f.Segments))
	for _, s := range f.Segments {
		if s.FlightNumber != "" {
			nums = append(nums, s.FlightNumber)
		}
	}
	return strings.Join(nums, ", ")
}

// IsNonstop reports whether the itinerary has no intermediate stop.
func (f FlightCandidate) IsNonstop() bool {
	return f.Stops == 0
}

// FormatStops renders the stop count as "Nonstop", "1 stop" or "N stops".
func FormatStops(stops int) string {
	switch stops {
	case 0:
		return "Nonstop"
	case 1:
		return "1 stop"
	default:
		return strconv.Itoa(stops) + " stops"
	}
}

// FormatDuration renders a duration as "Xh Ym", or "N/A" when unknown.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "N/A"
	}
	total := int(d.Minutes())
	hours, mins := total/60, total%60
	switch {
	case hours > 0 && mins > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(mins) + "m"
	}
}
