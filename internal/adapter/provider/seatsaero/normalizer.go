package seatsaero

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/currency"
)

// cabinPrefixes maps a cabin to the field prefix of the summary columns.
var cabinPrefixes = map[domain.Cabin]byte{
	domain.CabinEconomy:  'Y',
	domain.CabinPremium:  'W',
	domain.CabinBusiness: 'J',
	domain.CabinFirst:    'F',
}

// normalizer turns availability records into candidates for one query.
type normalizer struct {
	converter currency.Converter
}

// normalize converts the records matching q. It returns the candidates
// and the number of records or trips it had to skip.
func (n normalizer) normalize(ctx context.Context, q domain.AtomicQuery, records []availability) ([]domain.FlightCandidate, int) {
	result := make([]domain.FlightCandidate, 0, len(records))
	skipped := 0

	for _, rec := range records {
		if !matchesQuery(rec, q) {
			continue
		}

		if len(rec.AvailabilityTrips) == 0 {
			c, ok, err := n.fromSummary(ctx, q, rec)
			if err != nil {
				skipped++
				continue
			}
			if ok {
				result = append(result, c)
			}
			continue
		}

		for _, t := range rec.AvailabilityTrips {
			if !strings.EqualFold(t.Cabin, string(q.Cabin)) {
				continue
			}
			c, err := n.fromTrip(ctx, q, rec, t)
			if err != nil {
				skipped++
				continue
			}
			result = append(result, c)
		}
	}

	return result, skipped
}

// matchesQuery keeps records of the queried program and route.
// Empty route fields are accepted.
func matchesQuery(rec availability, q domain.AtomicQuery) bool {
	if !strings.EqualFold(rec.Route.Source, q.Program) {
		return false
	}
	if rec.Route.OriginAirport != "" && !strings.EqualFold(rec.Route.OriginAirport, q.Origin) {
		return false
	}
	if rec.Route.DestinationAirport != "" && !strings.EqualFold(rec.Route.DestinationAirport, q.Destination) {
		return false
	}
	return true
}

// fromTrip builds a candidate from a detailed trip.
// A missing mileage cost is kept as zero; the scorer reports it.
func (n normalizer) fromTrip(ctx context.Context, q domain.AtomicQuery, rec availability, t trip) (domain.FlightCandidate, error) {
	departs, err := parseDateTime(t.DepartsAt)
	if err != nil {
		return domain.FlightCandidate{}, fmt.Errorf("trip %s departure: %w", t.ID, err)
	}
	var arrives time.Time
	if t.ArrivesAt != "" {
		if arrives, err = parseDateTime(t.ArrivesAt); err != nil {
			return domain.FlightCandidate{}, fmt.Errorf("trip %s arrival: %w", t.ID, err)
		}
	}

	segments, err := normalizeSegments(t.AvailabilitySegments)
	if err != nil {
		return domain.FlightCandidate{}, fmt.Errorf("trip %s: %w", t.ID, err)
	}
	if len(segments) == 0 {
		segments = syntheticSegments(t.FlightNumbers, t.Carriers, rec.Route, departs, arrives)
	}

	stops := t.Stops
	if len(segments) > 1 {
		stops = len(segments) - 1
	}

	duration := time.Duration(t.TotalDuration) * time.Minute
	if duration == 0 && !arrives.IsZero() {
		duration = arrives.Sub(departs)
	}

	cur := t.TaxesCurrency
	if cur == "" {
		cur = rec.TaxesCurrency
	}
	taxes, err := n.converter.ToUSD(ctx, t.TotalTaxes, cur)
	if err != nil {
		return domain.FlightCandidate{}, fmt.Errorf("trip %s taxes: %w", t.ID, err)
	}

	return domain.FlightCandidate{
		Program:     q.Program,
		Origin:      routeOr(rec.Route.OriginAirport, q.Origin),
		Destination: routeOr(rec.Route.DestinationAirport, q.Destination),
		Cabin:       q.Cabin,
		DepartsAt:   departs,
		ArrivesAt:   arrives,
		Duration:    duration,
		Stops:       stops,
		Segments:    segments,
		Miles:       t.MileageCost,
		Taxes:       taxes,
		Seats:       domain.ParseSeats(string(t.RemainingSeats)),
		SourceID:    t.ID,
	}, nil
}

// fromSummary builds a candidate from the record's cabin summary.
// ok is false when the cabin has no availability.
func (n normalizer) fromSummary(ctx context.Context, q domain.AtomicQuery, rec availability) (domain.FlightCandidate, bool, error) {
	prefix, found := cabinPrefixes[q.Cabin]
	if !found {
		prefix = 'Y'
	}
	sum := rec.summary(prefix)
	if sum.Miles <= 0 {
		return domain.FlightCandidate{}, false, nil
	}

	date, err := domain.ParseDate(leadingDate(rec.Date))
	if err != nil {
		date = q.Date
	}

	taxes, err := n.converter.ToUSD(ctx, sum.Taxes, rec.TaxesCurrency)
	if err != nil {
		return domain.FlightCandidate{}, false, fmt.Errorf("record %s taxes: %w", rec.ID, err)
	}

	stops := 1
	if sum.Direct {
		stops = 0
	}

	origin := routeOr(rec.Route.OriginAirport, q.Origin)
	destination := routeOr(rec.Route.DestinationAirport, q.Destination)

	return domain.FlightCandidate{
		Program:     q.Program,
		Origin:      origin,
		Destination: destination,
		Cabin:       q.Cabin,
		DepartsAt:   date,
		Stops:       stops,
		Segments: []domain.Segment{{
			Carrier:     firstCarrier(sum.Airlines),
			Origin:      origin,
			Destination: destination,
			DepartsAt:   date,
		}},
		Miles:    sum.Miles,
		Taxes:    taxes,
		Seats:    domain.ParseSeats(sum.Seats),
		SourceID: rec.ID,
	}, true, nil
}

// normalizeSegments converts wire segments ordered by their Order field.
func normalizeSegments(in []segment) ([]domain.Segment, error) {
	if len(in) == 0 {
		return nil, nil
	}
	ordered := make([]segment, len(in))
	copy(ordered, in)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	out := make([]domain.Segment, 0, len(ordered))
	for _, s := range ordered {
		departs, err := parseDateTime(s.DepartsAt)
		if err != nil {
			return nil, fmt.Errorf("segment %s departure: %w", s.FlightNumber, err)
		}
		var arrives time.Time
		if s.ArrivesAt != "" {
			if arrives, err = parseDateTime(s.ArrivesAt); err != nil {
				return nil, fmt.Errorf("segment %s arrival: %w", s.FlightNumber, err)
			}
		}
		fn := strings.TrimSpace(s.FlightNumber)
		out = append(out, domain.Segment{
			Carrier:      carrierOf(fn),
			FlightNumber: fn,
			Origin:       s.OriginAirport,
			Destination:  s.DestinationAirport,
			DepartsAt:    departs,
			ArrivesAt:    arrives,
			Aircraft:     s.AircraftName,
			FareClass:    s.FareClass,
		})
	}
	return out, nil
}

// syntheticSegments covers a trip that lists flight numbers without segment detail.
func syntheticSegments(flightNumbers, carriers string, r route, departs, arrives time.Time) []domain.Segment {
	var nums []string
	for _, f := range strings.Split(flightNumbers, ",") {
		if f = strings.TrimSpace(f); f != "" {
			nums = append(nums, f)
		}
	}
	if len(nums) <= 1 {
		fn := ""
		carrier := firstCarrier(carriers)
		if len(nums) == 1 {
			fn = nums[0]
			carrier = carrierOf(fn)
		}
		return []domain.Segment{{
			Carrier:      carrier,
			FlightNumber: fn,
			Origin:       r.OriginAirport,
			Destination:  r.DestinationAirport,
			DepartsAt:    departs,
			ArrivesAt:    arrives,
		}}
	}

	// Intermediate airports are unknown here; only the endpoints are filled.
	out := make([]domain.Segment, len(nums))
	for i, fn := range nums {
		out[i] = domain.Segment{Carrier: carrierOf(fn), FlightNumber: fn}
	}
	out[0].Origin, out[0].DepartsAt = r.OriginAirport, departs
	out[len(out)-1].Destination, out[len(out)-1].ArrivesAt = r.DestinationAirport, arrives
	return out
}

// carrierOf returns the two-character airline designator of a flight number.
func carrierOf(flightNumber string) string {
	if len(flightNumber) < 3 {
		return ""
	}
	return strings.ToUpper(flightNumber[:2])
}

// firstCarrier returns the first code of a comma-separated carrier list.
func firstCarrier(list string) string {
	first, _, _ := strings.Cut(list, ",")
	return strings.ToUpper(strings.TrimSpace(first))
}

func routeOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return strings.ToUpper(v)
}

// leadingDate keeps the YYYY-MM-DD part of a date or timestamp.
func leadingDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(domain.DateLayout) {
		return s[:len(domain.DateLayout)]
	}
	return s
}

// parseDateTime parses an ISO 8601 timestamp with or without an offset.
func parseDateTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse datetime %q", v)
}
