package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jszwec/csvutil"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// CSV renders one row per result with a header line.
type CSV struct{}

// csvRow is the CSV layout of a result.
type csvRow struct {
	Rank        int    `csv:"rank"`
	Program     string `csv:"program"`
	DepartsAt   string `csv:"departs_at"`
	Origin      string `csv:"origin"`
	Destination string `csv:"destination"`
	Miles       int    `csv:"miles"`
	TaxesUSD    string `csv:"taxes_usd"`
	Seats       string `csv:"seats"`
	Cabin       string `csv:"cabin"`
	Stops       int    `csv:"stops"`
	Flights     string `csv:"flights"`
	CPP         string `csv:"cpp"`
}

// Render implements Sink.
func (CSV) Render(w io.Writer, resp *domain.SearchResponse) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(resp.Results) == 0 {
		if err := enc.EncodeHeader(csvRow{}); err != nil {
			return fmt.Errorf("render csv header: %w", err)
		}
	}
	for _, r := range resp.Results {
		if err := enc.Encode(toCSVRow(r)); err != nil {
			return fmt.Errorf("render csv row %d: %w", r.Rank, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	return nil
}

func toCSVRow(r domain.FlightResult) csvRow {
	cpp := ""
	if r.CPP.IsPresent() {
		cpp = r.CPP.String()
	}
	return csvRow{
		Rank:        r.Rank,
		Program:     r.Program,
		DepartsAt:   formatTime(r.DepartsAt),
		Origin:      r.Origin,
		Destination: r.Destination,
		Miles:       r.Miles,
		TaxesUSD:    strconv.FormatFloat(r.Taxes.Dollars(), 'f', 2, 64),
		Seats:       r.Seats.String(),
		Cabin:       string(r.Cabin),
		Stops:       r.Stops,
		Flights:     r.FlightNumbers(),
		CPP:         cpp,
	}
}
