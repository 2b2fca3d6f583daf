package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// Table renders an aligned console table.
type Table struct {
	// ShowSegments appends the per-leg details of each row
	ShowSegments bool
}

// Render implements Sink.
func (t *Table) Render(w io.Writer, resp *domain.SearchResponse) error {
	bw := bufio.NewWriter(w)

	if len(resp.Results) == 0 {
		fmt.Fprintln(bw, "No award availability found.")
		writeFooter(bw, resp.Summary)
		return bw.Flush()
	}

	fmt.Fprintf(bw, "Found %d flights. Showing top %d:\n\n", resp.Summary.TotalAfterFilter, len(resp.Results))

	withCPP := resp.Request.BaselineCashPrice != nil
	headers := []string{"#", "Program", "Date", "Route", "Miles", "Taxes", "Seats", "Cabin", "Stops"}
	if withCPP {
		headers = append(headers, "CPP")
	}

	tw := tabwriter.NewWriter(bw, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(underline(headers), "\t"))
	for _, r := range resp.Results {
		row := []string{
			strconv.Itoa(r.Rank),
			r.Program,
			formatTime(r.DepartsAt),
			r.Origin + " → " + r.Destination,
			domain.FormatMiles(r.Miles),
			r.Taxes.String(),
			r.Seats.String(),
			cabinTitle(r.Cabin),
			domain.FormatStops(r.Stops),
		}
		if withCPP {
			row = append(row, formatCPP(r.CPP))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	writeFooter(bw, resp.Summary)

	if t.ShowSegments {
		writeSegments(bw, resp.Results)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func underline(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.Repeat("-", len([]rune(h)))
	}
	return out
}

func formatCPP(c domain.CPP) string {
	if !c.IsPresent() {
		return c.String()
	}
	return c.String() + "¢"
}

func writeFooter(w io.Writer, s domain.SearchSummary) {
	if s.Canceled {
		fmt.Fprintln(w, "\nSearch canceled; results are partial.")
	}
	if failed := s.FailedQueries(); failed > 0 {
		fmt.Fprintf(w, "\n%d of %d queries failed; results may be incomplete.\n", failed, s.QueriesPlanned)
	}
	if n := len(s.ScoringAnomalies); n > 0 {
		fmt.Fprintf(w, "%d candidates could not be scored.\n", n)
	}
}

func writeSegments(w io.Writer, results []domain.FlightResult) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nFLIGHT DETAILS\n%s\n", rule, rule)

	for _, r := range results {
		fmt.Fprintf(w, "\n[%d] %s - %s\n", r.Rank, r.Program, orDefault(r.FlightNumbers(), "N/A"))
		fmt.Fprintf(w, "    Cost: %s miles + %s\n", domain.FormatMiles(r.Miles), r.Taxes)
		if r.Duration > 0 {
			fmt.Fprintf(w, "    Duration: %s\n", domain.FormatDuration(r.Duration))
		}
		if len(r.Segments) == 0 {
			continue
		}
		fmt.Fprintln(w, "    Segments:")
		for i, s := range r.Segments {
			fmt.Fprintf(w, "      %d. %s: %s → %s\n", i+1,
				orDefault(s.FlightNumber, "???"), orDefault(s.Origin, "???"), orDefault(s.Destination, "???"))
			fmt.Fprintf(w, "         Departs: %s | Arrives: %s\n", formatTime(s.DepartsAt), formatTime(s.ArrivesAt))
			fmt.Fprintf(w, "         Aircraft: %s | Fare Class: %s\n", orDefault(s.Aircraft, "Unknown"), orDefault(s.FareClass, "?"))
		}
	}
}
