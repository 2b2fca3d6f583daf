// Package render writes search responses for people and spreadsheets.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// Sink writes a search response.
type Sink interface {
	Render(w io.Writer, resp *domain.SearchResponse) error
}

// New returns the sink for a format name. An empty name selects the table.
func New(format string, showSegments bool) (Sink, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatTable, "":
		return &Table{ShowSegments: showSegments}, nil
	case FormatCSV:
		return &CSV{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table or csv)", format)
	}
}

const timeLayout = "2006-01-02 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(timeLayout)
}

func cabinTitle(c domain.Cabin) string {
	s := string(c)
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
