package domain

import (
	"fmt"
	"time"
)

// AtomicQuery is the smallest unit submitted to the availability provider.
type AtomicQuery struct {
	// Index is the position of the query in the plan
	Index int `json:"index"`

	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Program     string    `json:"program"`
	Date        time.Time `json:"date"`
	Cabin       Cabin     `json:"cabin"`
}

// DateString returns the query date as YYYY-MM-DD.
func (q AtomicQuery) DateString() string {
	return q.Date.Format(DateLayout)
}

// IsZero reports whether the query is unset.
func (q AtomicQuery) IsZero() bool {
	return q.Origin == "" && q.Destination == "" && q.Program == "" && q.Date.IsZero()
}

// String renders the query as "#3 aeroplan SFO-LAX 2025-12-01 economy".
func (q AtomicQuery) String() string {
	return fmt.Sprintf("#%d %s %s-%s %s %s", q.Index, q.Program, q.Origin, q.Destination, q.DateString(), q.Cabin)
}
