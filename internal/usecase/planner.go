package usecase

import (
	"fmt"

	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/infrastructure/timeutil"
)

// Planner expands a search request into atomic provider queries.
type Planner struct {
	// MaxQueries caps the plan size; 0 disables the cap.
	MaxQueries int
}

// NewPlanner creates a planner with the given plan size cap.
func NewPlanner(maxQueries int) *Planner {
	return &Planner{MaxQueries: maxQueries}
}

// PlanSize returns |origins| x |destinations| x |programs| x days without building the plan.
func PlanSize(req *domain.SearchRequest, programs []domain.Program) int {
	return len(req.Origins) * len(req.Destinations) * len(programs) * req.Days()
}

// Plan returns the Cartesian product origins x destinations x programs x dates,
// nested in that order, each dimension in input order. Indexes follow plan order.
func (p *Planner) Plan(req *domain.SearchRequest, programs []domain.Program) ([]domain.AtomicQuery, error) {
	switch {
	case len(req.Origins) == 0:
		return nil, fmt.Errorf("%w: no origins", domain.ErrEmptyQueryPlan)
	case len(req.Destinations) == 0:
		return nil, fmt.Errorf("%w: no destinations", domain.ErrEmptyQueryPlan)
	case len(programs) == 0:
		return nil, fmt.Errorf("%w: no programs", domain.ErrEmptyQueryPlan)
	}

	days := timeutil.EachDay(req.StartDate, req.EndDate)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", domain.ErrEmptyQueryPlan,
			timeutil.FormatDate(req.StartDate), timeutil.FormatDate(req.EndDate))
	}

	size := PlanSize(req, programs)
	if p.MaxQueries > 0 && size > p.MaxQueries {
		return nil, fmt.Errorf("%w: plan needs %d calls, limit is %d", domain.ErrQueryBudgetExceeded, size, p.MaxQueries)
	}

	plan := make([]domain.AtomicQuery, 0, size)
	for _, origin := range req.Origins {
		for _, destination := range req.Destinations {
			for _, program := range programs {
				for _, day := range days {
					plan = append(plan, domain.AtomicQuery{
						Index:       len(plan),
						Origin:      origin,
						Destination: destination,
						Program:     program.ID,
						Date:        day,
						Cabin:       req.Cabin,
					})
				}
			}
		}
	}
	return plan, nil
}
