package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/award-search/award-flight-finder/internal/domain"
)

// APIKeyEnv is read when the search file carries no api_key.
const APIKeyEnv = "SEATS_AERO_API_KEY"

// OutputOptions controls how a CLI search is printed.
type OutputOptions struct {
	Format       string
	ShowSegments bool
}

// SearchFile is a CLI search loaded from YAML.
type SearchFile struct {
	APIKey  string
	Request domain.SearchRequest
	Output  OutputOptions
}

// LoadSearchFile reads a YAML search file with sections search, output and valuation.
//
//	api_key: pro_...
//	search:
//	  origin: SFO,OAK
//	  destination: LAX
//	  start_date: "2025-12-01"
//	  end_date: "2025-12-07"
//	  cabin: economy
//	  credit_card: capital-one   # or sources: [alaska, united], or all_programs: true
//	  max_results: 10
//	output:
//	  sort_by: miles
//	  nonstop_only: false
//	  show_segments: false
//	  format: table
//	valuation:
//	  baseline_cash_price: 500
//	  min_cpp: 1.5
//
// Request errors wrap domain.ErrInvalidRequest. The request is returned without
// validation; the use case validates it.
func LoadSearchFile(path string) (*SearchFile, error) {
	v := viper.New()

	// search.* must stay free of defaults: IsSet("search") has to reflect the file.
	v.SetDefault("output.sort_by", string(domain.SortByMiles))
	v.SetDefault("output.nonstop_only", false)
	v.SetDefault("output.show_segments", false)
	v.SetDefault("output.format", "table")

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read search file %s: %w", path, err)
	}

	if err := v.BindEnv("api_key", APIKeyEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", APIKeyEnv, err)
	}

	if !v.IsSet("search") {
		return nil, domain.WrapInvalidRequest("search file %s has no search section", path)
	}

	req, err := searchRequest(v)
	if err != nil {
		return nil, err
	}

	return &SearchFile{
		APIKey:  strings.TrimSpace(v.GetString("api_key")),
		Request: req,
		Output: OutputOptions{
			Format:       v.GetString("output.format"),
			ShowSegments: v.GetBool("output.show_segments"),
		},
	}, nil
}

func searchRequest(v *viper.Viper) (domain.SearchRequest, error) {
	start, err := dateValue(v.Get("search.start_date"))
	if err != nil {
		return domain.SearchRequest{}, fmt.Errorf("%w: search.start_date: %w", domain.ErrInvalidRequest, err)
	}
	end, err := dateValue(v.Get("search.end_date"))
	if err != nil {
		return domain.SearchRequest{}, fmt.Errorf("%w: search.end_date: %w", domain.ErrInvalidRequest, err)
	}

	req := domain.SearchRequest{
		Origins:      stringList(v.Get("search.origin")),
		Destinations: stringList(v.Get("search.destination")),
		Cabin:        domain.Cabin(strings.ToLower(strings.TrimSpace(v.GetString("search.cabin")))),
		StartDate:    start,
		EndDate:      end,
		NonstopOnly:  v.GetBool("output.nonstop_only"),
		SortBy:       domain.SortKey(strings.ToLower(strings.TrimSpace(v.GetString("output.sort_by")))),
	}
	if v.IsSet("search.max_results") {
		req.MaxResults = v.GetInt("search.max_results")
		if err := domain.ValidateMaxResults(req.MaxResults); err != nil {
			return domain.SearchRequest{}, fmt.Errorf("search.max_results: %w", err)
		}
	}
	req.SetDefaults()

	// credit_card takes precedence over sources, then all_programs
	switch {
	case strings.TrimSpace(v.GetString("search.credit_card")) != "":
		req.Programs = domain.CreditCardPrograms(domain.NormalizeID(v.GetString("search.credit_card")))
	case len(stringList(v.Get("search.sources"))) > 0:
		req.Programs = domain.ExplicitPrograms(stringList(v.Get("search.sources"))...)
	case v.GetBool("search.all_programs"):
		req.Programs = domain.AllPrograms()
	}

	if v.IsSet("valuation.baseline_cash_price") {
		price, err := moneyValue(v.Get("valuation.baseline_cash_price"))
		if err != nil {
			return domain.SearchRequest{}, fmt.Errorf("%w: valuation.baseline_cash_price: %w", domain.ErrInvalidRequest, err)
		}
		req.BaselineCashPrice = &price
	}
	if v.IsSet("valuation.min_cpp") {
		req.MinCPP = domain.CPPThreshold(v.GetFloat64("valuation.min_cpp"))
	}

	return req, nil
}

// stringList accepts a YAML list or a comma-separated string.
func stringList(raw any) []string {
	var parts []string
	switch t := raw.(type) {
	case nil:
		return nil
	case string:
		parts = strings.Split(t, ",")
	case []any:
		for _, item := range t {
			parts = append(parts, fmt.Sprint(item))
		}
	case []string:
		parts = t
	default:
		parts = []string{fmt.Sprint(t)}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dateValue accepts a quoted YYYY-MM-DD string or a YAML timestamp.
func dateValue(raw any) (time.Time, error) {
	switch t := raw.(type) {
	case nil:
		return time.Time{}, errors.New("is required")
	case time.Time:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	case string:
		return domain.ParseDate(t)
	default:
		return domain.ParseDate(fmt.Sprint(t))
	}
}

// moneyValue accepts a YAML number or a dollar string such as "$1,250.00".
func moneyValue(raw any) (domain.Money, error) {
	switch t := raw.(type) {
	case int:
		return domain.Money(int64(t) * 100), nil
	case int64:
		return domain.Money(t * 100), nil
	case float64:
		return domain.MoneyFromFloat(t), nil
	case string:
		return domain.ParseMoney(t)
	default:
		return domain.ParseMoney(fmt.Sprint(t))
	}
}
