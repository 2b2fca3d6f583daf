package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/award-search/award-flight-finder/internal/adapter/http/middleware"
	"github.com/award-search/award-flight-finder/internal/adapter/http/response"
	"github.com/award-search/award-flight-finder/internal/catalog"
	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/usecase"
	"github.com/award-search/award-flight-finder/test/testutil"
)

// mockUseCase is a mock implementation of AwardSearchUseCase for testing.
type mockUseCase struct {
	searchFunc func(ctx context.Context, req domain.SearchRequest, opts usecase.SearchOptions) (*domain.SearchResponse, error)

	gotRequest domain.SearchRequest
	gotOptions usecase.SearchOptions
	calls      int
}

func (m *mockUseCase) Search(ctx context.Context, req domain.SearchRequest, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
	m.calls++
	m.gotRequest = req
	m.gotOptions = opts
	if m.searchFunc != nil {
		return m.searchFunc(ctx, req, opts)
	}
	return domain.NewSearchResponse(req, nil, nil, domain.SearchSummary{
		QueriesPlanned:   1,
		QueriesSucceeded: 1,
		CatalogVersion:   catalog.Version,
	}), nil
}

func failWith(err error) *mockUseCase {
	return &mockUseCase{
		searchFunc: func(context.Context, domain.SearchRequest, usecase.SearchOptions) (*domain.SearchResponse, error) {
			return nil, err
		},
	}
}

// setupTestHandler creates a test Echo instance and AwardHandler.
func setupTestHandler(uc usecase.AwardSearchUseCase) (*echo.Echo, *AwardHandler) {
	e := echo.New()
	h := NewAwardHandler(uc, catalog.Default())
	RegisterRoutes(e, h)
	return e, h
}

// makeRequest is a helper to make test requests.
func makeRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func validRequest() SearchAwardsRequest {
	return SearchAwardsRequest{
		Origins:      []string{"SFO"},
		Destinations: []string{"LAX"},
		StartDate:    "2025-12-01",
		EndDate:      "2025-12-01",
		Programs:     []string{"alaska", "united"},
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var errResp response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	return errResp
}

const searchPath = "/api/v1/awards/search"

// =====================================================
// Handler Tests
// =====================================================

func TestSearchAwards_Success(t *testing.T) {
	dep := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)
	mock := &mockUseCase{
		searchFunc: func(_ context.Context, req domain.SearchRequest, _ usecase.SearchOptions) (*domain.SearchResponse, error) {
			results := []domain.FlightResult{
				{
					Rank: 1,
					CPP:  domain.CPPFromHundredths(180),
					FlightCandidate: domain.FlightCandidate{
						Program: "alaska", Origin: "SFO", Destination: "LAX", Cabin: domain.CabinEconomy,
						DepartsAt: dep, ArrivesAt: dep.Add(95 * time.Minute), Duration: 95 * time.Minute,
						Miles: 5000, Taxes: 560, Seats: domain.AtLeastSeats(9),
						Segments: []domain.Segment{{Carrier: "AS", FlightNumber: "AS1234", Origin: "SFO", Destination: "LAX", DepartsAt: dep}},
					},
				},
				{
					Rank: 2,
					CPP:  domain.NoCPP(),
					FlightCandidate: domain.FlightCandidate{
						Program: "united", Origin: "SFO", Destination: "LAX", Cabin: domain.CabinEconomy,
						DepartsAt: dep, Miles: 6500, Taxes: 560, Seats: domain.ExactSeats(2),
					},
				},
			}
			return domain.NewSearchResponse(req, []domain.Program{{ID: "alaska"}, {ID: "united"}}, results, domain.SearchSummary{
				TotalCandidatesBeforeFilter: 4,
				TotalAfterFilter:            2,
				QueriesPlanned:              2,
				QueriesSucceeded:            2,
				CacheHits:                   1,
				CatalogVersion:              "2025.11",
				SearchDurationMs:            42,
			}), nil
		},
	}
	e, _ := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, searchPath, validRequest())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{"alaska", "united"}, resp.SearchCriteria.Programs)
	assert.Equal(t, "2025-12-01", resp.SearchCriteria.StartDate)
	assert.Equal(t, MetadataDTO{
		TotalCandidates:  4,
		TotalAfterFilter: 2,
		TotalResults:     2,
		QueriesPlanned:   2,
		QueriesSucceeded: 2,
		CacheHits:        1,
		CatalogVersion:   "2025.11",
		SearchTimeMs:     42,
	}, resp.Metadata)

	require.Len(t, resp.Awards, 2)
	first := resp.Awards[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "alaska", first.Program)
	assert.Equal(t, 5000, first.Miles)
	assert.Equal(t, PriceDTO{Amount: 5.60, Currency: "USD", Formatted: "$5.60"}, first.Taxes)
	assert.Equal(t, SeatsDTO{Count: 9, AtLeast: true, Formatted: "9+"}, first.Seats)
	require.NotNil(t, first.CPP)
	assert.InDelta(t, 1.80, *first.CPP, 1e-9)
	require.NotNil(t, first.Duration)
	assert.Equal(t, DurationDTO{TotalMinutes: 95, Formatted: "1h 35m"}, *first.Duration)
	assert.Equal(t, "2025-12-01T08:00:00Z", first.DepartsAt)
	assert.Equal(t, "AS1234", first.FlightNumbers)
	require.Len(t, first.Segments, 1)
	assert.Equal(t, "AS", first.Segments[0].Carrier)

	assert.Nil(t, resp.Awards[1].CPP, "absent cpp is serialized as null")
	assert.Nil(t, resp.Awards[1].Duration)
	assert.Contains(t, rec.Body.String(), `"cpp":null`)
}

func TestSearchAwards_ConvertsRequest(t *testing.T) {
	mock := &mockUseCase{}
	e, _ := setupTestHandler(mock)

	price, minCPP := 500.0, 1.5
	req := SearchAwardsRequest{
		Origins:           []string{"sfo", "oak"},
		Destinations:      []string{"nrt"},
		Cabin:             "Business",
		StartDate:         "2025-12-01",
		EndDate:           "2025-12-03",
		CreditCard:        "Capital-One",
		BaselineCashPrice: &price,
		MinCPP:            &minCPP,
		NonstopOnly:       true,
		SortBy:            "CPP",
		MaxResults:        testutil.Ptr(5),
	}

	rec := makeRequest(e, http.MethodPost, searchPath, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, mock.calls)

	got := mock.gotRequest
	assert.Equal(t, []string{"SFO", "OAK"}, got.Origins)
	assert.Equal(t, []string{"NRT"}, got.Destinations)
	assert.Equal(t, domain.CabinBusiness, got.Cabin)
	assert.True(t, got.StartDate.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.EndDate.Equal(time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.CreditCardPrograms("capital-one"), got.Programs)
	require.NotNil(t, got.BaselineCashPrice)
	assert.Equal(t, domain.Money(50000), *got.BaselineCashPrice)
	assert.Equal(t, domain.CPPFromHundredths(150), got.MinCPP)
	assert.True(t, got.NonstopOnly)
	assert.Equal(t, domain.SortByCPP, got.SortBy)
	assert.Equal(t, 5, got.MaxResults)

	assert.True(t, mock.gotOptions.DiscardOnCancel)
}

func TestSearchAwards_BlankCreditCardKeepsPrograms(t *testing.T) {
	mock := &mockUseCase{}
	e, _ := setupTestHandler(mock)

	req := validRequest()
	req.CreditCard = "  "

	rec := makeRequest(e, http.MethodPost, searchPath, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, mock.calls)
	assert.Equal(t, domain.ExplicitPrograms("alaska", "united"), mock.gotRequest.Programs)
	assert.NoError(t, mock.gotRequest.Programs.Validate())
}

func TestSearchAwards_PassesRequestID(t *testing.T) {
	mock := &mockUseCase{}
	e := echo.New()
	RegisterRoutesWithMiddleware(e, NewAwardHandler(mock, catalog.Default()), middleware.RequestID())

	body, _ := json.Marshal(validRequest())
	req := httptest.NewRequest(http.MethodPost, searchPath, bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", mock.gotOptions.RequestID)
}

func TestSearchAwards_InvalidJSON(t *testing.T) {
	mock := &mockUseCase{}
	e, _ := setupTestHandler(mock)

	req := httptest.NewRequest(http.MethodPost, searchPath, strings.NewReader("{invalid json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decodeError(t, rec).Code)
	assert.Zero(t, mock.calls)
}

func TestSearchAwards_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *SearchAwardsRequest)
		wantField string
	}{
		{"missing origins", func(r *SearchAwardsRequest) { r.Origins = nil }, "origins"},
		{"bad origin code", func(r *SearchAwardsRequest) { r.Origins = []string{"SFO", "SF"} }, "origins[1]"},
		{"missing destinations", func(r *SearchAwardsRequest) { r.Destinations = nil }, "destinations"},
		{"bad cabin", func(r *SearchAwardsRequest) { r.Cabin = "coach" }, "cabin"},
		{"missing start", func(r *SearchAwardsRequest) { r.StartDate = "" }, "startDate"},
		{"bad end format", func(r *SearchAwardsRequest) { r.EndDate = "12/01/2025" }, "endDate"},
		{"impossible date", func(r *SearchAwardsRequest) { r.EndDate = "2025-02-30" }, "endDate"},
		{"inverted range", func(r *SearchAwardsRequest) { r.StartDate = "2025-12-05" }, "endDate"},
		{"no program selection", func(r *SearchAwardsRequest) { r.Programs = nil }, "programs"},
		{"two selections", func(r *SearchAwardsRequest) { r.CreditCard = "amex" }, "programs"},
		{"blank program", func(r *SearchAwardsRequest) { r.Programs = []string{"alaska", " "} }, "programs[1]"},
		{"zero cash price", func(r *SearchAwardsRequest) { zero := 0.0; r.BaselineCashPrice = &zero }, "baselineCashPrice"},
		{"negative min cpp", func(r *SearchAwardsRequest) { neg := -1.0; r.MinCPP = &neg }, "minCpp"},
		{"bad sort", func(r *SearchAwardsRequest) { r.SortBy = "price" }, "sortBy"},
		{"negative max results", func(r *SearchAwardsRequest) { r.MaxResults = testutil.Ptr(-1) }, "maxResults"},
		{"zero max results", func(r *SearchAwardsRequest) { r.MaxResults = testutil.Ptr(0) }, "maxResults"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUseCase{}
			e, _ := setupTestHandler(mock)

			req := validRequest()
			tt.mutate(&req)
			rec := makeRequest(e, http.MethodPost, searchPath, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			errResp := decodeError(t, rec)
			assert.Equal(t, response.CodeValidationError, errResp.Code)
			assert.Contains(t, errResp.Details, tt.wantField)
			assert.Zero(t, mock.calls, "invalid requests never reach the use case")
		})
	}
}

func TestSearchAwards_ErrorMapping(t *testing.T) {
	failures := []*domain.ProviderError{
		domain.NewProviderErrorOfKind("seatsaero", domain.KindRateLimited, errors.New("429 too many requests")).
			WithQuery(domain.AtomicQuery{Index: 0, Origin: "SFO", Destination: "LAX", Program: "alaska", Date: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}),
		domain.NewProviderErrorOfKind("seatsaero", domain.KindAuth, errors.New("401 unauthorized")).
			WithQuery(domain.AtomicQuery{Index: 1, Origin: "SFO", Destination: "LAX", Program: "united", Date: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}),
	}
	aggErr := &domain.AggregationError{Failures: failures}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails bool
	}{
		{"unknown card", fmt.Errorf("%w: %q", domain.ErrUnknownCreditCard, "amex-gold"), http.StatusBadRequest, response.CodeUnknownCreditCard, false},
		{"unknown program", fmt.Errorf("%w: \"nope\"", domain.ErrUnknownProgram), http.StatusBadRequest, response.CodeUnknownProgram, false},
		{"plan too large", fmt.Errorf("%w: plan needs 400 calls", domain.ErrQueryBudgetExceeded), http.StatusBadRequest, response.CodeQueryBudgetExceeded, false},
		{"empty plan", fmt.Errorf("%w: no programs", domain.ErrEmptyQueryPlan), http.StatusBadRequest, response.CodeEmptyQueryPlan, false},
		{"inverted range", fmt.Errorf("%w: %w: start after end", domain.ErrInvalidRequest, domain.ErrEmptyQueryPlan), http.StatusBadRequest, response.CodeEmptyQueryPlan, false},
		{"invalid request", domain.WrapInvalidRequest("cabin bad"), http.StatusBadRequest, response.CodeValidationError, false},
		{"aggregation failed", aggErr, http.StatusServiceUnavailable, response.CodeAggregationFailed, true},
		{"global timeout", fmt.Errorf("%w: search exceeded 60s: %w", domain.ErrProviderTimeout, aggErr), http.StatusGatewayTimeout, response.CodeTimeout, true},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, response.CodeTimeout, false},
		{"cancelled", context.Canceled, http.StatusGatewayTimeout, response.CodeTimeout, false},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, response.CodeInternalError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := setupTestHandler(failWith(tt.err))

			rec := makeRequest(e, http.MethodPost, searchPath, validRequest())

			assert.Equal(t, tt.wantStatus, rec.Code)
			errResp := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, errResp.Code)
			if tt.wantDetails {
				require.Len(t, errResp.Details, 2)
				assert.Equal(t, "alaska SFO-LAX 2025-12-01: [rate_limited] 429 too many requests", errResp.Details["queries[0]"])
				assert.Contains(t, errResp.Details["queries[1]"], "[auth_error]")
			} else {
				assert.Empty(t, errResp.Details)
			}
		})
	}
}

func TestSearchAwards_PartialFailuresAreReported(t *testing.T) {
	failure := domain.NewProviderTimeoutError("seatsaero").
		WithQuery(domain.AtomicQuery{Index: 3, Origin: "SFO", Destination: "LAX", Program: "united", Date: time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)})

	mock := &mockUseCase{
		searchFunc: func(_ context.Context, req domain.SearchRequest, _ usecase.SearchOptions) (*domain.SearchResponse, error) {
			return domain.NewSearchResponse(req, nil, nil, domain.SearchSummary{
				QueriesPlanned:   4,
				QueriesSucceeded: 3,
				PartialFailures:  []*domain.ProviderError{failure},
			}), nil
		},
	}
	e, _ := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, searchPath, validRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Metadata.Partial)
	assert.Equal(t, 1, resp.Metadata.QueriesFailed)
	assert.Equal(t, []FailureDTO{{
		Query: 3, Program: "united", Origin: "SFO", Destination: "LAX", Date: "2025-12-02",
		Kind: "timeout", Retryable: true, Message: domain.ErrProviderTimeout.Error(),
	}}, resp.Metadata.Failures)
	assert.Empty(t, resp.Awards)
	assert.Contains(t, rec.Body.String(), `"awards":[]`)
}

func TestListPrograms(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/api/v1/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.ListResponse[domain.Program]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, catalog.Version, resp.Version)
	assert.Equal(t, len(catalog.Default().All()), resp.Count)
	assert.Contains(t, resp.Items, domain.Program{ID: "aeroplan", Name: "Air Canada Aeroplan"})
}

func TestListCreditCards(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/api/v1/credit-cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp response.ListResponse[domain.CreditCard]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Items)

	var capitalOne *domain.CreditCard
	for i := range resp.Items {
		if resp.Items[i].ID == "capital-one" {
			capitalOne = &resp.Items[i]
		}
	}
	require.NotNil(t, capitalOne)
	assert.Contains(t, capitalOne.Partners, "aeroplan")
	assert.NotContains(t, capitalOne.Partners, "united")
}

func TestHealth_Success(t *testing.T) {
	e, _ := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"status":"ok","catalogVersion":%q}`, catalog.Version), rec.Body.String())
}

// =====================================================
// Converter Tests
// =====================================================

func TestToProgramSelection(t *testing.T) {
	assert.Equal(t, domain.ExplicitPrograms("alaska"), ToProgramSelection(&SearchAwardsRequest{Programs: []string{"alaska"}}))
	assert.Equal(t, domain.CreditCardPrograms("chase"), ToProgramSelection(&SearchAwardsRequest{CreditCard: " Chase "}))
	assert.Equal(t, domain.AllPrograms(), ToProgramSelection(&SearchAwardsRequest{AllPrograms: true}))
	assert.Equal(t, domain.ExplicitPrograms("alaska"),
		ToProgramSelection(&SearchAwardsRequest{Programs: []string{"alaska"}, CreditCard: "  "}), "blank card is unset")
}

func TestToDomainRequest_OptionalFieldsAbsent(t *testing.T) {
	req := validRequest()
	got := ToDomainRequest(&req)

	assert.Nil(t, got.BaselineCashPrice)
	assert.False(t, got.MinCPP.IsPresent())
	assert.Equal(t, domain.Cabin(""), got.Cabin, "defaults are applied by the use case")
	assert.Zero(t, got.MaxResults)
}

// =====================================================
// Routes Tests
// =====================================================

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, NewAwardHandler(&mockUseCase{}, catalog.Default()))

	expected := map[string]string{
		"/health":               http.MethodGet,
		"/swagger/*":            http.MethodGet,
		"/api/v1/awards/search": http.MethodPost,
		"/api/v1/programs":      http.MethodGet,
		"/api/v1/credit-cards":  http.MethodGet,
	}

	for path, method := range expected {
		found := false
		for _, r := range e.Routes() {
			if r.Path == path && r.Method == method {
				found = true
				break
			}
		}
		assert.True(t, found, "expected route %s %s not found", method, path)
	}
}
