// Package integration provides helpers and integration tests for the award search service.
// The tests drive the HTTP surface, the use case and the seats.aero adapter together,
// against the mock provider or a fake seats.aero server.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/award-search/award-flight-finder/internal/adapter/http"
	"github.com/award-search/award-flight-finder/internal/adapter/http/middleware"
	"github.com/award-search/award-flight-finder/internal/adapter/http/response"
	"github.com/award-search/award-flight-finder/internal/catalog"
	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/usecase"
	"github.com/award-search/award-flight-finder/test/testutil"
)

// TestServer wraps an Echo instance with the production middleware and routes.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.AwardHandler
}

// NewTestServer creates a test server for the given use case.
func NewTestServer(uc usecase.AwardSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, zerolog.Nop())
	handler := httpAdapter.NewAwardHandler(uc, catalog.Default())
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a search body.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/awards/search",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a search response.
func (r *Response) ParseSearchResponse() (*httpAdapter.SearchResponseDTO, error) {
	var resp httpAdapter.SearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// SearchRequestBody is a search body; field names follow the API.
type SearchRequestBody struct {
	Origins           []string `json:"origins"`
	Destinations      []string `json:"destinations"`
	Cabin             string   `json:"cabin,omitempty"`
	StartDate         string   `json:"startDate"`
	EndDate           string   `json:"endDate"`
	Programs          []string `json:"programs,omitempty"`
	CreditCard        string   `json:"creditCard,omitempty"`
	AllPrograms       bool     `json:"allPrograms,omitempty"`
	BaselineCashPrice *float64 `json:"baselineCashPrice,omitempty"`
	MinCPP            *float64 `json:"minCpp,omitempty"`
	NonstopOnly       bool     `json:"nonstopOnly,omitempty"`
	SortBy            string   `json:"sortBy,omitempty"`
	MaxResults        int      `json:"maxResults,omitempty"`
}

// SearchDate is the departure date used throughout the integration tests.
const SearchDate = "2025-12-01"

// DefaultSearchRequest returns a one-day SFO to LAX search over alaska and united.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origins:      []string{"SFO"},
		Destinations: []string{"LAX"},
		StartDate:    SearchDate,
		EndDate:      SearchDate,
		Programs:     []string{"alaska", "united"},
	}
}

// CreateUseCase creates a use case over provider with the default catalog and configuration.
func CreateUseCase(provider domain.AvailabilityProvider) usecase.AwardSearchUseCase {
	return usecase.NewAwardSearchUseCase(catalog.Default(), provider, nil)
}

// CreateUseCaseWithConfig creates a use case with custom configuration and options.
func CreateUseCaseWithConfig(provider domain.AvailabilityProvider, config *usecase.Config, opts ...usecase.Option) usecase.AwardSearchUseCase {
	return usecase.NewAwardSearchUseCase(catalog.Default(), provider, config, opts...)
}

// FakeSeatsAero serves a testdata fixture for every /search call.
type FakeSeatsAero struct {
	*httptest.Server

	mu      sync.Mutex
	sources []string
}

// NewFakeSeatsAero starts a fake seats.aero partner API.
func NewFakeSeatsAero(t *testing.T, fixture string) *FakeSeatsAero {
	t.Helper()
	body := testutil.LoadTestJSON(t, fixture)

	fake := &FakeSeatsAero{}
	fake.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		fake.mu.Lock()
		fake.sources = append(fake.sources, r.URL.Query().Get("sources"))
		fake.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(fake.Close)
	return fake
}

// Sources returns the sources parameter of every call received.
func (f *FakeSeatsAero) Sources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sources))
	copy(out, f.sources)
	return out
}
