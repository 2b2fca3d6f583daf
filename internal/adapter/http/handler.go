package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/award-search/award-flight-finder/internal/adapter/http/middleware"
	"github.com/award-search/award-flight-finder/internal/adapter/http/response"
	"github.com/award-search/award-flight-finder/internal/domain"
	"github.com/award-search/award-flight-finder/internal/usecase"
)

// ReferenceData exposes the program catalog to the API. *catalog.Catalog implements it.
type ReferenceData interface {
	Version() string
	All() []domain.Program
	Cards() []domain.CreditCard
}

// AwardHandler handles HTTP requests for award search endpoints.
type AwardHandler struct {
	useCase usecase.AwardSearchUseCase
	catalog ReferenceData
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(uc usecase.AwardSearchUseCase, catalog ReferenceData) *AwardHandler {
	return &AwardHandler{
		useCase: uc,
		catalog: catalog,
	}
}

// SearchAwards handles POST /api/v1/awards/search
//
// @Summary Search award availability
// @Description Fans out one seats.aero query per origin, destination, program and date, then scores and ranks the offers
// @Tags awards
// @Accept json
// @Produce json
// @Param request body SearchAwardsRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation or configuration error"
// @Failure 503 {object} response.ErrorDetail "Every query failed"
// @Failure 504 {object} response.ErrorDetail "Search timed out"
// @Router /awards/search [post]
func (h *AwardHandler) SearchAwards(c echo.Context) error {
	var req SearchAwardsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.useCase.Search(
		c.Request().Context(),
		ToDomainRequest(&req),
		ToSearchOptions(middleware.GetRequestID(c)),
	)
	if err != nil {
		return writeError(c, err)
	}

	return response.OK(c, ToSearchResponseDTO(result))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *AwardHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	return response.ValidationErrorWithMessage(c, err.Error())
}

// ListPrograms handles GET /api/v1/programs
//
// @Summary List loyalty programs
// @Tags reference
// @Produce json
// @Success 200 {object} SwaggerProgramList
// @Router /programs [get]
func (h *AwardHandler) ListPrograms(c echo.Context) error {
	return response.List(c, h.catalog.Version(), h.catalog.All())
}

// ListCreditCards handles GET /api/v1/credit-cards
//
// @Summary List credit cards and their transfer partners
// @Tags reference
// @Produce json
// @Success 200 {object} SwaggerCreditCardList
// @Router /credit-cards [get]
func (h *AwardHandler) ListCreditCards(c echo.Context) error {
	return response.List(c, h.catalog.Version(), h.catalog.Cards())
}

// Health handles GET /health
func (h *AwardHandler) Health(c echo.Context) error {
	return response.Health(c, h.catalog.Version())
}
