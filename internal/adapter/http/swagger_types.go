// Package http provides swagger type definitions for API documentation.
// These types mirror the generic list responses so swag can describe them.
package http

// SwaggerProgram is a searchable loyalty program.
// @Description Loyalty program
type SwaggerProgram struct {
	// ID is the seats.aero source code
	ID string `json:"id" example:"aeroplan"`

	// Name is the display name
	Name string `json:"name" example:"Air Canada Aeroplan"`
}

// SwaggerProgramList is the response of GET /programs.
// @Description Registered loyalty programs
type SwaggerProgramList struct {
	// Version is the catalog revision
	Version string `json:"version" example:"2025.11"`

	Count int              `json:"count" example:"23"`
	Items []SwaggerProgram `json:"items"`
}

// SwaggerCreditCard is a transferable rewards currency.
// @Description Credit card rewards currency and its airline transfer partners
type SwaggerCreditCard struct {
	ID   string `json:"id" example:"capital-one"`
	Name string `json:"name" example:"Capital One (Venture, VentureX, Spark Miles)"`

	// Partners are program ids accepted by POST /awards/search
	Partners []string `json:"partners" example:"aeroplan,flyingblue,turkish"`
}

// SwaggerCreditCardList is the response of GET /credit-cards.
// @Description Credit cards with transfer partners
type SwaggerCreditCardList struct {
	Version string              `json:"version" example:"2025.11"`
	Count   int                 `json:"count" example:"5"`
	Items   []SwaggerCreditCard `json:"items"`
}
