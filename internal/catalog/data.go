package catalog

import "github.com/award-search/award-flight-finder/internal/domain"

// builtinPrograms uses the seats.aero source codes as identifiers.
var builtinPrograms = []domain.Program{
	{ID: "american", Name: "American Airlines AAdvantage"},
	{ID: "aeroplan", Name: "Air Canada Aeroplan"},
	{ID: "aeromexico", Name: "Aeromexico Club Premier"},
	{ID: "alaska", Name: "Alaska Airlines Mileage Plan"},
	{ID: "ana", Name: "ANA Mileage Club"},
	{ID: "asia-miles", Name: "Cathay Pacific Asia Miles"},
	{ID: "delta", Name: "Delta SkyMiles"},
	{ID: "etihad", Name: "Etihad Guest"},
	{ID: "executive-club", Name: "British Airways Executive Club"},
	{ID: "finnair", Name: "Finnair Plus"},
	{ID: "flyingblue", Name: "Air France-KLM Flying Blue"},
	{ID: "hawaiian", Name: "Hawaiian Airlines HawaiianMiles"},
	{ID: "jetblue", Name: "JetBlue TrueBlue"},
	{ID: "singapore", Name: "Singapore Airlines KrisFlyer"},
	{ID: "lufthansa", Name: "Lufthansa Miles & More"},
	{ID: "qatar", Name: "Qatar Airways Privilege Club"},
	{ID: "qantas", Name: "Qantas Frequent Flyer"},
	{ID: "emirates", Name: "Emirates Skywards"},
	{ID: "southwest", Name: "Southwest Rapid Rewards"},
	{ID: "turkish", Name: "Turkish Airlines Miles&Smiles"},
	{ID: "united", Name: "United MileagePlus"},
	{ID: "virginatlantic", Name: "Virgin Atlantic Flying Club"},
	{ID: "velocity", Name: "Virgin Australia Velocity"},
}

var builtinCards = []domain.CreditCard{
	{
		ID:   "capital-one",
		Name: "Capital One (Venture, VentureX, Spark Miles)",
		Partners: []string{
			"aeromexico", "aeroplan", "flyingblue", "emirates", "etihad", "finnair",
			"jetblue", "qantas", "qatar", "singapore", "turkish", "virginatlantic",
		},
	},
	{
		ID:       "chase",
		Name:     "Chase Ultimate Rewards (Sapphire, Freedom, Ink)",
		Partners: []string{"aeroplan", "flyingblue", "jetblue", "singapore", "united", "virginatlantic"},
	},
	{
		ID:   "amex",
		Name: "American Express Membership Rewards",
		Partners: []string{
			"aeromexico", "aeroplan", "flyingblue", "delta", "emirates", "etihad",
			"jetblue", "qantas", "qatar", "singapore", "virginatlantic", "velocity",
		},
	},
	{
		ID:   "citi",
		Name: "Citi ThankYou Rewards (Premier, Prestige, Rewards+)",
		Partners: []string{
			"aeromexico", "american", "flyingblue", "emirates", "etihad",
			"jetblue", "qatar", "singapore", "turkish", "virginatlantic",
		},
	},
	{
		ID:   "bilt",
		Name: "Bilt Rewards",
		Partners: []string{
			"aeroplan", "flyingblue", "alaska", "emirates", "etihad",
			"qatar", "turkish", "united", "virginatlantic",
		},
	},
	{
		ID:       "wells-fargo",
		Name:     "Wells Fargo Autograph",
		Partners: []string{"flyingblue", "virginatlantic"},
	},
	{
		ID:       "rove",
		Name:     "Rove",
		Partners: []string{"aeromexico", "etihad", "finnair", "lufthansa", "qatar"},
	},
}
