package seatsaero

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// searchResponse is the body of GET /search.
type searchResponse struct {
	Data    []availability `json:"data"`
	Count   int            `json:"count"`
	HasMore bool           `json:"hasMore"`
	Cursor  int64          `json:"cursor"`
}

// availability is one cached availability record: a route, a date and one
// summary per cabin. Trips are present when include_trips is set.
type availability struct {
	ID    string `json:"ID"`
	Route route  `json:"Route"`
	Date  string `json:"Date"`

	YMileageCostRaw    int        `json:"YMileageCostRaw"`
	WMileageCostRaw    int        `json:"WMileageCostRaw"`
	JMileageCostRaw    int        `json:"JMileageCostRaw"`
	FMileageCostRaw    int        `json:"FMileageCostRaw"`
	YTotalTaxesRaw     int64      `json:"YTotalTaxesRaw"`
	WTotalTaxesRaw     int64      `json:"WTotalTaxesRaw"`
	JTotalTaxesRaw     int64      `json:"JTotalTaxesRaw"`
	FTotalTaxesRaw     int64      `json:"FTotalTaxesRaw"`
	YRemainingSeatsRaw flexString `json:"YRemainingSeatsRaw"`
	WRemainingSeatsRaw flexString `json:"WRemainingSeatsRaw"`
	JRemainingSeatsRaw flexString `json:"JRemainingSeatsRaw"`
	FRemainingSeatsRaw flexString `json:"FRemainingSeatsRaw"`
	YAirlinesRaw       string     `json:"YAirlinesRaw"`
	WAirlinesRaw       string     `json:"WAirlinesRaw"`
	JAirlinesRaw       string     `json:"JAirlinesRaw"`
	FAirlinesRaw       string     `json:"FAirlinesRaw"`
	YDirectRaw         bool       `json:"YDirectRaw"`
	WDirectRaw         bool       `json:"WDirectRaw"`
	JDirectRaw         bool       `json:"JDirectRaw"`
	FDirectRaw         bool       `json:"FDirectRaw"`

	TaxesCurrency string `json:"TaxesCurrency"`

	AvailabilityTrips []trip `json:"AvailabilityTrips"`
}

type route struct {
	OriginAirport      string `json:"OriginAirport"`
	DestinationAirport string `json:"DestinationAirport"`
	Source             string `json:"Source"`
}

// trip is one bookable itinerary of a record.
type trip struct {
	ID             string     `json:"ID"`
	Cabin          string     `json:"Cabin"`
	MileageCost    int        `json:"MileageCost"`
	TotalTaxes     int64      `json:"TotalTaxes"`
	TaxesCurrency  string     `json:"TaxesCurrency"`
	RemainingSeats flexString `json:"RemainingSeats"`
	Stops          int        `json:"Stops"`
	TotalDuration  int        `json:"TotalDuration"`
	FlightNumbers  string     `json:"FlightNumbers"`
	Carriers       string     `json:"Carriers"`
	DepartsAt      string     `json:"DepartsAt"`
	ArrivesAt      string     `json:"ArrivesAt"`
	Source         string     `json:"Source"`

	AvailabilitySegments []segment `json:"AvailabilitySegments"`
}

type segment struct {
	FlightNumber       string `json:"FlightNumber"`
	OriginAirport      string `json:"OriginAirport"`
	DestinationAirport string `json:"DestinationAirport"`
	DepartsAt          string `json:"DepartsAt"`
	ArrivesAt          string `json:"ArrivesAt"`
	AircraftName       string `json:"AircraftName"`
	FareClass          string `json:"FareClass"`
	Order              int    `json:"Order"`
}

// flexString accepts a JSON string or number; seat counts arrive as both.
// Any other value keeps its literal JSON text.
type flexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// any other JSON value is kept as its literal text
		*f = flexString(data)
		return nil
	}
	if i, err := n.Int64(); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// cabinSummary is the per-cabin slice of a record's summary fields.
type cabinSummary struct {
	Miles    int
	Taxes    int64
	Seats    string
	Airlines string
	Direct   bool
}

// summary picks the summary fields of the given cabin.
func (a availability) summary(prefix byte) cabinSummary {
	switch prefix {
	case 'W':
		return cabinSummary{a.WMileageCostRaw, a.WTotalTaxesRaw, string(a.WRemainingSeatsRaw), a.WAirlinesRaw, a.WDirectRaw}
	case 'J':
		return cabinSummary{a.JMileageCostRaw, a.JTotalTaxesRaw, string(a.JRemainingSeatsRaw), a.JAirlinesRaw, a.JDirectRaw}
	case 'F':
		return cabinSummary{a.FMileageCostRaw, a.FTotalTaxesRaw, string(a.FRemainingSeatsRaw), a.FAirlinesRaw, a.FDirectRaw}
	default:
		return cabinSummary{a.YMileageCostRaw, a.YTotalTaxesRaw, string(a.YRemainingSeatsRaw), a.YAirlinesRaw, a.YDirectRaw}
	}
}
