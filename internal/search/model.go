// README: Search provider contract and normalized flight/hotel results.
package search

import "context"

// FlightOption is a normalized flight result. Immutable once produced.
type FlightOption struct {
	Airline     string `json:"airline"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Stops       string `json:"stops"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	TravelClass string `json:"travel_class"`
	ReturnDate  string `json:"return_date"`
	AirlineLogo string `json:"airline_logo,omitempty"`
}

// HotelOption is a normalized hotel result. Immutable once produced.
type HotelOption struct {
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	Rating   float64 `json:"rating"`
	Location string  `json:"location"`
	Link     string  `json:"link,omitempty"`
}

type FlightQuery struct {
	Origin       string
	Destination  string
	OutboundDate string
	ReturnDate   string
}

type HotelQuery struct {
	Location     string
	CheckInDate  string
	CheckOutDate string
}

// Provider issues flight and hotel searches against an external search
// service. A failed call is treated upstream as "no results"; the pipeline
// degrades rather than aborting.
type Provider interface {
	SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOption, error)
	SearchHotels(ctx context.Context, q HotelQuery) ([]HotelOption, error)
}
