// README: SerpAPI client for Google Flights / Google Hotels engines.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// SerpClient fetches flight and hotel data from SerpAPI and normalizes it.
type SerpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewSerpClient creates a SerpAPI-backed search provider. An empty baseURL
// selects the public endpoint.
func NewSerpClient(apiKey, baseURL string, log *zap.Logger) *SerpClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &SerpClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

type airportInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

type flightLeg struct {
	Airline          string      `json:"airline"`
	AirlineLogo      string      `json:"airline_logo"`
	TravelClass      string      `json:"travel_class"`
	DepartureAirport airportInfo `json:"departure_airport"`
	ArrivalAirport   airportInfo `json:"arrival_airport"`
}

type flightResult struct {
	Price         json.Number `json:"price"`
	TotalDuration int         `json:"total_duration"`
	Flights       []flightLeg `json:"flights"`
}

type flightSearchResponse struct {
	Error       string         `json:"error"`
	BestFlights []flightResult `json:"best_flights"`
}

type hotelProperty struct {
	Name         string `json:"name"`
	RatePerNight struct {
		Lowest string `json:"lowest"`
	} `json:"rate_per_night"`
	OverallRating float64 `json:"overall_rating"`
	Location      string  `json:"location"`
	Link          string  `json:"link"`
}

type hotelSearchResponse struct {
	Error      string          `json:"error"`
	Properties []hotelProperty `json:"properties"`
}

// SearchFlights fetches real-time flight details from Google Flights.
func (c *SerpClient) SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOption, error) {
	c.log.Info("searching flights",
		zap.String("origin", q.Origin), zap.String("destination", q.Destination))

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("departure_id", strings.ToUpper(strings.TrimSpace(q.Origin)))
	params.Set("arrival_id", strings.ToUpper(strings.TrimSpace(q.Destination)))
	params.Set("outbound_date", q.OutboundDate)
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	}
	params.Set("currency", "USD")

	var resp flightSearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("flight search: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("flight search: %s", resp.Error)
	}

	var flights []FlightOption
	for _, f := range resp.BestFlights {
		if len(f.Flights) == 0 {
			continue
		}
		first := f.Flights[0]
		stops := "Nonstop"
		if n := len(f.Flights) - 1; n > 0 {
			stops = fmt.Sprintf("%d stop(s)", n)
		}
		price := "N/A"
		if f.Price.String() != "" {
			price = f.Price.String()
		}
		travelClass := first.TravelClass
		if travelClass == "" {
			travelClass = "Economy"
		}
		flights = append(flights, FlightOption{
			Airline:     orDefault(first.Airline, "Unknown Airline"),
			Price:       price,
			Duration:    fmt.Sprintf("%d min", f.TotalDuration),
			Stops:       stops,
			Departure:   formatLegEndpoint(first.DepartureAirport),
			Arrival:     formatLegEndpoint(first.ArrivalAirport),
			TravelClass: travelClass,
			ReturnDate:  q.ReturnDate,
			AirlineLogo: first.AirlineLogo,
		})
	}

	c.log.Info("flight search done", zap.Int("results", len(flights)))
	return flights, nil
}

// SearchHotels fetches hotel information from Google Hotels.
func (c *SerpClient) SearchHotels(ctx context.Context, q HotelQuery) ([]HotelOption, error) {
	c.log.Info("searching hotels", zap.String("location", q.Location))

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", q.Location)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("check_in_date", q.CheckInDate)
	params.Set("check_out_date", q.CheckOutDate)
	params.Set("currency", "USD")
	params.Set("sort_by", "3")
	params.Set("rating", "8")

	var resp hotelSearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("hotel search: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("hotel search: %s", resp.Error)
	}

	var hotels []HotelOption
	for _, p := range resp.Properties {
		hotels = append(hotels, HotelOption{
			Name:     orDefault(p.Name, "Unknown Hotel"),
			Price:    orDefault(p.RatePerNight.Lowest, "N/A"),
			Rating:   p.OverallRating,
			Location: orDefault(p.Location, q.Location),
			Link:     p.Link,
		})
	}

	c.log.Info("hotel search done", zap.Int("results", len(hotels)))
	return hotels, nil
}

func (c *SerpClient) get(ctx context.Context, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func formatLegEndpoint(a airportInfo) string {
	name := orDefault(a.Name, "Unknown")
	id := orDefault(a.ID, "???")
	when := orDefault(a.Time, "N/A")
	return fmt.Sprintf("%s (%s) at %s", name, id, when)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
