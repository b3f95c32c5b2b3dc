// README: In-package fakes for the search and completion collaborators.
package trip

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"tripwise/internal/search"
)

var sampleFlights = []search.FlightOption{
	{Airline: "United", Price: "523", Duration: "390 min", Stops: "Nonstop",
		Departure: "SFO at 08:15", Arrival: "JFK at 16:45", TravelClass: "Economy"},
	{Airline: "Delta", Price: "602", Duration: "405 min", Stops: "1 stop(s)",
		Departure: "SFO at 11:00", Arrival: "JFK at 19:45", TravelClass: "Economy"},
}

var sampleHotels = []search.HotelOption{
	{Name: "Grand Central Hotel", Price: "$211", Rating: 4.5, Location: "Midtown"},
	{Name: "Harbor View Inn", Price: "$145", Rating: 4.1, Location: "Brooklyn"},
}

type fakeSearch struct {
	mu           sync.Mutex
	flights      []search.FlightOption
	hotels       []search.HotelOption
	flightErr    error
	hotelErr     error
	flightCalls  int
	hotelCalls   int
	lastFlightQ  search.FlightQuery
	lastHotelQ   search.HotelQuery
}

func (f *fakeSearch) SearchFlights(ctx context.Context, q search.FlightQuery) ([]search.FlightOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flightCalls++
	f.lastFlightQ = q
	return f.flights, f.flightErr
}

func (f *fakeSearch) SearchHotels(ctx context.Context, q search.HotelQuery) ([]search.HotelOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotelCalls++
	f.lastHotelQ = q
	return f.hotels, f.hotelErr
}

// fakeCompletion answers prompts by template markers so one fake serves the
// extractor, both analysts, and the planner.
type fakeCompletion struct {
	mu      sync.Mutex
	prompts []string
	// reply overrides the default canned replies when set.
	reply func(prompt string) (string, error)
}

const (
	markerExtraction    = "create an itinerary based on the conversation"
	markerFlightAnalyst = "Recommend the best flight"
	markerHotelAnalyst  = "AI Hotel Recommendation"
	markerPlanner       = "-day itinerary for the user"
)

func (f *fakeCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	reply := f.reply
	f.mu.Unlock()

	if reply != nil {
		return reply(prompt)
	}
	switch {
	case strings.Contains(prompt, markerFlightAnalyst):
		return "Take the United nonstop.", nil
	case strings.Contains(prompt, markerHotelAnalyst):
		return "Stay at the Grand Central Hotel.", nil
	case strings.Contains(prompt, markerPlanner):
		return "# Day 1: arrive and explore", nil
	case strings.Contains(prompt, markerExtraction):
		return `{"departure_location":"San Francisco","departure_date":"2026-10-01","arrival_location":"Paris","arrival_date":"2026-10-08","departure_flight_airport_code":"SFO","arrival_flight_airport_code":"CDG"}`, nil
	}
	return "", errors.New("unrecognized prompt")
}

func (f *fakeCompletion) CompleteJSON(ctx context.Context, prompt string, out any) error {
	text, err := f.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(text), out)
}

// promptsMatching returns recorded prompts containing marker, in call order.
func (f *fakeCompletion) promptsMatching(marker string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.prompts {
		if strings.Contains(p, marker) {
			out = append(out, p)
		}
	}
	return out
}
