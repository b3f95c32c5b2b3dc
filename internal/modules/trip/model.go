// README: Trip planning domain model: workflow types, spec, response contract.
package trip

import (
	"tripwise/internal/search"
)

// WorkflowType selects which subset of the pipeline runs for a request.
type WorkflowType string

const (
	WorkflowFlight WorkflowType = "flight"
	WorkflowHotel  WorkflowType = "hotel"
	WorkflowTravel WorkflowType = "travel"
)

func (w WorkflowType) WantsFlights() bool {
	return w == WorkflowFlight || w == WorkflowTravel
}

func (w WorkflowType) WantsHotels() bool {
	return w == WorkflowHotel || w == WorkflowTravel
}

// TripSpec is the structured trip specification extracted from conversation
// text or supplied directly by the caller. Optional fields stay empty rather
// than guessed; Location defaults to Destination downstream when unset.
type TripSpec struct {
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination"`
	OutboundDate string `json:"outbound_date,omitempty"`
	ReturnDate   string `json:"return_date,omitempty"`
	Location     string `json:"location,omitempty"`
	CheckInDate  string `json:"check_in_date,omitempty"`
	CheckOutDate string `json:"check_out_date,omitempty"`
}

// HotelLocation returns the hotel search location, falling back to the
// destination when no explicit location was given.
func (s TripSpec) HotelLocation() string {
	if s.Location != "" {
		return s.Location
	}
	return s.Destination
}

// ItinerarySummary is the structured itinerary block returned alongside the
// itinerary text.
type ItinerarySummary struct {
	DepartureLocation    string `json:"departure_location"`
	DepartureDate        string `json:"departure_date"`
	ArrivalLocation      string `json:"arrival_location"`
	ArrivalDate          string `json:"arrival_date"`
	DepartureAirportCode string `json:"departure_flight_airport_code"`
	ArrivalAirportCode   string `json:"arrival_flight_airport_code"`
}

// AIResponse is the single response contract assembled for callers. Fields
// for roles that did not run are empty values, never null.
type AIResponse struct {
	Flights                []search.FlightOption `json:"flights"`
	Hotels                 []search.HotelOption  `json:"hotels"`
	AIFlightRecommendation string                `json:"ai_flight_recommendation"`
	AIHotelRecommendation  string                `json:"ai_hotel_recommendation"`
	Itinerary              string                `json:"itinerary"`
	ItineraryJSON          ItinerarySummary      `json:"itinerary_json"`
}

// Role identifies one specialized reasoning stage of the pipeline.
type Role string

const (
	RoleFlightAnalyst Role = "flight_analyst"
	RoleHotelAnalyst  Role = "hotel_analyst"
	RolePlanner       Role = "planner"
)

// TaskResult is the output of one pipeline stage. Downstream stages may use
// Recommendation and Payload as additional prompt context. A TaskResult
// belongs to exactly one workflow run.
type TaskResult struct {
	Role           Role
	Recommendation string
	Payload        string
}

// Stage names one step of the orchestration state machine.
type Stage string

const (
	StageInit     Stage = "init"
	StageAnalyzed Stage = "analyzed"
	StagePlanned  Stage = "planned"
	StageDone     Stage = "done"
)

// stageTransitions represents the workflow state flow as code. Planning is
// only reachable after analysis; non-travel workflows go straight to done.
var stageTransitions = map[Stage][]Stage{
	StageInit:     {StageAnalyzed},
	StageAnalyzed: {StagePlanned, StageDone},
	StagePlanned:  {StageDone},
}

func canAdvance(from, to Stage) bool {
	for _, s := range stageTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
