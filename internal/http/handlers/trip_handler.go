// README: Trip planning handlers (search, complete search, itineraries).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripwise/internal/modules/trip"
)

// pipelineTimeout bounds a whole request across search and reasoning calls.
const pipelineTimeout = 3 * time.Minute

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

type flightSearchReq struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	OutboundDate string `json:"outbound_date"`
	ReturnDate   string `json:"return_date"`
}

type hotelSearchReq struct {
	Location     string `json:"location"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

type completeSearchReq struct {
	flightSearchReq
	Hotel *hotelSearchReq `json:"hotel"`
}

type itineraryReq struct {
	Destination  string `json:"destination"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Flights      string `json:"flights"`
	Hotels       string `json:"hotels"`
}

type conversationReq struct {
	ConversationText string `json:"conversation_text"`
}

// SearchFlights handles POST /api/search/flights.
func (h *TripHandler) SearchFlights(c *gin.Context) {
	var req flightSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Origin == "" || req.Destination == "" || req.OutboundDate == "" {
		writeError(c, http.StatusBadRequest, "origin, destination and outbound_date are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pipelineTimeout)
	defer cancel()

	resp, err := h.trips.Run(ctx, trip.TripSpec{
		Origin:       req.Origin,
		Destination:  req.Destination,
		OutboundDate: req.OutboundDate,
		ReturnDate:   req.ReturnDate,
	}, trip.WorkflowFlight)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// SearchHotels handles POST /api/search/hotels.
func (h *TripHandler) SearchHotels(c *gin.Context) {
	var req hotelSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Location == "" || req.CheckInDate == "" || req.CheckOutDate == "" {
		writeError(c, http.StatusBadRequest, "location, check_in_date and check_out_date are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pipelineTimeout)
	defer cancel()

	resp, err := h.trips.Run(ctx, trip.TripSpec{
		Destination:  req.Location,
		Location:     req.Location,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	}, trip.WorkflowHotel)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// CompleteSearch handles POST /api/search/complete: flights and hotels
// concurrently, recommendations for both, and a synthesized itinerary. The
// hotel leg defaults to the flight leg when not given.
func (h *TripHandler) CompleteSearch(c *gin.Context) {
	var req completeSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Origin == "" || req.Destination == "" || req.OutboundDate == "" {
		writeError(c, http.StatusBadRequest, "origin, destination and outbound_date are required")
		return
	}

	spec := trip.TripSpec{
		Origin:       req.Origin,
		Destination:  req.Destination,
		OutboundDate: req.OutboundDate,
		ReturnDate:   req.ReturnDate,
		CheckInDate:  req.OutboundDate,
		CheckOutDate: req.ReturnDate,
	}
	if req.Hotel != nil {
		spec.Location = req.Hotel.Location
		spec.CheckInDate = req.Hotel.CheckInDate
		spec.CheckOutDate = req.Hotel.CheckOutDate
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pipelineTimeout)
	defer cancel()

	resp, err := h.trips.Run(ctx, spec, trip.WorkflowTravel)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// GenerateItinerary handles POST /api/itinerary with caller-provided flight
// and hotel context.
func (h *TripHandler) GenerateItinerary(c *gin.Context) {
	var req itineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Destination == "" || req.CheckInDate == "" || req.CheckOutDate == "" {
		writeError(c, http.StatusBadRequest, "destination, check_in_date and check_out_date are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pipelineTimeout)
	defer cancel()

	resp, err := h.trips.GenerateItinerary(ctx, trip.GenerateItineraryRequest{
		Destination:  req.Destination,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		FlightsText:  req.Flights,
		HotelsText:   req.Hotels,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}

// FromConversation handles POST /api/itinerary/conversation: free text in,
// full travel plan out.
func (h *TripHandler) FromConversation(c *gin.Context) {
	var req conversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.ConversationText) == "" {
		writeError(c, http.StatusBadRequest, "conversation_text is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pipelineTimeout)
	defer cancel()

	resp, err := h.trips.ExtractAndPlan(ctx, req.ConversationText)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
