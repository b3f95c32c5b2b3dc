// README: Response assembly with empty defaults, never nulls.
package trip

import "tripwise/internal/search"

// Assemble merges whatever subset of stage outputs was produced into the
// complete response contract. Unproduced fields become empty lists/strings
// so callers never need null checks.
func Assemble(flights []search.FlightOption, hotels []search.HotelOption, flightRec, hotelRec, itinerary string, summary ItinerarySummary) *AIResponse {
	if flights == nil {
		flights = []search.FlightOption{}
	}
	if hotels == nil {
		hotels = []search.HotelOption{}
	}
	return &AIResponse{
		Flights:                flights,
		Hotels:                 hotels,
		AIFlightRecommendation: flightRec,
		AIHotelRecommendation:  hotelRec,
		Itinerary:              itinerary,
		ItineraryJSON:          summary,
	}
}
