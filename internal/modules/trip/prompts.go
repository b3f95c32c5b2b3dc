// README: Prompt templates for the extraction and reasoning roles.
package trip

import (
	"fmt"
	"strings"
	"time"

	"tripwise/internal/maps"
)

const extractionPromptTemplate = `We want to create an itinerary based on the conversation.
The conversation is: %s
Today's date is %s.

If the conversation does not provide enough information do the following:
1. The default departure location is San Francisco.
2. Pick a common destination from the conversation.
3. Pick a departure date in 1 month from today's date.
4. If not mentioned, pick a return date 1 week after the departure date.

The output must be a JSON object with exactly the following fields:
- departure_location: The departure location.
- departure_date: The departure date in YYYY-MM-DD format.
- arrival_location: The arrival location.
- arrival_date: The arrival date in YYYY-MM-DD format.
- departure_flight_airport_code: The IATA code of the airport closest to the departure location.
- arrival_flight_airport_code: The IATA code of the airport closest to the arrival location.

Do not return the json in markdown code blocks.`

func buildExtractionPrompt(conversation string, today time.Time) string {
	return fmt.Sprintf(extractionPromptTemplate, conversation, today.Format("2006-01-02"))
}

const flightAnalystPersona = `You are an AI Flight Analyst: an expert that provides in-depth analysis comparing flight options based on price, duration, stops, and overall convenience.`

const flightAnalystTask = `
Recommend the best flight from the available options, based on the details provided below:

**Reasoning for Recommendation:**
- **💰 Price:** Provide a detailed explanation about why this flight offers the best value compared to others.
- **⏱️ Duration:** Explain why this flight has the best duration in comparison to others.
- **🛑 Stops:** Discuss why this flight has minimal or optimal stops.
- **💺 Travel Class:** Describe why this flight provides the best comfort and amenities.

Use the provided flight data as the basis for your recommendation. Be sure to justify your choice using clear reasoning for each attribute. Do not repeat the flight details in your response.`

const hotelAnalystPersona = `You are an AI Hotel Analyst: an expert that provides in-depth analysis comparing hotel options based on price, rating, location, and amenities.`

const hotelAnalystTask = `
Based on the following analysis, generate a detailed recommendation for the best hotel. Your response should include clear reasoning based on price, rating, location, and amenities.

**🏆 AI Hotel Recommendation**
We recommend the best hotel based on the following analysis:

**Reasoning for Recommendation**:
- **💰 Price:** The recommended hotel is the best option for the price compared to others, offering the best value for the amenities and services provided.
- **⭐ Rating:** With a higher rating compared to the alternatives, it ensures a better overall guest experience. Explain why this makes it the best choice.
- **📍 Location:** The hotel is in a prime location, close to important attractions, making it convenient for travelers.
- **🛋️ Amenities:** The hotel offers amenities like Wi-Fi, pool, fitness center, free breakfast, etc. Discuss how these amenities enhance the experience.

📝 **Reasoning Requirements**:
- Ensure each section clearly explains why this hotel is the best option based on price, rating, location, and amenities.
- Compare it against the other options and explain why this one stands out.
- Provide concise, well-structured reasoning to make the recommendation clear to the traveler.`

// analystPrompt builds the full prompt for one analyst role over the
// formatted search data.
func analystPrompt(role Role, data string) string {
	var persona, task, subject string
	switch role {
	case RoleHotelAnalyst:
		persona, task, subject = hotelAnalystPersona, hotelAnalystTask, "hotel"
	default:
		persona, task, subject = flightAnalystPersona, flightAnalystTask, "flight"
	}
	return fmt.Sprintf("%s\n%s\n\nData to analyze:\n%s\n\nExpected output: a structured recommendation explaining the best %s choice based on the analysis of provided details.",
		persona, task, data, subject)
}

const plannerPersona = `You are an AI Travel Planner: a travel expert generating a day-by-day itinerary including flight details, hotel stays, and must-visit locations in the destination.`

// plannerPrompt builds the itinerary synthesis prompt. flightsText and
// hotelsText are either analyst recommendations or raw formatted search
// results; attractions may be empty.
func plannerPrompt(destination, checkInDate, checkOutDate string, days int, flightsText, hotelsText string, attractions []maps.Attraction) string {
	var b strings.Builder
	b.WriteString(plannerPersona)
	fmt.Fprintf(&b, `

Based on the following details, create a %d-day itinerary for the user:

**Flight Details**:
%s

**Hotel Details**:
%s

**Destination**: %s

**Travel Dates**: %s to %s (%d days)
`, days, flightsText, hotelsText, destination, checkInDate, checkOutDate, days)

	if len(attractions) > 0 {
		b.WriteString("\n**Highly Rated Sights** (consider weaving these in):\n")
		for _, a := range attractions {
			fmt.Fprintf(&b, "- %s (%.1f⭐, %d reviews) — %s\n", a.Name, a.Rating, a.UserRatingsTotal, a.Address)
		}
	}

	b.WriteString(`
The itinerary should include:
- Flight arrival and departure information
- Hotel check-in and check-out details
- Day-by-day breakdown of activities
- Must-visit attractions and estimated visit times
- Restaurant recommendations for meals
- Tips for local transportation

📝 **Format Requirements**:
- Use markdown formatting with clear headings (# for main headings, ## for days, ### for sections)
- Include emojis for different types of activities (🏛️ for landmarks, 🍽️ for restaurants, etc.)
- Use bullet points for listing activities
- Include estimated timings for each activity
- Format the itinerary to be visually appealing and easy to read`)

	return b.String()
}
