// README: Markdown formatters turning search results into prompt context.
package trip

import (
	"fmt"
	"strings"

	"tripwise/internal/search"
)

// FormatFlights renders flight options as the markdown block fed to the
// flight analyst.
func FormatFlights(flights []search.FlightOption) string {
	if len(flights) == 0 {
		return "No flights available."
	}

	var b strings.Builder
	b.WriteString("✈️ **Available flight options**:\n\n")
	for i, f := range flights {
		fmt.Fprintf(&b,
			"**Flight %d:**\n"+
				"✈️ **Airline:** %s\n"+
				"💰 **Price:** $%s\n"+
				"⏱️ **Duration:** %s\n"+
				"🛑 **Stops:** %s\n"+
				"🕔 **Departure:** %s\n"+
				"🕖 **Arrival:** %s\n"+
				"💺 **Class:** %s\n\n",
			i+1, f.Airline, f.Price, f.Duration, f.Stops, f.Departure, f.Arrival, f.TravelClass)
	}
	return strings.TrimSpace(b.String())
}

// FormatHotels renders hotel options as the markdown block fed to the hotel
// analyst.
func FormatHotels(hotels []search.HotelOption) string {
	if len(hotels) == 0 {
		return "No hotels available."
	}

	var b strings.Builder
	b.WriteString("🏨 **Available Hotel Options**:\n\n")
	for i, h := range hotels {
		fmt.Fprintf(&b,
			"**Hotel %d:**\n"+
				"🏨 **Name:** %s\n"+
				"💰 **Price:** %s\n"+
				"⭐ **Rating:** %.1f\n"+
				"📍 **Location:** %s\n"+
				"🔗 **More Info:** [Link](%s)\n\n",
			i+1, h.Name, h.Price, h.Rating, h.Location, h.Link)
	}
	return strings.TrimSpace(b.String())
}
