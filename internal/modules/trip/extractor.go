// README: Conversation extractor turning free text into a structured trip spec.
package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripwise/internal/ai"
)

// ErrExtraction marks an unparsable or incomplete trip request. The
// ambiguity is in the user's input, so callers surface it instead of
// retrying.
var ErrExtraction = errors.New("trip details could not be extracted")

const dateLayout = "2006-01-02"

// Extractor delegates natural-language interpretation to the completion
// provider and validates the structured result. It never retries.
type Extractor struct {
	ai  ai.CompletionProvider
	log *zap.Logger
	now func() time.Time
}

func NewExtractor(provider ai.CompletionProvider, log *zap.Logger) *Extractor {
	return &Extractor{ai: provider, log: log, now: time.Now}
}

// Extract parses conversation text into an itinerary summary. Destination
// and at least one parseable date are required.
func (e *Extractor) Extract(ctx context.Context, conversation string) (*ItinerarySummary, error) {
	if strings.TrimSpace(conversation) == "" {
		return nil, fmt.Errorf("%w: empty conversation text", ErrExtraction)
	}

	prompt := buildExtractionPrompt(conversation, e.now())

	var summary ItinerarySummary
	if err := e.ai.CompleteJSON(ctx, prompt, &summary); err != nil {
		e.log.Warn("extraction completion failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	if strings.TrimSpace(summary.ArrivalLocation) == "" {
		return nil, fmt.Errorf("%w: missing destination", ErrExtraction)
	}
	if summary.DepartureDate == "" {
		return nil, fmt.Errorf("%w: missing departure date", ErrExtraction)
	}
	if _, err := time.Parse(dateLayout, summary.DepartureDate); err != nil {
		return nil, fmt.Errorf("%w: bad departure date %q", ErrExtraction, summary.DepartureDate)
	}
	if summary.ArrivalDate != "" {
		if _, err := time.Parse(dateLayout, summary.ArrivalDate); err != nil {
			return nil, fmt.Errorf("%w: bad return date %q", ErrExtraction, summary.ArrivalDate)
		}
	}

	e.log.Info("extracted trip spec",
		zap.String("destination", summary.ArrivalLocation),
		zap.String("departure_date", summary.DepartureDate))
	return &summary, nil
}

// SpecFromSummary maps an extracted summary onto the TripSpec consumed by
// the workflow: flights go airport-to-airport, the hotel stay brackets the
// trip.
func SpecFromSummary(s ItinerarySummary) TripSpec {
	return TripSpec{
		Origin:       s.DepartureAirportCode,
		Destination:  s.ArrivalAirportCode,
		OutboundDate: s.DepartureDate,
		ReturnDate:   s.ArrivalDate,
		Location:     s.ArrivalLocation,
		CheckInDate:  s.DepartureDate,
		CheckOutDate: s.ArrivalDate,
	}
}
