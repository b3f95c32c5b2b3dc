// README: Workflow orchestrator running search fan-out, analyst roles, and planning.
package trip

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tripwise/internal/ai"
	"tripwise/internal/maps"
	"tripwise/internal/search"
)

var (
	// ErrSearchUnavailable marks a failed search call. It is absorbed by the
	// pipeline: the category degrades to empty results.
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrRecommendation marks an analyst role that failed after retry. Only
	// that field is left empty; the request still succeeds.
	ErrRecommendation = errors.New("recommendation generation failed")

	// ErrItineraryGeneration is fatal for the travel workflow: the itinerary
	// is the primary deliverable.
	ErrItineraryGeneration = errors.New("itinerary generation failed")
)

// AttractionSource supplies sightseeing suggestions for the planner prompt.
// Implementations may fail; the planner degrades without them.
type AttractionSource interface {
	TopAttractions(ctx context.Context, destination string, limit int) ([]maps.Attraction, error)
}

// Service runs the staged travel-planning pipeline: concurrent flight/hotel
// search, concurrent analyst roles over the results, then itinerary
// synthesis for the travel workflow.
type Service struct {
	search    search.Provider
	ai        ai.CompletionProvider
	places    AttractionSource // optional
	extractor *Extractor
	log       *zap.Logger

	callTimeout  time.Duration
	retryBackoff time.Duration
}

func NewService(provider search.Provider, completions ai.CompletionProvider, places AttractionSource, log *zap.Logger) *Service {
	return &Service{
		search:       provider,
		ai:           completions,
		places:       places,
		extractor:    NewExtractor(completions, log),
		log:          log,
		callTimeout:  60 * time.Second,
		retryBackoff: 2 * time.Second,
	}
}

// run tracks the stage of one workflow run. Results are never shared across
// concurrent runs.
type run struct {
	stage Stage
}

func (r *run) advance(to Stage) error {
	if !canAdvance(r.stage, to) {
		return fmt.Errorf("invalid stage transition %s -> %s", r.stage, to)
	}
	r.stage = to
	return nil
}

// ExtractAndPlan turns free-form conversation text into a full travel plan.
// Extraction failures propagate; the rest follows Run semantics.
func (s *Service) ExtractAndPlan(ctx context.Context, conversation string) (*AIResponse, error) {
	summary, err := s.extractor.Extract(ctx, conversation)
	if err != nil {
		return nil, err
	}

	resp, err := s.Run(ctx, SpecFromSummary(*summary), WorkflowTravel)
	if err != nil {
		return nil, err
	}
	resp.ItineraryJSON = *summary
	return resp, nil
}

// Run executes the pipeline selected by the workflow type over the given
// spec and assembles the response contract.
func (s *Service) Run(ctx context.Context, spec TripSpec, workflow WorkflowType) (*AIResponse, error) {
	r := &run{stage: StageInit}
	s.log.Info("workflow started",
		zap.String("workflow", string(workflow)),
		zap.String("destination", spec.Destination))

	// Search fan-out: flight and hotel searches have no dependency on each
	// other and run concurrently.
	var (
		flights []search.FlightOption
		hotels  []search.HotelOption
		wg      sync.WaitGroup
	)
	if workflow.WantsFlights() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			flights = s.searchFlights(ctx, spec)
		}()
	}
	if workflow.WantsHotels() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hotels = s.searchHotels(ctx, spec)
		}()
	}
	wg.Wait()
	if err := r.advance(StageAnalyzed); err != nil {
		return nil, err
	}

	// Analyst fan-out: each category with results gets its own role run.
	// A category with no results is skipped, not failed.
	var flightTask, hotelTask TaskResult
	if len(flights) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			flightTask = s.runAnalyst(ctx, RoleFlightAnalyst, FormatFlights(flights))
		}()
	}
	if len(hotels) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hotelTask = s.runAnalyst(ctx, RoleHotelAnalyst, FormatHotels(hotels))
		}()
	}
	wg.Wait()

	var itinerary string
	if workflow == WorkflowTravel {
		// Planning strictly follows both analyses it depends on.
		if err := r.advance(StagePlanned); err != nil {
			return nil, err
		}

		flightContext := flightTask.Recommendation
		if flightContext == "" {
			flightContext = FormatFlights(flights)
		}
		hotelContext := hotelTask.Recommendation
		if hotelContext == "" {
			hotelContext = FormatHotels(hotels)
		}

		text, err := s.planItinerary(ctx, spec, flightContext, hotelContext)
		if err != nil {
			return nil, err
		}
		itinerary = text
	}

	if err := r.advance(StageDone); err != nil {
		return nil, err
	}
	s.log.Info("workflow done", zap.String("workflow", string(workflow)))

	return Assemble(flights, hotels, flightTask.Recommendation, hotelTask.Recommendation, itinerary, summaryFromSpec(spec)), nil
}

// GenerateItineraryRequest invokes the planner directly with caller-provided
// flight and hotel context, without a prior search.
type GenerateItineraryRequest struct {
	Destination  string
	CheckInDate  string
	CheckOutDate string
	FlightsText  string
	HotelsText   string
}

// GenerateItinerary runs only the planning role.
func (s *Service) GenerateItinerary(ctx context.Context, req GenerateItineraryRequest) (*AIResponse, error) {
	spec := TripSpec{
		Destination:  req.Destination,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	}
	text, err := s.planItinerary(ctx, spec, req.FlightsText, req.HotelsText)
	if err != nil {
		return nil, err
	}
	return Assemble(nil, nil, "", "", text, summaryFromSpec(spec)), nil
}

func (s *Service) searchFlights(ctx context.Context, spec TripSpec) []search.FlightOption {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	flights, err := s.search.SearchFlights(cctx, search.FlightQuery{
		Origin:       spec.Origin,
		Destination:  spec.Destination,
		OutboundDate: spec.OutboundDate,
		ReturnDate:   spec.ReturnDate,
	})
	if err != nil {
		s.log.Warn("degrading to empty flight results",
			zap.Error(fmt.Errorf("%w: %v", ErrSearchUnavailable, err)))
		return nil
	}
	return flights
}

func (s *Service) searchHotels(ctx context.Context, spec TripSpec) []search.HotelOption {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	checkIn, checkOut := spec.CheckInDate, spec.CheckOutDate
	if checkIn == "" {
		checkIn = spec.OutboundDate
	}
	if checkOut == "" {
		checkOut = spec.ReturnDate
	}

	hotels, err := s.search.SearchHotels(cctx, search.HotelQuery{
		Location:     spec.HotelLocation(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	})
	if err != nil {
		s.log.Warn("degrading to empty hotel results",
			zap.Error(fmt.Errorf("%w: %v", ErrSearchUnavailable, err)))
		return nil
	}
	return hotels
}

// runAnalyst produces one analyst recommendation. Failure after retry leaves
// the recommendation empty without failing the run.
func (s *Service) runAnalyst(ctx context.Context, role Role, formattedData string) TaskResult {
	text, err := s.completeWithRetry(ctx, analystPrompt(role, formattedData))
	if err != nil {
		s.log.Warn("analyst role failed, leaving field empty",
			zap.String("role", string(role)),
			zap.Error(fmt.Errorf("%w: %v", ErrRecommendation, err)))
		return TaskResult{Role: role, Payload: formattedData}
	}
	return TaskResult{Role: role, Recommendation: text, Payload: formattedData}
}

func (s *Service) planItinerary(ctx context.Context, spec TripSpec, flightsText, hotelsText string) (string, error) {
	destination := spec.HotelLocation()

	days := tripDays(spec.CheckInDate, spec.CheckOutDate)

	var attractions []maps.Attraction
	if s.places != nil {
		cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
		found, err := s.places.TopAttractions(cctx, destination, 5)
		cancel()
		if err != nil {
			s.log.Warn("attraction lookup failed, planning without it", zap.Error(err))
		} else {
			attractions = found
		}
	}

	prompt := plannerPrompt(destination, spec.CheckInDate, spec.CheckOutDate, days, flightsText, hotelsText, attractions)
	text, err := s.completeWithRetry(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrItineraryGeneration, err)
	}
	return text, nil
}

// completeWithRetry calls the completion provider with a bounded deadline,
// retrying once with backoff on failure.
func (s *Service) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	text, err := s.complete(ctx, prompt)
	if err == nil {
		return text, nil
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(s.retryBackoff):
	}

	return s.complete(ctx, prompt)
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.ai.Complete(cctx, prompt)
}

// tripDays derives the itinerary length from the stay dates, defaulting to a
// single day when the dates are absent or not ordered.
func tripDays(checkIn, checkOut string) int {
	in, errIn := time.Parse(dateLayout, checkIn)
	out, errOut := time.Parse(dateLayout, checkOut)
	if errIn != nil || errOut != nil {
		return 1
	}
	days := int(out.Sub(in).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

func summaryFromSpec(spec TripSpec) ItinerarySummary {
	departureDate := spec.OutboundDate
	if departureDate == "" {
		departureDate = spec.CheckInDate
	}
	arrivalDate := spec.ReturnDate
	if arrivalDate == "" {
		arrivalDate = spec.CheckOutDate
	}
	return ItinerarySummary{
		DepartureLocation: spec.Origin,
		DepartureDate:     departureDate,
		ArrivalLocation:   spec.Destination,
		ArrivalDate:       arrivalDate,
	}
}
