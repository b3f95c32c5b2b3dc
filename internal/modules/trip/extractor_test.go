package trip

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func newTestExtractor(reply func(prompt string) (string, error)) (*Extractor, *fakeCompletion) {
	completionFake := &fakeCompletion{reply: reply}
	e := NewExtractor(completionFake, zap.NewNop())
	e.now = fixedNow
	return e, completionFake
}

func TestExtractValidConversation(t *testing.T) {
	e, completionFake := newTestExtractor(nil)

	summary, err := e.Extract(context.Background(), "I want a week in Paris in early October")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if summary.ArrivalLocation != "Paris" || summary.ArrivalAirportCode != "CDG" {
		t.Errorf("unexpected summary: %+v", summary)
	}

	// The prompt anchors relative dates to today.
	if len(completionFake.prompts) != 1 || !strings.Contains(completionFake.prompts[0], "2026-09-01") {
		t.Error("extraction prompt must include today's date")
	}

	spec := SpecFromSummary(*summary)
	if spec.Origin != "SFO" || spec.Destination != "CDG" {
		t.Errorf("spec routes %s->%s, want SFO->CDG", spec.Origin, spec.Destination)
	}
	if spec.Location != "Paris" || spec.CheckInDate != "2026-10-01" || spec.CheckOutDate != "2026-10-08" {
		t.Errorf("unexpected hotel leg: %+v", spec)
	}
}

func TestExtractMissingDestination(t *testing.T) {
	e, _ := newTestExtractor(func(string) (string, error) {
		return `{"departure_location":"San Francisco","departure_date":"2026-10-01","arrival_location":"  "}`, nil
	})
	_, err := e.Extract(context.Background(), "somewhere warm")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
}

func TestExtractMalformedDate(t *testing.T) {
	e, _ := newTestExtractor(func(string) (string, error) {
		return `{"arrival_location":"Paris","departure_date":"next friday"}`, nil
	})
	_, err := e.Extract(context.Background(), "paris on friday")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
}

func TestExtractProviderFailureNotRetried(t *testing.T) {
	calls := 0
	e, _ := newTestExtractor(func(string) (string, error) {
		calls++
		return "", errors.New("rate limited")
	})
	_, err := e.Extract(context.Background(), "a trip to Rome")
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
	if calls != 1 {
		t.Errorf("provider called %d times, extraction must not retry", calls)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	e, completionFake := newTestExtractor(nil)
	if _, err := e.Extract(context.Background(), "   "); !errors.Is(err, ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
	if len(completionFake.prompts) != 0 {
		t.Error("empty input must not reach the completion provider")
	}
}
