package maps

import (
	"context"
	"fmt"
	"sort"

	"googlemaps.github.io/maps"
)

// Attraction represents a simplified sight result near a destination.
type Attraction struct {
	Name             string
	Address          string
	Rating           float32
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// TopAttractions searches for highly rated sights in the destination city.
// Results below a 4.0 rating are dropped; the rest are ordered by rating,
// review count as tie-breaker, and capped at limit.
func (s *PlacesService) TopAttractions(ctx context.Context, destination string, limit int) ([]Attraction, error) {
	r := &maps.TextSearchRequest{
		Query:    fmt.Sprintf("top tourist attractions in %s", destination),
		Language: "en",
		Type:     "tourist_attraction",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Attraction
	for _, result := range resp.Results {
		if result.Rating < 4.0 {
			continue
		}
		results = append(results, Attraction{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			UserRatingsTotal: result.UserRatingsTotal,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Rating != results[j].Rating {
			return results[i].Rating > results[j].Rating
		}
		return results[i].UserRatingsTotal > results[j].UserRatingsTotal
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
