package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripwise/internal/ai"
	"tripwise/internal/modules/trip"
	"tripwise/internal/search"
)

func main() {
	_ = godotenv.Load()

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}
	serpKey := os.Getenv("SERP_API_KEY")
	if serpKey == "" {
		log.Fatal("SERP_API_KEY environment variable not set")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, geminiKey, "")
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	searchClient := search.NewSerpClient(serpKey, "", logger)
	trips := trip.NewService(searchClient, provider, nil, logger)

	conversation := "I want to fly from San Francisco to Tokyo on 2026-10-12 " +
		"and come back on 2026-10-19. Find me flights and a good hotel."
	fmt.Printf("User: %s\n\n", conversation)

	resp, err := trips.ExtractAndPlan(ctx, conversation)
	if err != nil {
		log.Fatalf("Error planning trip: %v", err)
	}

	fmt.Printf("Flights found: %d\n", len(resp.Flights))
	fmt.Printf("Hotels found: %d\n\n", len(resp.Hotels))
	fmt.Printf("Flight recommendation:\n%s\n\n", resp.AIFlightRecommendation)
	fmt.Printf("Hotel recommendation:\n%s\n\n", resp.AIHotelRecommendation)
	fmt.Printf("Itinerary:\n%s\n", resp.Itinerary)
}
