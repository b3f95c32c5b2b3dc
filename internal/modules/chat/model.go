// README: Chat session aggregate grounding follow-up questions in an itinerary.
package chat

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds one conversational context. Itinerary is immutable after
// creation; Messages only ever grow, one user/assistant pair per exchange,
// and their order is the true conversational order.
type Session struct {
	ID        string    `json:"id"`
	Itinerary string    `json:"itinerary"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
