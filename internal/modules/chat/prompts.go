// README: Grounding prompts for itinerary-scoped chat.
package chat

import (
	"fmt"
	"strings"
)

const assistantPreamble = "You are a helpful travel assistant. You are given a detailed itinerary and a conversation. Respond to the latest message based on the itinerary."

func startPrompt(itinerary, question string) string {
	return fmt.Sprintf(`%s

The itinerary is:
%s

The human message is: %s`, assistantPreamble, itinerary, question)
}

// continuePrompt replays the full message history in conversational order so
// the model sees every prior exchange.
func continuePrompt(itinerary string, history []Message, question string) string {
	var b strings.Builder
	b.WriteString(assistantPreamble)
	b.WriteString("\n\nThe itinerary is:\n")
	b.WriteString(itinerary)
	b.WriteString("\n\nConversation so far:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&b, "%s: %s\n%s:", RoleUser, question, RoleAssistant)
	return b.String()
}
