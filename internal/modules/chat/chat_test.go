// README: Chat service tests (grounding, unknown sessions, history replay).
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// fakeCompletion echoes the question it finds in the prompt so answers can
// be matched back to their questions.
type fakeCompletion struct {
	mu      sync.Mutex
	prompts []string
	err     error
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return "echo: " + lastQuestion(prompt), nil
}

func (f *fakeCompletion) CompleteJSON(ctx context.Context, prompt string, out any) error {
	return errors.New("not used in chat")
}

func (f *fakeCompletion) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func lastQuestion(prompt string) string {
	if i := strings.LastIndex(prompt, "The human message is: "); i >= 0 {
		return strings.TrimSpace(prompt[i+len("The human message is: "):])
	}
	if i := strings.LastIndex(prompt, "user: "); i >= 0 {
		rest := prompt[i+len("user: "):]
		if j := strings.Index(rest, "\n"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}

func newTestChat() (*Service, *fakeCompletion) {
	completionFake := &fakeCompletion{}
	return NewService(NewMemoryStore(), completionFake, zap.NewNop()), completionFake
}

const testItinerary = "Day 1: Louvre. Day 2: Versailles."

func TestStartCreatesGroundedSession(t *testing.T) {
	svc, completionFake := newTestChat()
	ctx := context.Background()

	id, answer, err := svc.Start(ctx, testItinerary, "What's the weather like?")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if id == "" {
		t.Fatal("expected a session id")
	}
	if answer != "echo: What's the weather like?" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(completionFake.lastPrompt(), testItinerary) {
		t.Error("start prompt must include the itinerary")
	}

	history, err := svc.History(ctx, id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].Role != RoleUser || history[1].Role != RoleAssistant {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestStartSessionIDsUnique(t *testing.T) {
	svc, _ := newTestChat()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, _, err := svc.Start(ctx, testItinerary, "hi")
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}

func TestContinueUnknownSession(t *testing.T) {
	svc, completionFake := newTestChat()

	_, err := svc.Continue(context.Background(), "no-such-session", "hello?")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
	// The failed lookup must not create a session or call the model.
	if len(completionFake.prompts) != 0 {
		t.Error("completion provider must not be called for unknown sessions")
	}
	if _, err := svc.History(context.Background(), "no-such-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("unknown session must not come into existence as a side effect")
	}
}

func TestContinueReplaysFullContext(t *testing.T) {
	svc, completionFake := newTestChat()
	ctx := context.Background()

	id, firstAnswer, err := svc.Start(ctx, testItinerary, "What's the weather?")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.Continue(ctx, id, "And day 2?"); err != nil {
		t.Fatalf("Continue: %v", err)
	}

	prompt := completionFake.lastPrompt()
	for _, fragment := range []string{testItinerary, "What's the weather?", firstAnswer, "And day 2?"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("follow-up prompt missing %q", fragment)
		}
	}
	// History order is the replay order.
	first := strings.Index(prompt, "What's the weather?")
	second := strings.Index(prompt, "And day 2?")
	if first < 0 || second < 0 || first > second {
		t.Error("prompt must replay messages in conversational order")
	}
}

func TestContinueCompletionFailureLeavesHistoryIntact(t *testing.T) {
	svc, completionFake := newTestChat()
	ctx := context.Background()

	id, _, err := svc.Start(ctx, testItinerary, "first")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	completionFake.err = errors.New("rate limited")
	if _, err := svc.Continue(ctx, id, "second"); err == nil {
		t.Fatal("expected completion failure to surface")
	}

	history, err := svc.History(ctx, id)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	// The failed exchange must not leave a dangling user message.
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
}
