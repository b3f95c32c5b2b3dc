// README: Chat service: per-session serialized Q&A grounded in an itinerary.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripwise/internal/ai"
)

// Service answers questions about a previously generated itinerary. Each
// session processes questions strictly in submission order; distinct
// sessions proceed in parallel.
type Service struct {
	store Store
	ai    ai.CompletionProvider
	log   *zap.Logger

	callTimeout time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(store Store, completions ai.CompletionProvider, log *zap.Logger) *Service {
	return &Service{
		store:       store,
		ai:          completions,
		log:         log,
		callTimeout: 60 * time.Second,
		locks:       make(map[string]*sync.Mutex),
	}
}

// Start creates a new session grounded in itinerary, answers the first
// question, and returns the fresh session ID with the answer. IDs are never
// reused.
func (s *Service) Start(ctx context.Context, itinerary, question string) (string, string, error) {
	id := uuid.NewString()

	answer, err := s.complete(ctx, startPrompt(itinerary, question))
	if err != nil {
		return "", "", fmt.Errorf("chat completion: %w", err)
	}

	now := time.Now()
	sess := &Session{
		ID:        id,
		Itinerary: itinerary,
		Messages: []Message{
			{Role: RoleUser, Content: question},
			{Role: RoleAssistant, Content: answer},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return "", "", fmt.Errorf("store session: %w", err)
	}

	s.log.Info("chat session started", zap.String("session_id", id))
	return id, answer, nil
}

// Continue answers a follow-up question in an existing session. The prompt
// replays the itinerary plus the full history; the exchange is appended
// atomically under the session lock.
func (s *Service) Continue(ctx context.Context, sessionID, question string) (string, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	answer, err := s.complete(ctx, continuePrompt(sess.Itinerary, sess.Messages, question))
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	err = s.store.AppendMessages(ctx, sessionID,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer},
	)
	if err != nil {
		return "", fmt.Errorf("append messages: %w", err)
	}
	return answer, nil
}

// History returns the session transcript in conversational order.
func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Messages, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.ai.Complete(cctx, prompt)
}

// sessionLock returns the mutex serializing one session's exchanges,
// creating it on first use. Locks live as long as the process, matching the
// in-memory session lifetime.
func (s *Service) sessionLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
