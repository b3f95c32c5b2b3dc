// README: Session store backed by PostgreSQL (messages as jsonb).
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists sessions in the chat_sessions table:
//
//	CREATE TABLE IF NOT EXISTS chat_sessions (
//	    id         TEXT PRIMARY KEY,
//	    itinerary  TEXT NOT NULL,
//	    messages   JSONB NOT NULL DEFAULT '[]'::jsonb,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	)
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, sess *Session) error {
	msgs, err := json.Marshal(sess.Messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO chat_sessions (id, itinerary, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		sess.ID, sess.Itinerary, msgs, sess.CreatedAt, sess.UpdatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, itinerary, messages, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1`, id,
	)

	var sess Session
	var msgs []byte
	err := row.Scan(&sess.ID, &sess.Itinerary, &msgs, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(msgs, &sess.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return &sess, nil
}

func (s *PGStore) AppendMessages(ctx context.Context, id string, msgs ...Message) error {
	encoded, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE chat_sessions
		SET messages = messages || $2::jsonb, updated_at = now()
		WHERE id = $1`, id, encoded,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}
