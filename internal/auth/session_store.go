package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clubhouse/internal/model"
	"clubhouse/internal/repository"
)

// SessionTTL is how long a session lives without activity. Each resolved
// request slides the expiry forward by this much.
const SessionTTL = 30 * 24 * time.Hour

// ErrNoSession is returned when a sid does not resolve to a live session.
var ErrNoSession = errors.New("no such session")

// sessionState is the serialized authentication state kept in the sess
// column.
type sessionState struct {
	UserID uint `json:"user_id"`
}

// SessionStore manages the lifecycle of server-side sessions.
type SessionStore interface {
	// Establish creates a session bound to userID and returns its opaque id.
	Establish(ctx context.Context, userID uint) (string, error)
	// Resolve maps a sid to the authenticated user id. Expired sessions are
	// removed on lookup; live ones get their expiry slid forward.
	Resolve(ctx context.Context, sid string) (uint, error)
	// Destroy removes a session. Destroying a missing sid is not an error.
	Destroy(ctx context.Context, sid string) error
}

type dbSessionStore struct {
	sessions repository.SessionRepository
}

// NewSessionStore builds a store backed by the session table.
func NewSessionStore(sessions repository.SessionRepository) SessionStore {
	return &dbSessionStore{sessions: sessions}
}

func (s *dbSessionStore) Establish(ctx context.Context, userID uint) (string, error) {
	state, err := json.Marshal(sessionState{UserID: userID})
	if err != nil {
		return "", fmt.Errorf("encode session state: %w", err)
	}

	session := &model.Session{
		SID:    uuid.NewString(),
		Sess:   string(state),
		Expire: time.Now().Add(SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return session.SID, nil
}

func (s *dbSessionStore) Resolve(ctx context.Context, sid string) (uint, error) {
	session, err := s.sessions.Find(ctx, sid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("load session: %w", err)
	}

	if !session.Expire.After(time.Now()) {
		_ = s.sessions.Delete(ctx, sid)
		return 0, ErrNoSession
	}

	var state sessionState
	if err := json.Unmarshal([]byte(session.Sess), &state); err != nil {
		return 0, fmt.Errorf("decode session state: %w", err)
	}

	// Sliding expiry. A failed touch only means the session expires sooner.
	_ = s.sessions.Touch(ctx, sid, time.Now().Add(SessionTTL))

	return state.UserID, nil
}

func (s *dbSessionStore) Destroy(ctx context.Context, sid string) error {
	return s.sessions.Delete(ctx, sid)
}
