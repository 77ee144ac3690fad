package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ayizan-labs/mythos/backend/internal/model/user"
	"github.com/ayizan-labs/mythos/backend/internal/storage"
)

const storageKey = "mythos_user"

var (
	ErrEmailRequired = errors.New("email is required")
	ErrNameRequired  = errors.New("name is required")
	ErrNotLoggedIn   = errors.New("no active session")
)

// Service owns the single persisted login session. Login replaces whatever
// session existed before; there is never more than one.
type Service struct {
	storage *storage.Store
}

func NewService(st *storage.Store) *Service {
	return &Service{storage: st}
}

// Login records a new active session. No verification is performed; this is
// a local-only identity.
func (s *Service) Login(ctx context.Context, email, name string) (user.Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" {
		return user.Session{}, ErrEmailRequired
	}
	if name == "" {
		return user.Session{}, ErrNameRequired
	}

	session := user.Session{
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return user.Session{}, err
	}
	if err := s.storage.Set(ctx, storageKey, raw); err != nil {
		return user.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// Current returns the active session, or ErrNotLoggedIn. A corrupted
// persisted value is discarded and treated as logged out.
func (s *Service) Current(ctx context.Context) (user.Session, error) {
	raw, err := s.storage.Get(ctx, storageKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return user.Session{}, ErrNotLoggedIn
		}
		return user.Session{}, err
	}

	var session user.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		log.Printf("[auth] discarding corrupted persisted session: %v", err)
		if err := s.storage.Delete(ctx, storageKey); err != nil {
			log.Printf("[auth] failed to remove corrupted session: %v", err)
		}
		return user.Session{}, ErrNotLoggedIn
	}
	return session, nil
}

// Logout removes the persisted session. Logging out twice is harmless.
func (s *Service) Logout(ctx context.Context) error {
	return s.storage.Delete(ctx, storageKey)
}
