// Package credstore persists the dashboard's credential pair: a bearer
// token and the principal snapshot it was granted to. At most one pair is
// held at a time, and a load never observes one half without the other.
package credstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/clinops/wardview/internal/principal"
)

// Storage keys, one per half of the persisted credential.
const (
	tokenKey     = "wardview.auth.token"
	principalKey = "wardview.auth.principal"
)

// PersistedCredential is the durable {token, principal snapshot} pair.
// Written only on successful login, cleared on logout or corruption.
type PersistedCredential struct {
	Token     string
	Principal principal.Principal
}

// Store persists at most one credential pair through a Medium.
type Store struct {
	mu     sync.Mutex
	medium Medium
}

// New creates a credential store over the given medium.
func New(medium Medium) *Store {
	return &Store{medium: medium}
}

// Save writes both halves of the credential as one logical unit. The
// principal snapshot lands before the token, so a concurrent Load never
// observes a token without its matching principal.
func (s *Store) Save(token string, p principal.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode principal snapshot: %w", err)
	}

	if err := s.medium.Set(principalKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist principal snapshot: %w", err)
	}

	if err := s.medium.Set(tokenKey, token); err != nil {
		// roll back the half-written pair
		if delErr := s.medium.Delete(principalKey); delErr != nil {
			log.Warn().Err(delErr).Msg("failed to roll back principal snapshot")
		}
		return fmt.Errorf("failed to persist token: %w", err)
	}

	log.Debug().Str("principal", p.ID).Msg("credential persisted")

	return nil
}

// Load returns the persisted credential, or nil when none is present. A
// record missing either half, or one that cannot be decoded, is treated as
// absent: it is logged and eagerly cleared so future loads take the cheap
// path, never surfaced as an error.
func (s *Store) Load() (*PersistedCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.medium.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	if !ok || token == "" {
		return nil, nil
	}

	raw, ok, err := s.medium.Get(principalKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read principal snapshot: %w", err)
	}
	if !ok || raw == "" {
		log.Warn().Msg("credential missing principal snapshot, clearing")
		s.clearLocked()
		return nil, nil
	}

	var p principal.Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Warn().Err(err).Msg("corrupt principal snapshot, clearing credential")
		s.clearLocked()
		return nil, nil
	}

	return &PersistedCredential{Token: token, Principal: p}, nil
}

// Clear removes both halves of the credential. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *Store) clearLocked() error {
	if err := s.medium.Delete(tokenKey); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := s.medium.Delete(principalKey); err != nil {
		return fmt.Errorf("failed to clear principal snapshot: %w", err)
	}
	return nil
}
