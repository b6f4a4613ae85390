package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fragmede/shopauth/internal/api"
	"github.com/fragmede/shopauth/internal/cache"
)

// Store is the persistent key/value slot the session lives in. *cache.DB
// satisfies it.
type Store interface {
	GetSessionValue(key string) (string, error)
	PutSessionValue(key, value string) error
	DeleteSessionValue(key string) error
}

// ProfileCache caches profiles by token subject. *cache.DB satisfies it.
type ProfileCache interface {
	GetProfile(subject string, ttl time.Duration) (*api.Profile, bool, error)
	PutProfile(subject string, p *api.Profile) error
	DeleteProfile(subject string) error
}

// ProfileFetcher loads the profile a token belongs to. *api.Client satisfies it.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, token string) (*api.Profile, error)
}

// Session manages the client-side authentication state.
type Session struct {
	mu            sync.Mutex
	store         Store
	token         string
	claims        Claims
	profile       *api.Profile
	authenticated bool
	now           func() time.Time
}

// NewSession creates a session backed by store.
func NewSession(store Store) *Session {
	return &Session{store: store, now: time.Now}
}

// Set persists token, overwriting any previous one. The session only counts
// as authenticated once a profile is attached with Authenticate.
func (s *Session) Set(token string) error {
	if err := s.store.PutSessionValue(cache.KeyToken, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	claims, err := ParseClaims(token)
	if err != nil {
		log.Printf("session: token is not a readable JWT: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	s.profile = nil
	s.authenticated = false
	return nil
}

// Load restores the stored token. Returns false if there is none or it has
// expired; an expired token is removed from the store.
func (s *Session) Load() bool {
	token, err := s.store.GetSessionValue(cache.KeyToken)
	if err != nil || token == "" {
		return false
	}

	claims, _ := ParseClaims(token)
	if claims.Expired(s.now()) {
		// Stale session, clear it.
		if err := s.store.DeleteSessionValue(cache.KeyToken); err != nil {
			log.Printf("session: removing expired token: %v", err)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	return true
}

// Authenticate marks the session as logged in as p.
func (s *Session) Authenticate(p *api.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.authenticated = p != nil
}

// Unauthenticate drops the logged-in state but keeps the stored token.
func (s *Session) Unauthenticate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.authenticated = false
}

// Clear logs out: the stored token is deleted.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.claims = Claims{}
	s.profile = nil
	s.authenticated = false
	s.mu.Unlock()

	return s.store.DeleteSessionValue(cache.KeyToken)
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) Claims() Claims {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claims
}

func (s *Session) Profile() *api.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Username is the name shown for the logged-in user.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.profile != nil && s.profile.Email != "":
		return s.profile.Email
	case s.claims.Subject != "":
		return s.claims.Subject
	}
	return ""
}

// FetchProfile returns the profile for the current token, consulting the
// cache first. A cached copy is also used when the backend is unreachable,
// but never when the backend rejects the token.
func (s *Session) FetchProfile(ctx context.Context, fetcher ProfileFetcher, pc ProfileCache, ttl time.Duration) (*api.Profile, error) {
	return s.fetchProfile(ctx, fetcher, pc, ttl, false)
}

// RefreshProfile is FetchProfile without the fresh-cache shortcut: the
// backend is always asked, and the result replaces the cached copy.
func (s *Session) RefreshProfile(ctx context.Context, fetcher ProfileFetcher, pc ProfileCache, ttl time.Duration) (*api.Profile, error) {
	return s.fetchProfile(ctx, fetcher, pc, ttl, true)
}

func (s *Session) fetchProfile(ctx context.Context, fetcher ProfileFetcher, pc ProfileCache, ttl time.Duration, force bool) (*api.Profile, error) {
	token := s.Token()
	if token == "" {
		return nil, errors.New("not logged in")
	}
	subject := s.Claims().Subject

	var cached *api.Profile
	if subject != "" && pc != nil {
		p, fresh, err := pc.GetProfile(subject, ttl)
		if err == nil && fresh && p != nil && !force {
			return p, nil
		}
		cached = p
	}

	p, err := fetcher.GetProfile(ctx, token)
	if err != nil {
		var remote *api.RemoteError
		if cached != nil && !errors.As(err, &remote) {
			return cached, nil
		}
		return nil, err
	}
	s.CacheProfile(pc, p)
	return p, nil
}

// CacheProfile stores p under the current token subject.
func (s *Session) CacheProfile(pc ProfileCache, p *api.Profile) {
	subject := s.Claims().Subject
	if subject == "" || pc == nil || p == nil {
		return
	}
	if err := pc.PutProfile(subject, p); err != nil {
		log.Printf("session: caching profile: %v", err)
	}
}
