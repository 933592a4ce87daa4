// Package session is the process-wide session context: auth token, role,
// and language preference behind explicit read/write accessors. It is
// injected into the components that need it instead of being read from
// ambient global state.
package session

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Store is a small key-value store for session values.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Session keys. Names match the browser client's local storage keys so a
// session exported from one side reads on the other.
const (
	keyToken    = "accessToken"
	keyRole     = "userRole"
	keyEmail    = "userEmail"
	keyAuth     = "isAuthenticated"
	keyLanguage = "language"
)

// Supported UI languages; the first is the fallback.
var supported = []language.Tag{
	language.English,
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Session wraps a Store with typed accessors.
type Session struct {
	mu    sync.Mutex
	store Store
}

// New creates a Session over the given store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the stored access token, or "" when logged out.
func (s *Session) Token() string { return s.get(keyToken) }

// Role returns the stored user role.
func (s *Session) Role() string { return s.get(keyRole) }

// Email returns the stored user email.
func (s *Session) Email() string { return s.get(keyEmail) }

// Authenticated reports whether a login has been stored.
func (s *Session) Authenticated() bool { return s.get(keyAuth) == "true" }

// SetLogin stores a successful login.
func (s *Session) SetLogin(token, role, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range map[string]string{
		keyToken: token,
		keyRole:  role,
		keyEmail: email,
		keyAuth:  "true",
	} {
		if err := s.store.Set(k, v); err != nil {
			return fmt.Errorf("store %s: %w", k, err)
		}
	}
	return nil
}

// Clear removes the stored login. The language preference survives.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range []string{keyToken, keyRole, keyEmail, keyAuth} {
		if err := s.store.Delete(k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

// Language returns the stored language preference matched against the
// supported set; unstored or unparseable preferences fall back to English.
func (s *Session) Language() language.Tag {
	pref := s.get(keyLanguage)
	if pref == "" {
		return supported[0]
	}
	desired, err := language.Parse(pref)
	if err != nil {
		return supported[0]
	}
	tag, _, _ := matcher.Match(desired)
	// Matcher may return a refined tag (e.g. ar-u-rg-...); collapse to base.
	base, _ := tag.Base()
	matched, err := language.Parse(base.String())
	if err != nil {
		return supported[0]
	}
	return matched
}

// SetLanguage stores a language preference.
func (s *Session) SetLanguage(pref string) error {
	if _, err := language.Parse(pref); err != nil {
		return fmt.Errorf("parse language %q: %w", pref, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(keyLanguage, pref)
}

func (s *Session) get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.store.Get(key)
	if err != nil || !ok {
		return ""
	}
	return v
}

// Memory is an in-memory Store, the default for library use.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: map[string]string{}}
}

// Get implements Store.
func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set implements Store.
func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Delete implements Store.
func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
