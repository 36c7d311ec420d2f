package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/angelmondragon/greatkart/pkg/config"
	redisclient "github.com/angelmondragon/greatkart/pkg/redis"
)

const sessionKeyBytes = 32

var sessionKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]{43}$`)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type sessionKeyer interface {
	SessionKey(sessionKey string) string
}

// Store is the surface of the Redis client the manager depends on.
type Store interface {
	sessionStore
	sessionKeyer
}

// Manager loads and persists visitor sessions in Redis.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewManager constructs a session manager backed by Redis.
func NewManager(store Store, cfg config.SessionConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, keyer: store, ttl: cfg.TTL}, nil
}

var _ Store = (*redisclient.Client)(nil)

// TTL reports how long an idle session survives.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load returns the session stored under key. A blank, malformed or expired key
// yields a fresh session with a newly minted key.
func (m *Manager) Load(ctx context.Context, key string) (*Session, error) {
	key = strings.TrimSpace(key)
	if !sessionKeyRe.MatchString(key) {
		return m.fresh()
	}

	raw, err := m.store.Get(ctx, m.keyer.SessionKey(key))
	if err != nil {
		if errors.Is(err, redisclient.ErrNil) {
			return m.fresh()
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return m.fresh()
	}
	return &Session{key: key, values: values}, nil
}

// Save persists the session when it is new or was modified during the request.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if s == nil || (!s.isNew && !s.modified) {
		return nil
	}
	payload, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(s.key), string(payload), m.ttl); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	s.isNew = false
	s.modified = false
	return nil
}

func (m *Manager) fresh() (*Session, error) {
	key, err := NewKey()
	if err != nil {
		return nil, err
	}
	return &Session{key: key, values: map[string]string{}, isNew: true}, nil
}

// NewKey mints an unguessable session key.
func NewKey() (string, error) {
	buf := make([]byte, sessionKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
