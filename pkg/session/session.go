package session

import "context"

// Session is the per-visitor key/value bag. It is owned by a single request.
type Session struct {
	key      string
	values   map[string]string
	isNew    bool
	modified bool
}

func (s *Session) Key() string {
	return s.key
}

func (s *Session) Get(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

func (s *Session) Set(name, value string) {
	if s.values == nil {
		s.values = map[string]string{}
	}
	if cur, ok := s.values[name]; ok && cur == value {
		return
	}
	s.values[name] = value
	s.modified = true
}

// IsNew reports whether the session was minted during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

func (s *Session) Modified() bool {
	return s.modified
}

type ctxKey struct{}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request session, or nil when the session middleware did not run.
func FromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return nil
}
