package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/angelmondragon/greatkart/pkg/config"
	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/angelmondragon/greatkart/pkg/logger"
	"github.com/angelmondragon/greatkart/pkg/session"
)

const loggedKeyPrefixLen = 8

type sessionManager interface {
	Load(ctx context.Context, key string) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	TTL() time.Duration
}

// Session loads the visitor session from its cookie and attaches it to the
// request context. Changes are persisted, and the cookie issued, right before
// the response header is written.
func Session(manager sessionManager, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var key string
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				key = cookie.Value
			}

			sess, err := manager.Load(ctx, key)
			if err != nil {
				writeError(ctx, logg, w, r, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unavailable"))
				return
			}

			if logg != nil {
				ctx = logg.WithSessionKey(ctx, shortKey(sess.Key()))
			}
			ctx = session.WithSession(ctx, sess)

			sw := &sessionWriter{ResponseWriter: w}
			sw.commit = func() {
				if !sess.IsNew() && !sess.Modified() {
					return
				}
				if err := manager.Save(ctx, sess); err != nil {
					if logg != nil {
						logg.Error(ctx, "session.save_failed", err)
					}
					return
				}
				http.SetCookie(w, sessionCookie(cfg, sess.Key(), manager.TTL()))
			}

			next.ServeHTTP(sw, r.WithContext(ctx))
			sw.flush()
		})
	}
}

func sessionCookie(cfg config.SessionConfig, key string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    key,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl).UTC(),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func shortKey(key string) string {
	if len(key) <= loggedKeyPrefixLen {
		return key
	}
	return key[:loggedKeyPrefixLen]
}

// sessionWriter runs commit once, before the first byte of the response.
type sessionWriter struct {
	http.ResponseWriter
	commit func()
	once   sync.Once
}

func (w *sessionWriter) flush() {
	w.once.Do(w.commit)
}

func (w *sessionWriter) WriteHeader(code int) {
	w.flush()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
