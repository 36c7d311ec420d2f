package cart

import (
	"strings"

	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
)

// SessionCartKey is the session entry holding the visitor's cart identifier.
const SessionCartKey = "cart_id"

type sessionValues interface {
	Key() string
	Get(name string) (string, bool)
	Set(name, value string)
}

// ResolveCartID returns the cart identifier stored in the session. When none is
// stored yet the session key becomes the identifier and is written back.
func ResolveCartID(sess sessionValues) (string, error) {
	if sess == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session unavailable")
	}
	if id, ok := sess.Get(SessionCartKey); ok && strings.TrimSpace(id) != "" {
		return id, nil
	}
	id := sess.Key()
	if strings.TrimSpace(id) == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session key unavailable")
	}
	sess.Set(SessionCartKey, id)
	return id, nil
}
