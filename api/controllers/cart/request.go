package cart

import (
	"context"
	"net/http"

	cartsvc "github.com/angelmondragon/greatkart/internal/cart"
	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/angelmondragon/greatkart/pkg/logger"
	"github.com/angelmondragon/greatkart/pkg/session"
)

// cartIDFromRequest resolves the visitor's cart identifier and tags the
// request logger with it.
func cartIDFromRequest(r *http.Request, logg *logger.Logger) (context.Context, string, error) {
	ctx := r.Context()
	sess := session.FromContext(ctx)
	if sess == nil {
		return ctx, "", pkgerrors.New(pkgerrors.CodeInternal, "session middleware not installed")
	}
	cartID, err := cartsvc.ResolveCartID(sess)
	if err != nil {
		return ctx, "", err
	}
	if logg != nil {
		ctx = logg.WithCartID(ctx, shortID(cartID))
	}
	return ctx, cartID, nil
}

// Cart ids are session keys; only a prefix reaches the logs.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
