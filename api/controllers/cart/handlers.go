package cart

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/greatkart/api/responses"
	"github.com/angelmondragon/greatkart/api/validators"
	cartsvc "github.com/angelmondragon/greatkart/internal/cart"
	"github.com/angelmondragon/greatkart/pkg/logger"
)

// CartFetch returns the visitor's cart as JSON.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cartID, err := cartIDFromRequest(r, logg)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeSummary(ctx, svc, logg, w, cartID)
	}
}

// CartItemAdd adds one unit of the product and returns the updated cart.
func CartItemAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutate(svc, logg, func(ctx context.Context, cartID string, productID uuid.UUID) error {
		_, err := svc.AddProduct(ctx, cartID, productID)
		return err
	})
}

// CartItemDecrement removes one unit of the product and returns the updated cart.
func CartItemDecrement(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutate(svc, logg, func(ctx context.Context, cartID string, productID uuid.UUID) error {
		_, err := svc.RemoveOne(ctx, cartID, productID)
		return err
	})
}

// CartItemDelete drops the product's line and returns the updated cart.
func CartItemDelete(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return mutate(svc, logg, func(ctx context.Context, cartID string, productID uuid.UUID) error {
		return svc.RemoveItem(ctx, cartID, productID)
	})
}

type mutation func(ctx context.Context, cartID string, productID uuid.UUID) error

func mutate(svc cartsvc.Service, logg *logger.Logger, apply mutation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cartID, err := cartIDFromRequest(r, logg)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		productID, err := validators.ProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := apply(ctx, cartID, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeSummary(ctx, svc, logg, w, cartID)
	}
}

func writeSummary(ctx context.Context, svc cartsvc.Service, logg *logger.Logger, w http.ResponseWriter, cartID string) {
	summary, err := svc.Summary(ctx, cartID)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return
	}
	responses.WriteSuccess(w, newCart(summary))
}
