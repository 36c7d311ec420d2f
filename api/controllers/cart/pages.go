package cart

import (
	"net/http"

	"github.com/angelmondragon/greatkart/api/responses"
	"github.com/angelmondragon/greatkart/api/validators"
	cartsvc "github.com/angelmondragon/greatkart/internal/cart"
	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/angelmondragon/greatkart/pkg/logger"
	"github.com/angelmondragon/greatkart/web"
)

// CartPath is where every cart mutation redirects.
const CartPath = "/cart/"

// AddCart puts one unit of the product in the visitor's cart.
func AddCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cartID, err := cartIDFromRequest(r, logg)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		productID, err := validators.ProductID(r)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		if _, err := svc.AddProduct(ctx, cartID, productID); err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		responses.Redirect(w, r, CartPath)
	}
}

// RemoveCart takes one unit of the product out of the visitor's cart.
func RemoveCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cartID, err := cartIDFromRequest(r, logg)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		productID, err := validators.ProductID(r)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		if _, err := svc.RemoveOne(ctx, cartID, productID); err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		responses.Redirect(w, r, CartPath)
	}
}

// RemoveCartItem drops the product's line from the visitor's cart.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cartID, err := cartIDFromRequest(r, logg)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		productID, err := validators.ProductID(r)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		if err := svc.RemoveItem(ctx, cartID, productID); err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		responses.Redirect(w, r, CartPath)
	}
}

// CartPage renders the cart with its totals. Visitors without a cart see an
// empty page with zero totals.
func CartPage(svc cartsvc.Service, renderer responses.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cartID, err := cartIDFromRequest(r, logg)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		if renderer == nil {
			responses.WriteHTMLError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "templates unavailable"))
			return
		}
		summary, err := svc.Summary(ctx, cartID)
		if err != nil {
			responses.WriteHTMLError(ctx, logg, w, err)
			return
		}
		responses.WriteHTML(ctx, logg, w, renderer, web.CartTemplate, pageContext(summary))
	}
}
