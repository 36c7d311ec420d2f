package cart

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdto "github.com/angelmondragon/greatkart/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/greatkart/internal/cart"
	"github.com/angelmondragon/greatkart/pkg/config"
	"github.com/angelmondragon/greatkart/pkg/db/models"
	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	redisclient "github.com/angelmondragon/greatkart/pkg/redis"
	"github.com/angelmondragon/greatkart/pkg/session"
	"github.com/angelmondragon/greatkart/web"
)

type nopStore struct{}

func (nopStore) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (nopStore) Get(context.Context, string) (string, error) {
	return "", redisclient.ErrNil
}

func (nopStore) Del(context.Context, ...string) error {
	return nil
}

func (nopStore) SessionKey(key string) string {
	return key
}

type stubCartService struct {
	summary  *cartsvc.Summary
	err      error
	calls    []string
	cartIDs  []string
	products []uuid.UUID
}

func (s *stubCartService) track(op, cartID string, productID uuid.UUID) {
	s.calls = append(s.calls, op)
	s.cartIDs = append(s.cartIDs, cartID)
	s.products = append(s.products, productID)
}

func (s *stubCartService) AddProduct(_ context.Context, cartID string, productID uuid.UUID) (*models.CartItem, error) {
	s.track("add", cartID, productID)
	return &models.CartItem{}, s.err
}

func (s *stubCartService) RemoveOne(_ context.Context, cartID string, productID uuid.UUID) (*models.CartItem, error) {
	s.track("remove_one", cartID, productID)
	return nil, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, cartID string, productID uuid.UUID) error {
	s.track("remove_item", cartID, productID)
	return s.err
}

func (s *stubCartService) Summary(_ context.Context, cartID string) (*cartsvc.Summary, error) {
	s.cartIDs = append(s.cartIDs, cartID)
	if s.summary != nil {
		return s.summary, nil
	}
	return cartsvc.Summarize(cartID, nil, decimal.NewFromInt(2), "USD"), nil
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	manager, err := session.NewManager(nopStore{}, config.SessionConfig{TTL: time.Hour})
	require.NoError(t, err)
	sess, err := manager.Load(context.Background(), "")
	require.NoError(t, err)
	return sess
}

func request(t *testing.T, method, path string, productID string, sess *session.Session) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rc := chi.NewRouteContext()
	if productID != "" {
		rc.URLParams.Add("productId", productID)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rc)
	if sess != nil {
		ctx = session.WithSession(ctx, sess)
	}
	return req.WithContext(ctx)
}

func TestAddCartRedirectsAndStoresCartID(t *testing.T) {
	svc := &stubCartService{}
	sess := newSession(t)
	productID := uuid.New()

	rec := httptest.NewRecorder()
	AddCart(svc, nil)(rec, request(t, http.MethodGet, "/cart/add_cart/x/", productID.String(), sess))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, CartPath, rec.Header().Get("Location"))
	assert.Equal(t, []string{"add"}, svc.calls)
	assert.Equal(t, sess.Key(), svc.cartIDs[0])
	assert.Equal(t, productID, svc.products[0])

	stored, ok := sess.Get(cartsvc.SessionCartKey)
	assert.True(t, ok)
	assert.Equal(t, sess.Key(), stored)
}

func TestAddCartUnknownProductIs404(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	rec := httptest.NewRecorder()
	AddCart(svc, nil)(rec, request(t, http.MethodPost, "/cart/add_cart/x/", uuid.NewString(), newSession(t)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "product not found")
}

func TestMalformedProductIDIs404WithoutServiceCall(t *testing.T) {
	svc := &stubCartService{}

	for name, handler := range map[string]http.HandlerFunc{
		"add":         AddCart(svc, nil),
		"remove":      RemoveCart(svc, nil),
		"remove item": RemoveCartItem(svc, nil),
	} {
		rec := httptest.NewRecorder()
		handler(rec, request(t, http.MethodGet, "/cart/x/", "17", newSession(t)))
		assert.Equal(t, http.StatusNotFound, rec.Code, name)
	}
	assert.Empty(t, svc.calls)
}

func TestRemoveHandlersRedirect(t *testing.T) {
	svc := &stubCartService{}
	productID := uuid.NewString()

	rec := httptest.NewRecorder()
	RemoveCart(svc, nil)(rec, request(t, http.MethodGet, "/cart/remove_cart/x/", productID, newSession(t)))
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = httptest.NewRecorder()
	RemoveCartItem(svc, nil)(rec, request(t, http.MethodGet, "/cart/remove_cart_item/x/", productID, newSession(t)))
	assert.Equal(t, http.StatusFound, rec.Code)

	assert.Equal(t, []string{"remove_one", "remove_item"}, svc.calls)
}

func TestRemoveMissingItemIs404(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}

	rec := httptest.NewRecorder()
	RemoveCart(svc, nil)(rec, request(t, http.MethodGet, "/cart/remove_cart/x/", uuid.NewString(), newSession(t)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlersRequireSession(t *testing.T) {
	rec := httptest.NewRecorder()
	AddCart(&stubCartService{}, nil)(rec, request(t, http.MethodGet, "/cart/add_cart/x/", uuid.NewString(), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCartPageRendersTotals(t *testing.T) {
	tmpl, err := web.Templates()
	require.NoError(t, err)

	items := []models.CartItem{{
		Quantity: 2,
		IsActive: true,
		Product:  models.Product{ID: uuid.New(), Name: "Shirt", Slug: "shirt", Price: decimal.RequireFromString("10.00")},
	}}
	svc := &stubCartService{summary: cartsvc.Summarize("c", items, decimal.NewFromInt(2), "USD")}

	rec := httptest.NewRecorder()
	CartPage(svc, tmpl, nil)(rec, request(t, http.MethodGet, "/cart/", "", newSession(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<dd id="cart-total">20.00</dd>`)
	assert.Contains(t, body, `<dd id="cart-tax">0.40</dd>`)
	assert.Contains(t, body, `<dd id="cart-grand-total">20.40 USD</dd>`)
	assert.Contains(t, body, `<dd id="cart-quantity">2</dd>`)
}

func TestCartPageEmptyCart(t *testing.T) {
	tmpl, err := web.Templates()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	CartPage(&stubCartService{}, tmpl, nil)(rec, request(t, http.MethodGet, "/cart/", "", newSession(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your shopping cart is empty")
	assert.Contains(t, rec.Body.String(), `<dd id="cart-grand-total">0.00 USD</dd>`)
}

func TestPageContextFlagsEmptyCart(t *testing.T) {
	empty := pageContext(cartsvc.Summarize("c", nil, decimal.NewFromInt(2), "USD"))
	assert.Equal(t, true, empty["is_empty"])

	items := []models.CartItem{{Quantity: 1, IsActive: true, Product: models.Product{Price: decimal.NewFromInt(4)}}}
	full := pageContext(cartsvc.Summarize("c", items, decimal.NewFromInt(2), "USD"))
	assert.Equal(t, false, full["is_empty"])
	assert.Equal(t, 1, full["quantity"])
}

func TestCartPageTemplateFailure(t *testing.T) {
	broken := template.Must(template.New("other").Parse("x"))

	rec := httptest.NewRecorder()
	CartPage(&stubCartService{}, broken, nil)(rec, request(t, http.MethodGet, "/cart/", "", newSession(t)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCartFetchJSON(t *testing.T) {
	items := []models.CartItem{{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Quantity:  3,
		IsActive:  true,
		Product:   models.Product{Name: "Cap", Slug: "cap", Price: decimal.RequireFromString("5")},
	}}
	svc := &stubCartService{summary: cartsvc.Summarize("c", items, decimal.NewFromInt(2), "USD")}

	rec := httptest.NewRecorder()
	CartFetch(svc, nil)(rec, request(t, http.MethodGet, "/api/v1/cart", "", newSession(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data cartdto.Cart `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, 3, envelope.Data.Quantity)
	assert.Equal(t, "15.00", envelope.Data.Total)
	assert.Equal(t, "0.30", envelope.Data.Tax)
	assert.Equal(t, "15.30", envelope.Data.GrandTotal)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "5.00", envelope.Data.Items[0].UnitPrice)
	assert.Equal(t, "15.00", envelope.Data.Items[0].SubTotal)
}

func TestCartMutationsJSON(t *testing.T) {
	svc := &stubCartService{}
	productID := uuid.NewString()

	for _, h := range []http.HandlerFunc{
		CartItemAdd(svc, nil),
		CartItemDecrement(svc, nil),
		CartItemDelete(svc, nil),
	} {
		rec := httptest.NewRecorder()
		h(rec, request(t, http.MethodPost, "/api/v1/cart/items/x", productID, newSession(t)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
	}
	assert.Equal(t, []string{"add", "remove_one", "remove_item"}, svc.calls)
}

func TestCartMutationJSONNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")}

	rec := httptest.NewRecorder()
	CartItemDelete(svc, nil)(rec, request(t, http.MethodDelete, "/api/v1/cart/items/x", uuid.NewString(), newSession(t)))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}
