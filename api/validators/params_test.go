package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithParam(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/cart/add_cart/x/", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add(ProductIDParam, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestProductID(t *testing.T) {
	want := uuid.New()

	got, err := ProductID(requestWithParam(want.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, raw := range []string{"", "42", "not-a-uuid"} {
		_, err := ProductID(requestWithParam(raw))
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "raw %q: %v", raw, err)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abc  ", 0))
	assert.Equal(t, "ab", SanitizeString("abc", 2))
}
