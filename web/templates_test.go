package web

import (
	"bytes"
	"testing"

	"github.com/angelmondragon/greatkart/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTemplateRendersItems(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	id := uuid.New()
	data := map[string]any{
		"cart_items": []models.CartItem{{
			Quantity: 2,
			IsActive: true,
			Product:  models.Product{ID: id, Name: "Denim <Jacket>", Slug: "denim-jacket", Price: decimal.RequireFromString("25.5")},
		}},
		"total":       decimal.RequireFromString("51"),
		"quantity":    2,
		"tax":         decimal.RequireFromString("1.02"),
		"grand_total": decimal.RequireFromString("52.02"),
		"currency":    "USD",
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, CartTemplate, data))
	out := buf.String()

	assert.Contains(t, out, "Denim &lt;Jacket&gt;")
	assert.Contains(t, out, "/cart/add_cart/"+id.String()+"/")
	assert.Contains(t, out, "/cart/remove_cart/"+id.String()+"/")
	assert.Contains(t, out, "/cart/remove_cart_item/"+id.String()+"/")
	assert.Contains(t, out, `<var class="price">51.00</var>`)
	assert.Contains(t, out, `<dd id="cart-grand-total">52.02 USD</dd>`)
}

func TestCartTemplateEmpty(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	data := map[string]any{
		"is_empty":    true,
		"cart_items":  []models.CartItem{},
		"total":       decimal.Zero,
		"quantity":    0,
		"tax":         decimal.Zero,
		"grand_total": decimal.Zero,
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, CartTemplate, data))
	assert.Contains(t, buf.String(), "Your shopping cart is empty")
	assert.Contains(t, buf.String(), `<dd id="cart-total">0.00</dd>`)
}
