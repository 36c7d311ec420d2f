package cart

import (
	"github.com/angelmondragon/greatkart/pkg/db/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary is the cart page view: active lines and their totals. Amounts keep
// full precision; rounding happens when they are displayed.
type Summary struct {
	CartID     string
	Items      []models.CartItem
	Quantity   int
	Total      decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
	Currency   string
}

// IsEmpty reports whether the cart holds no active lines.
func (s *Summary) IsEmpty() bool {
	return s == nil || len(s.Items) == 0
}

// Summarize totals the active items with tax applied at taxRatePercent.
func Summarize(cartID string, items []models.CartItem, taxRatePercent decimal.Decimal, currency string) *Summary {
	total := decimal.Zero
	quantity := 0
	active := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		active = append(active, item)
		total = total.Add(item.SubTotal())
		quantity += item.Quantity
	}
	tax := total.Mul(taxRatePercent).Div(hundred)
	return &Summary{
		CartID:     cartID,
		Items:      active,
		Quantity:   quantity,
		Total:      total,
		Tax:        tax,
		GrandTotal: total.Add(tax),
		Currency:   currency,
	}
}
