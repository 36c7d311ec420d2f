package cart

import (
	cartdto "github.com/angelmondragon/greatkart/api/controllers/cart/dto"
	cartsvc "github.com/angelmondragon/greatkart/internal/cart"
)

func newCart(summary *cartsvc.Summary) cartdto.Cart {
	items := make([]cartdto.CartItem, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, cartdto.CartItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			ProductSlug: item.Product.Slug,
			UnitPrice:   item.Product.Price.StringFixed(2),
			Quantity:    item.Quantity,
			SubTotal:    item.SubTotal().StringFixed(2),
		})
	}
	return cartdto.Cart{
		Items:      items,
		Quantity:   summary.Quantity,
		Total:      summary.Total.StringFixed(2),
		Tax:        summary.Tax.StringFixed(2),
		GrandTotal: summary.GrandTotal.StringFixed(2),
		Currency:   summary.Currency,
	}
}

// pageContext is the data handed to store/cart.html.
func pageContext(summary *cartsvc.Summary) map[string]any {
	return map[string]any{
		"is_empty":    summary.IsEmpty(),
		"cart_items":  summary.Items,
		"total":       summary.Total,
		"quantity":    summary.Quantity,
		"tax":         summary.Tax,
		"grand_total": summary.GrandTotal,
		"currency":    summary.Currency,
	}
}
