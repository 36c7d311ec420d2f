package cartdto

import "github.com/google/uuid"

// CartItem is one active cart line. Amounts are fixed two-decimal strings.
type CartItem struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSlug string    `json:"product_slug"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	SubTotal    string    `json:"sub_total"`
}

// Cart is the JSON view of the session cart.
type Cart struct {
	Items      []CartItem `json:"cart_items"`
	Quantity   int        `json:"quantity"`
	Total      string     `json:"total"`
	Tax        string     `json:"tax"`
	GrandTotal string     `json:"grand_total"`
	Currency   string     `json:"currency"`
}
