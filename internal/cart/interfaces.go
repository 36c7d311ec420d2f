package cart

import (
	"context"

	"github.com/angelmondragon/greatkart/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindCart(ctx context.Context, cartID string) (*models.Cart, error)
	CreateCart(ctx context.Context, cartID string) (*models.Cart, error)
	FindItem(ctx context.Context, cartID string, productID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	IncrementItem(ctx context.Context, cartID string, productID uuid.UUID) (int64, error)
	DecrementItem(ctx context.Context, itemID uuid.UUID) (int64, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ListActiveItems(ctx context.Context, cartID string) ([]models.CartItem, error)
}
