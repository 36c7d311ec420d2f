package cart

import (
	"context"
	"time"

	"github.com/angelmondragon/greatkart/internal/repo"
	"github.com/angelmondragon/greatkart/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists carts and their line items.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{Base: r.Bind(tx)}
}

func (r *Repository) FindCart(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB(ctx).Where("cart_id = ?", cartID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *Repository) CreateCart(ctx context.Context, cartID string) (*models.Cart, error) {
	cart := &models.Cart{CartID: cartID}
	if err := r.DB(ctx).Omit(clause.Associations).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// FindItem loads the line for (cart, product) with its product.
func (r *Repository) FindItem(ctx context.Context, cartID string, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB(ctx).
		Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.DB(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// IncrementItem adds one unit to the (cart, product) line in a single UPDATE.
// It returns the number of rows touched; zero means the line does not exist.
func (r *Repository) IncrementItem(ctx context.Context, cartID string, productID uuid.UUID) (int64, error) {
	res := r.DB(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", 1),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// DecrementItem removes one unit while the line holds more than one. Zero rows
// touched means the line is at quantity 1 (or gone) and must be deleted instead.
func (r *Repository) DecrementItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	res := r.DB(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND quantity > ?", itemID, 1).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", 1),
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.DB(ctx).Where("id = ?", itemID).Delete(&models.CartItem{}).Error
}

// ListActiveItems returns the active lines of the cart, oldest first.
func (r *Repository) ListActiveItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB(ctx).
		Preload("Product").
		Where("cart_id = ? AND is_active = ?", cartID, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
