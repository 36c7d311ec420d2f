package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/greatkart/pkg/config"
	"github.com/angelmondragon/greatkart/pkg/db"
	"github.com/angelmondragon/greatkart/pkg/db/models"
	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/angelmondragon/greatkart/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OperationAdd        = "add"
	OperationRemoveOne  = "remove_one"
	OperationRemoveItem = "remove_item"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type mutationRecorder interface {
	IncMutation(operation, outcome string)
}

// Service exposes the session cart operations.
type Service interface {
	AddProduct(ctx context.Context, cartID string, productID uuid.UUID) (*models.CartItem, error)
	RemoveOne(ctx context.Context, cartID string, productID uuid.UUID) (*models.CartItem, error)
	RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) error
	Summary(ctx context.Context, cartID string) (*Summary, error)
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
	recorder mutationRecorder
	taxRate  decimal.Decimal
	currency string
}

// NewService builds a cart service backed by the provided stack. A nil
// recorder disables mutation metrics.
func NewService(repo CartRepository, tx txRunner, products productLoader, cfg config.CartConfig, recorder mutationRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if cfg.TaxRatePercent.IsNegative() {
		return nil, fmt.Errorf("tax rate must be non-negative")
	}
	if recorder == nil {
		recorder = metrics.NewCartMetrics(nil)
	}
	return &service{
		repo:     repo,
		tx:       tx,
		products: products,
		recorder: recorder,
		taxRate:  cfg.TaxRatePercent,
		currency: cfg.Currency,
	}, nil
}

// AddProduct puts one unit of the product in the cart, creating the cart and
// the line on first use.
func (s *service) AddProduct(ctx context.Context, cartID string, productID uuid.UUID) (item *models.CartItem, err error) {
	defer func() { s.record(OperationAdd, err) }()

	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	item, err = s.addOnce(ctx, cartID, productID)
	if err != nil && db.IsUniqueViolation(err, "") {
		// a concurrent first add won the insert; the retry takes the update path
		item, err = s.addOnce(ctx, cartID, productID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add product to cart")
	}
	return item, nil
}

func (s *service) addOnce(ctx context.Context, cartID string, productID uuid.UUID) (*models.CartItem, error) {
	var item *models.CartItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindCart(ctx, cartID); err != nil {
			if !db.IsNotFound(err) {
				return err
			}
			if _, err := repo.CreateCart(ctx, cartID); err != nil {
				return err
			}
		}

		updated, err := repo.IncrementItem(ctx, cartID, productID)
		if err != nil {
			return err
		}
		if updated == 0 {
			if _, err := repo.CreateItem(ctx, &models.CartItem{
				CartID:    cartID,
				ProductID: productID,
				Quantity:  1,
				IsActive:  true,
			}); err != nil {
				return err
			}
		}

		item, err = repo.FindItem(ctx, cartID, productID)
		return err
	})
	return item, err
}

// RemoveOne takes one unit of the product out of the cart. The line is deleted
// when its last unit goes; the returned item is nil in that case.
func (s *service) RemoveOne(ctx context.Context, cartID string, productID uuid.UUID) (item *models.CartItem, err error) {
	defer func() { s.record(OperationRemoveOne, err) }()

	if err := validateCartID(cartID); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := s.loadItem(ctx, repo, cartID, productID)
		if err != nil {
			return err
		}

		updated, err := repo.DecrementItem(ctx, current.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement cart item")
		}
		if updated == 0 {
			if err := repo.DeleteItem(ctx, current.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
			}
			item = nil
			return nil
		}

		item, err = repo.FindItem(ctx, cartID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart item")
		}
		return nil
	})
	if err != nil {
		return nil, asCoded(err, "remove one from cart")
	}
	return item, nil
}

// RemoveItem deletes the product's line from the cart whatever its quantity.
func (s *service) RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (err error) {
	defer func() { s.record(OperationRemoveItem, err) }()

	if err := validateCartID(cartID); err != nil {
		return err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := s.loadItem(ctx, repo, cartID, productID)
		if err != nil {
			return err
		}
		if err := repo.DeleteItem(ctx, current.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
		}
		return nil
	})
	if err != nil {
		return asCoded(err, "remove item from cart")
	}
	return nil
}

// Summary totals the cart's active lines. A visitor without a cart gets an
// empty summary.
func (s *service) Summary(ctx context.Context, cartID string) (*Summary, error) {
	if strings.TrimSpace(cartID) == "" {
		return Summarize(cartID, nil, s.taxRate, s.currency), nil
	}
	if _, err := s.repo.FindCart(ctx, cartID); err != nil {
		if db.IsNotFound(err) {
			return Summarize(cartID, nil, s.taxRate, s.currency), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	items, err := s.repo.ListActiveItems(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return Summarize(cartID, items, s.taxRate, s.currency), nil
}

func (s *service) loadItem(ctx context.Context, repo CartRepository, cartID string, productID uuid.UUID) (*models.CartItem, error) {
	if _, err := repo.FindCart(ctx, cartID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	item, err := repo.FindItem(ctx, cartID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	return item, nil
}

func (s *service) record(operation string, err error) {
	switch {
	case err == nil:
		s.recorder.IncMutation(operation, metrics.OutcomeOK)
	case pkgerrors.IsCode(err, pkgerrors.CodeNotFound):
		s.recorder.IncMutation(operation, metrics.OutcomeNotFound)
	default:
		s.recorder.IncMutation(operation, metrics.OutcomeError)
	}
}

func validateCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	return nil
}

func asCoded(err error, message string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
