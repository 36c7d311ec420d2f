package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/greatkart/pkg/db"
	"github.com/angelmondragon/greatkart/pkg/db/models"
	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type productStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
}

// Service exposes catalog reads used by the cart and the seed command.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	EnsureProduct(ctx context.Context, input CreateProductInput) (*models.Product, bool, error)
}

// CreateProductInput holds the fields needed to seed a product.
type CreateProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

type service struct {
	repo productStore
}

// NewService constructs a product service instance.
func NewService(repo productStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// GetByID returns the product or a NOT_FOUND error.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

// EnsureProduct creates the product unless one with the same slug exists.
// The boolean reports whether a row was inserted.
func (s *service) EnsureProduct(ctx context.Context, input CreateProductInput) (*models.Product, bool, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "name and slug are required")
	}
	if input.Price.IsNegative() {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Stock < 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}

	existing, err := s.repo.FindBySlug(ctx, slug)
	if err == nil {
		return existing, false, nil
	}
	if !db.IsNotFound(err) {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product by slug")
	}

	created, err := s.repo.Create(ctx, &models.Product{
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price.Round(2),
		Stock:       input.Stock,
		IsAvailable: true,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_slug") {
			return nil, false, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product slug already exists")
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, true, nil
}
