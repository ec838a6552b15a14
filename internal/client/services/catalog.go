package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// CatalogService browses and edits products and posts.
type CatalogService interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int) (*models.Product, error)
	AddProduct(ctx context.Context, p models.NewProduct) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	Posts(ctx context.Context) ([]models.Post, error)
	AddPost(ctx context.Context, title, body string) (*models.Post, error)
	DeletePost(ctx context.Context, id int) error
}

type catalogService struct {
	client client.CatalogAPI
}

func NewCatalogService(client client.CatalogAPI) CatalogService {
	return &catalogService{client: client}
}

func (s *catalogService) Products(ctx context.Context) ([]models.Product, error) {
	return s.client.ListProducts(ctx)
}

// Product looks a product up in the catalog listing. The API has no single
// product endpoint.
func (s *catalogService) Product(ctx context.Context, id int) (*models.Product, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %d: %w", id, common.ErrorNotFound)
}

func validateProduct(p models.NewProduct) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", common.ErrorInvalidInput)
	case strings.TrimSpace(p.Description) == "":
		return fmt.Errorf("%w: description is required", common.ErrorInvalidInput)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", common.ErrorInvalidInput)
	case p.Discount < 0 || p.Discount > 100:
		return fmt.Errorf("%w: discount must be between 0 and 100", common.ErrorInvalidInput)
	}
	return nil
}

func (s *catalogService) AddProduct(ctx context.Context, p models.NewProduct) (*models.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.client.CreateProduct(ctx, p)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int) error {
	return s.client.DeleteProduct(ctx, id)
}

func (s *catalogService) Posts(ctx context.Context) ([]models.Post, error) {
	return s.client.ListPosts(ctx)
}

func (s *catalogService) AddPost(ctx context.Context, title, body string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorInvalidInput)
	}
	return s.client.CreatePost(ctx, title, body)
}

func (s *catalogService) DeletePost(ctx context.Context, id int) error {
	return s.client.DeletePost(ctx, id)
}
