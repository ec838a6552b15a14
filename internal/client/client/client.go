package client

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// AuthAPI covers the /auth endpoints.
type AuthAPI interface {
	Register(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	// Refresh trades the refresh cookie for a new access token.
	Refresh(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// CatalogAPI covers products and posts.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, title, body string) (*models.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// CartAPI covers the server-side cart of the authenticated user.
type CartAPI interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, productID, quantity int) (*models.CartItem, error)
	UpdateCartItem(ctx context.Context, itemID, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, itemID int) error
	ClearCart(ctx context.Context) error
}

// Client is the whole storefront API surface.
type Client interface {
	AuthAPI
	CatalogAPI
	CartAPI
	Ping(ctx context.Context) error
	Close() error
}
