package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (c *HTTPClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, "Error fetching products")
	}

	products := make([]models.Product, 0)
	if err := resp.decode(&products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error) {
	if p.Images == nil {
		p.Images = []string{}
	}
	resp, err := c.do(ctx, http.MethodPost, "/products", p)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, "Error creating product")
	}

	var out models.Product
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp, "Error deleting product")
	}
	return nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	resp, err := c.do(ctx, http.MethodGet, "/posts", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, "Error fetching posts")
	}

	posts := make([]models.Post, 0)
	if err := resp.decode(&posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, title, body string) (*models.Post, error) {
	resp, err := c.do(ctx, http.MethodPost, "/posts", models.Post{Title: title, Body: body})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, "Error creating post")
	}

	var out models.Post
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id int) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp, "Error deleting post")
	}
	return nil
}
