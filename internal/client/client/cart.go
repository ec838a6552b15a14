package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (c *HTTPClient) GetCart(ctx context.Context) (*models.Cart, error) {
	resp, err := c.do(ctx, http.MethodGet, "/cart", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, "Error fetching cart")
	}

	var out models.Cart
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []models.CartItem{}
	}
	return &out, nil
}

// AddCartItem adds quantity units of the product; the server sums the
// quantity into an existing line.
func (c *HTTPClient) AddCartItem(ctx context.Context, productID, quantity int) (*models.CartItem, error) {
	in := struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}{productID, quantity}

	resp, err := c.do(ctx, http.MethodPost, "/cart/items", in)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, "Error adding to cart")
	}

	var out models.CartItem
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, itemID, quantity int) (*models.CartItem, error) {
	in := struct {
		Quantity int `json:"quantity"`
	}{quantity}

	resp, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/cart/items/%d", itemID), in)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, "Error updating cart item")
	}

	var out models.CartItem
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCartItem(ctx context.Context, itemID int) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", itemID), nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp, "Error removing from cart")
	}
	return nil
}

func (c *HTTPClient) ClearCart(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodDelete, "/cart", nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp, "Error clearing cart")
	}
	return nil
}
