// Package cart persists the lines of the client-side shopping cart.
package cart

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Repository stores one line per product. Lines keep the order in which
// their product was first added.
type Repository interface {
	// Get returns the line for productID or common.ErrorNotFound.
	Get(ctx context.Context, productID int) (*models.CartLine, error)

	// Upsert inserts the line or replaces the product snapshot and quantity
	// of an existing one without changing its position.
	Upsert(ctx context.Context, line models.CartLine) error

	// Delete removes the line; deleting a missing line is not an error.
	Delete(ctx context.Context, productID int) error

	// List returns all lines in insertion order.
	List(ctx context.Context) ([]models.CartLine, error)

	// Clear removes every line.
	Clear(ctx context.Context) error
}
