package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/cart"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
)

// CartService manages the local shopping cart and its hand-off to the
// server-side cart of the logged-in user.
type CartService interface {
	Add(ctx context.Context, product models.Product, quantity int) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, productID, quantity int) error
	Remove(ctx context.Context, productID int) error
	Clear(ctx context.Context) error
	Items(ctx context.Context) ([]models.CartLine, error)
	Count(ctx context.Context) (int, error)
	Total(ctx context.Context) (float64, error)

	Open()
	Close()
	Toggle() bool
	IsOpen() bool

	// Push uploads the local lines to the server cart. Each line is
	// removed locally once the server accepted it.
	Push(ctx context.Context) (int, error)
	Remote(ctx context.Context) (*models.Cart, error)
}

type cartService struct {
	client client.CartAPI
	db     *sql.DB

	mu   sync.Mutex
	open bool
}

func NewCartService(client client.CartAPI, db *sql.DB) CartService {
	return &cartService{client: client, db: db}
}

func (s *cartService) repo(tx dbx.DBTX) cart.Repository {
	if tx == nil {
		return cart.NewSQLiteRepository(s.db)
	}
	return cart.NewSQLiteRepository(tx)
}

// Add puts quantity units of product in the cart. A non-positive quantity
// counts as one. A product already in the cart keeps its position, gets
// the quantities summed and its snapshot refreshed.
func (s *cartService) Add(ctx context.Context, product models.Product, quantity int) (*models.CartLine, error) {
	if quantity <= 0 {
		quantity = 1
	}

	var line models.CartLine
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		line = models.CartLine{Product: product, Quantity: quantity}

		existing, err := r.Get(ctx, product.ID)
		switch {
		case errors.Is(err, common.ErrorNotFound):
		case err != nil:
			return err
		default:
			line.Quantity += existing.Quantity
		}
		return r.Upsert(ctx, line)
	})
	if err != nil {
		return nil, fmt.Errorf("add product %d to cart: %w", product.ID, err)
	}
	return &line, nil
}

// UpdateQuantity sets the quantity of a line; below one the line is removed.
func (s *cartService) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, productID)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		line, err := r.Get(ctx, productID)
		if err != nil {
			return err
		}
		line.Quantity = quantity
		return r.Upsert(ctx, *line)
	})
}

func (s *cartService) Remove(ctx context.Context, productID int) error {
	return s.repo(nil).Delete(ctx, productID)
}

func (s *cartService) Clear(ctx context.Context) error {
	return s.repo(nil).Clear(ctx)
}

func (s *cartService) Items(ctx context.Context) ([]models.CartLine, error) {
	return s.repo(nil).List(ctx)
}

// Count is the number of units in the cart.
func (s *cartService) Count(ctx context.Context) (int, error) {
	lines, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n, nil
}

// Total sums the discounted subtotals.
func (s *cartService) Total(ctx context.Context) (float64, error) {
	lines, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total, nil
}

func (s *cartService) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

func (s *cartService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

func (s *cartService) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

func (s *cartService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Push returns how many lines reached the server. On an error the lines not
// yet pushed stay in the local cart.
func (s *cartService) Push(ctx context.Context) (int, error) {
	lines, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}

	pushed := 0
	for _, l := range lines {
		if _, err := s.client.AddCartItem(ctx, l.Product.ID, l.Quantity); err != nil {
			return pushed, err
		}
		if err := s.repo(nil).Delete(ctx, l.Product.ID); err != nil {
			return pushed, fmt.Errorf("drop pushed line %d: %w", l.Product.ID, err)
		}
		pushed++
	}
	return pushed, nil
}

func (s *cartService) Remote(ctx context.Context) (*models.Cart, error) {
	return s.client.GetCart(ctx)
}
