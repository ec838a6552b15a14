package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectLine = `SELECT product_id, name, description, price, discount, images, quantity FROM cart_items`

type scanner interface {
	Scan(dest ...any) error
}

func scanLine(s scanner) (*models.CartLine, error) {
	var (
		line   models.CartLine
		images string
	)
	err := s.Scan(&line.Product.ID, &line.Product.Name, &line.Product.Description,
		&line.Product.Price, &line.Product.Discount, &images, &line.Quantity)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(images), &line.Product.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images of product %d: %w", line.Product.ID, err)
	}
	return &line, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, productID int) (*models.CartLine, error) {
	line, err := scanLine(r.db.QueryRowContext(ctx, selectLine+` WHERE product_id = ?`, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart line %d: %w", productID, err)
	}
	return line, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, line models.CartLine) error {
	if line.Quantity < 1 {
		return common.ErrorInvalidQuantity
	}

	images := line.Product.Images
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	p := line.Product
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_items (product_id, name, description, price, discount, images, quantity, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM cart_items))
		ON CONFLICT(product_id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			discount = excluded.discount,
			images = excluded.images,
			quantity = excluded.quantity
	`, p.ID, p.Name, p.Description, p.Price, p.Discount, string(encoded), line.Quantity)
	if err != nil {
		return fmt.Errorf("failed to upsert cart line %d: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, productID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE product_id = ?`, productID); err != nil {
		return fmt.Errorf("failed to delete cart line %d: %w", productID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.CartLine, error) {
	rows, err := r.db.QueryContext(ctx, selectLine+` ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	result := make([]models.CartLine, 0)
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		result = append(result, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
