package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE cart_items (
  product_id  INTEGER PRIMARY KEY,
  name        TEXT    NOT NULL,
  description TEXT    NOT NULL DEFAULT '',
  price       REAL    NOT NULL,
  discount    REAL    NOT NULL DEFAULT 0,
  images      TEXT    NOT NULL DEFAULT '[]',
  quantity    INTEGER NOT NULL CHECK (quantity > 0),
  position    INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func line(id, qty int) models.CartLine {
	return models.CartLine{
		Product:  models.Product{ID: id, Name: "p", Price: 10, Images: []string{"a.png"}},
		Quantity: qty,
	}
}

func TestUpsertAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, line(7, 2)))

	got, err := r.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, []string{"a.png"}, got.Product.Images)
}

func TestGet_Missing_ReturnsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), 1)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpsert_KeepsPositionOnUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, line(1, 1)))
	require.NoError(t, r.Upsert(ctx, line(2, 1)))
	updated := line(1, 5)
	updated.Product.Name = "renamed"
	require.NoError(t, r.Upsert(ctx, updated))

	lines, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Product.ID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "renamed", lines[0].Product.Name)
	assert.Equal(t, 2, lines[1].Product.ID)
}

func TestUpsert_RejectsNonPositiveQuantity(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	require.ErrorIs(t, r.Upsert(context.Background(), line(1, 0)), common.ErrorInvalidQuantity)
}

func TestUpsert_NilImagesStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	l := line(3, 1)
	l.Product.Images = nil
	require.NoError(t, r.Upsert(ctx, l))

	got, err := r.Get(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, got.Product.Images)
}

func TestDeleteAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, line(1, 1)))
	require.NoError(t, r.Upsert(ctx, line(2, 1)))

	require.NoError(t, r.Delete(ctx, 1))
	require.NoError(t, r.Delete(ctx, 1), "second delete is a no-op")

	lines, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	require.NoError(t, r.Clear(ctx))
	lines, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestList_DBErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT product_id`).WillReturnError(errors.New("locked"))

	_, err = NewSQLiteRepository(db).List(context.Background())
	require.ErrorContains(t, err, "failed to list cart lines")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CorruptImagesWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"product_id", "name", "description", "price", "discount", "images", "quantity"}).
		AddRow(4, "p", "", 1.0, 0.0, "not json", 1)
	mock.ExpectQuery(`SELECT product_id`).WithArgs(4).WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).Get(context.Background(), 4)
	require.ErrorContains(t, err, "failed to get cart line 4")
}

func TestClear_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	require.ErrorContains(t, r.Clear(context.Background()), "failed to clear cart")
}
