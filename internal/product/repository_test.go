package product

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productRowColumns = []string{"id", "name", "description", "price", "availability_quantity", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(sqlDB), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	p := &Product{Name: "Ball", Description: "Leather", Price: decimal.RequireFromString("19.99"), AvailabilityQuantity: 4}

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Ball", "Leather", sqlmock.AnyArg(), 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(11), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM products WHERE id = \$1`).
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows(productRowColumns).AddRow(11, "Ball", "Leather", "19.99", 4, now, now))

		p, err := repo.FindByID(context.Background(), 11)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.True(t, decimal.RequireFromString("19.99").Equal(p.Price))
		assert.Equal(t, 4, p.AvailabilityQuantity)
	})

	t.Run("Missing", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM products WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(productRowColumns))

		p, err := repo.FindByID(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestRepository_ListAndCount(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`ORDER BY created_at DESC, id DESC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(2, "New", "d", "1.00", 1, now, now).
			AddRow(1, "Old", "d", "2.00", 1, now.Add(-time.Hour), now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	products, err := repo.List(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "New", products[0].Name)

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	t.Run("Missing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE products`).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

		err := repo.Update(context.Background(), &Product{ID: 5})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 5))
	})

	t.Run("Nothing deleted", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrProductNotFound)
	})
}

func TestRepository_StockAdjustments(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM cart_items WHERE product_id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`availability_quantity - \$1.*WHERE id = \$2 AND availability_quantity <> 0`).
		WithArgs(2, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`availability_quantity \+ \$1`).
		WithArgs(2, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	assert.NoError(t, repo.DeleteCartItemsByProductID(ctx, 3))
	assert.NoError(t, repo.DeductQuantity(ctx, 3, 2))
	assert.NoError(t, repo.RestoreQuantity(ctx, 3, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
