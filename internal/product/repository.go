package product

import (
	"context"
	"database/sql"

	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	DeleteCartItemsByProductID(ctx context.Context, productID int64) error
	DeductQuantity(ctx context.Context, productID int64, quantity int) error
	RestoreQuantity(ctx context.Context, productID int64, quantity int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, availability_quantity, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.AvailabilityQuantity, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, availability_quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.Price, p.AvailabilityQuantity,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// FindByID returns nil, nil when the product does not exist.
func (r *repository) FindByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := scanProduct(db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	), &p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		log.Error("db: failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			log.Error("db: failed to scan product", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total)
	return total, err
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, availability_quantity = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, p.Name, p.Description, p.Price, p.AvailabilityQuantity, p.ID,
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrProductNotFound
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) DeleteCartItemsByProductID(ctx context.Context, productID int64) error {
	_, err := db.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM cart_items WHERE product_id = $1`, productID)
	return err
}

// DeductQuantity leaves a product whose stock is already zero untouched.
func (r *repository) DeductQuantity(ctx context.Context, productID int64, quantity int) error {
	_, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE products
		SET availability_quantity = availability_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND availability_quantity <> 0
	`, quantity, productID)
	return err
}

func (r *repository) RestoreQuantity(ctx context.Context, productID int64, quantity int) error {
	_, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE products
		SET availability_quantity = availability_quantity + $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, productID)
	return err
}
