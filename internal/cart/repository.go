package cart

import (
	"context"
	"database/sql"

	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID int64) (*Cart, error)
	Create(ctx context.Context, userID int64) (*Cart, error)
	Touch(ctx context.Context, cartID int64) error
	GetItemByProduct(ctx context.Context, cartID, productID int64) (*CartItem, error)
	CreateItem(ctx context.Context, cartID, productID int64, quantity int) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID int64) (bool, error)
	ListItems(ctx context.Context, cartID int64, limit, offset int) ([]CartItem, error)
	CountItems(ctx context.Context, cartID int64) (int64, error)
	ListItemsForCheckout(ctx context.Context, cartID int64) ([]CartItem, error)
	ClearItems(ctx context.Context, cartID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// FindByUserID returns nil, nil when the user has no cart yet.
func (r *repository) FindByUserID(ctx context.Context, userID int64) (*Cart, error) {
	var c Cart
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create returns the user's cart, inserting it if it does not exist.
func (r *repository) Create(ctx context.Context, userID int64) (*Cart, error) {
	var c Cart
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Touch(ctx context.Context, cartID int64) error {
	_, err := db.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)
	return err
}

func (r *repository) GetItemByProduct(ctx context.Context, cartID, productID int64) (*CartItem, error) {
	item := &CartItem{}
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.Product.ID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) CreateItem(ctx context.Context, cartID, productID int64, quantity int) (*CartItem, error) {
	item := &CartItem{CartID: cartID, Quantity: quantity}
	item.Product.ID = productID

	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, cartID, productID, quantity).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	_, err := db.Conn(ctx, r.db).ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, itemID)
	return err
}

// DeleteItem reports whether an item with that id existed in the cart.
func (r *repository) DeleteItem(ctx context.Context, cartID, itemID int64) (bool, error) {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const itemWithProductColumns = `
	ci.id, ci.cart_id, ci.quantity, ci.created_at, ci.updated_at,
	p.id, p.name, p.description, p.price, p.availability_quantity, p.created_at, p.updated_at`

func scanItems(rows *sql.Rows) ([]CartItem, error) {
	items := []CartItem{}
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(
			&it.ID, &it.CartID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
			&it.Product.ID, &it.Product.Name, &it.Product.Description, &it.Product.Price,
			&it.Product.AvailabilityQuantity, &it.Product.CreatedAt, &it.Product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) ListItems(ctx context.Context, cartID int64, limit, offset int) ([]CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCartItems"),
		zap.Int64("cart_id", cartID),
	)

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+itemWithProductColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC, ci.id DESC
		LIMIT $2 OFFSET $3
	`, cartID, limit, offset)
	if err != nil {
		log.Error("db: failed to query cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *repository) CountItems(ctx context.Context, cartID int64) (int64, error) {
	var total int64
	err := db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cartID,
	).Scan(&total)
	return total, err
}

// ListItemsForCheckout reads every item of the cart and locks the referenced
// product rows until the surrounding transaction ends.
func (r *repository) ListItemsForCheckout(ctx context.Context, cartID int64) ([]CartItem, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, `
		SELECT `+itemWithProductColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
		FOR UPDATE OF p
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *repository) ClearItems(ctx context.Context, cartID int64) error {
	_, err := db.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
