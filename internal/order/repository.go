package order

import (
	"context"
	"database/sql"

	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByIDForUpdate(ctx context.Context, orderID int64) (*Order, error)
	Exists(ctx context.Context, orderID int64) (bool, error)
	UpdateStatus(ctx context.Context, o *Order) error
	List(ctx context.Context, limit, offset int) ([]Order, error)
	Count(ctx context.Context) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Order, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	ListItems(ctx context.Context, orderID int64, limit, offset int) ([]OrderItem, error)
	CountItems(ctx context.Context, orderID int64) (int64, error)
	ListAllItems(ctx context.Context, orderID int64) ([]OrderItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts the order and its items. Call it inside a transaction.
func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Int64("user_id", o.UserID),
	)
	conn := db.Conn(ctx, r.db)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, o.UserID, o.TotalPrice, string(o.Status),
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("db: failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err := conn.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`, o.ID, it.ProductID, it.ProductName, it.UnitPrice, it.Quantity, it.Price,
		).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			log.Error("db: failed to insert order item", zap.Error(err))
			return err
		}
	}

	o.NumberOfItems = len(o.Items)
	return nil
}

const orderColumns = `
	o.id, o.user_id, o.total_price, o.status, o.created_at, o.updated_at,
	o.shipped_at, o.delivered_at, o.canceled_at,
	(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = o.id)`

func scanOrder(row interface{ Scan(...any) error }, o *Order) error {
	var status string
	err := row.Scan(
		&o.ID, &o.UserID, &o.TotalPrice, &status, &o.CreatedAt, &o.UpdatedAt,
		&o.ShippedAt, &o.DeliveredAt, &o.CanceledAt, &o.NumberOfItems,
	)
	o.Status = OrderStatus(status)
	return err
}

// FindByIDForUpdate locks the order row until the surrounding transaction
// ends. It returns nil, nil when the order does not exist.
func (r *repository) FindByIDForUpdate(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := scanOrder(db.Conn(ctx, r.db).QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.id = $1
		FOR UPDATE OF o
	`, orderID), &o)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Exists(ctx context.Context, orderID int64) (bool, error) {
	var exists bool
	err := db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, orderID,
	).Scan(&exists)
	return exists, err
}

func (r *repository) UpdateStatus(ctx context.Context, o *Order) error {
	return db.Conn(ctx, r.db).QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, shipped_at = $2, delivered_at = $3, canceled_at = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, string(o.Status), o.ShippedAt, o.DeliveredAt, o.CanceledAt, o.ID,
	).Scan(&o.UpdatedAt)
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := db.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	return total, err
}

func (r *repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

func (r *repository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID,
	).Scan(&total)
	return total, err
}

const itemColumns = `id, order_id, product_id, product_name, unit_price, quantity, price, created_at, updated_at`

func (r *repository) queryItems(ctx context.Context, query string, args ...any) ([]OrderItem, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		var productID sql.NullInt64
		if err := rows.Scan(
			&it.ID, &it.OrderID, &productID, &it.ProductName,
			&it.UnitPrice, &it.Quantity, &it.Price, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if productID.Valid {
			id := productID.Int64
			it.ProductID = &id
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) ListItems(ctx context.Context, orderID int64, limit, offset int) ([]OrderItem, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, orderID, limit, offset)
}

func (r *repository) CountItems(ctx context.Context, orderID int64) (int64, error) {
	var total int64
	err := db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, orderID,
	).Scan(&total)
	return total, err
}

func (r *repository) ListAllItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
}
