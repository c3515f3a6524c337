package order

import (
	"context"
	"time"

	"gridiron-be/internal/cart"
	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"
	"gridiron-be/internal/product"
	"gridiron-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	CreateOrderForUser(ctx context.Context, userID int64) (*Order, error)
	UpdateOrderStatusByOrderID(ctx context.Context, orderID int64, status string) error
	FetchAllOrders(ctx context.Context, page, size int) (*utils.PaginatedData, error)
	FetchOrdersForUser(ctx context.Context, userID int64, page, size int) (*utils.PaginatedData, error)
	FetchAllOrderItemsByOrderID(ctx context.Context, orderID int64, page, size int) (*utils.PaginatedData, error)
}

type service struct {
	repo     Repository
	carts    cart.Service
	products product.Service
	tx       db.Transactor
	events   *Events
	now      func() time.Time
}

func NewService(repo Repository, carts cart.Service, products product.Service, tx db.Transactor, events *Events) Service {
	return &service{
		repo:     repo,
		carts:    carts,
		products: products,
		tx:       tx,
		events:   events,
		now:      time.Now,
	}
}

// buildOrder snapshots each cart line at the product's current price.
func buildOrder(userID int64, items []cart.CartItem) *Order {
	o := &Order{
		UserID:     userID,
		Status:     StatusPending,
		TotalPrice: decimal.Zero,
		Items:      make([]OrderItem, 0, len(items)),
	}

	for _, ci := range items {
		productID := ci.Product.ID
		lineTotal := ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))

		o.Items = append(o.Items, OrderItem{
			ProductID:   &productID,
			ProductName: ci.Product.Name,
			UnitPrice:   ci.Product.Price,
			Quantity:    ci.Quantity,
			Price:       lineTotal,
		})
		o.TotalPrice = o.TotalPrice.Add(lineTotal)
	}

	return o
}

func stockAdjustments(items []OrderItem) []product.StockAdjustment {
	out := make([]product.StockAdjustment, 0, len(items))
	for _, it := range items {
		if it.ProductID == nil {
			continue
		}
		out = append(out, product.StockAdjustment{ProductID: *it.ProductID, Quantity: it.Quantity})
	}
	return out
}

// CreateOrderForUser turns the user's cart into a PENDING order. The order
// insert, cart clear and stock deduction commit or roll back together.
func (s *service) CreateOrderForUser(ctx context.Context, userID int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrderForUser"),
	)

	start := time.Now()

	var created *Order
	err := s.carts.WithCartLock(ctx, userID, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			c, items, err := s.carts.GetCheckoutItems(ctx, userID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return ErrCartEmpty
			}

			o := buildOrder(userID, items)
			// Line totals never exceed the order total, so one check covers both columns.
			if o.TotalPrice.GreaterThanOrEqual(product.MaxPrice) {
				return ErrOrderTotalTooLarge
			}
			if err := s.repo.Create(ctx, o); err != nil {
				return err
			}

			if err := s.carts.ClearCart(ctx, c.ID); err != nil {
				return err
			}

			if err := s.products.UpdateProductQuantityFromOrderItems(ctx, stockAdjustments(o.Items), true); err != nil {
				return err
			}

			created = o
			return nil
		})
	})
	if err != nil {
		log.Warn("failed to create order", zap.Error(err))
		return nil, err
	}

	s.events.OrderPlaced(ctx, created)

	log.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.String("total", created.TotalPrice.StringFixed(2)),
		zap.Int("items", len(created.Items)),
		zap.Duration("duration", time.Since(start)),
	)
	return created, nil
}

// UpdateOrderStatusByOrderID moves an order to status and stamps the matching
// timestamp the first time that status is reached. Cancelling puts every
// item's quantity back into stock.
func (s *service) UpdateOrderStatusByOrderID(ctx context.Context, orderID int64, status string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatusByOrderID"),
		zap.Int64("order_id", orderID),
	)

	next, err := ParseStatus(status)
	if err != nil {
		return err
	}

	var prev OrderStatus
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if o.Status == next {
			return alreadyInStatus(next)
		}

		prev = o.Status
		o.Status = next
		now := s.now()

		switch next {
		case StatusShipped:
			if o.ShippedAt == nil {
				o.ShippedAt = &now
			}
		case StatusDelivered:
			if o.DeliveredAt == nil {
				o.DeliveredAt = &now
			}
		case StatusCanceled:
			if o.CanceledAt == nil {
				o.CanceledAt = &now
			}

			items, err := s.repo.ListAllItems(ctx, orderID)
			if err != nil {
				return err
			}
			if err := s.products.UpdateProductQuantityFromOrderItems(ctx, stockAdjustments(items), false); err != nil {
				return err
			}
		}

		return s.repo.UpdateStatus(ctx, o)
	})
	if err != nil {
		log.Warn("failed to update order status", zap.String("status", status), zap.Error(err))
		return err
	}

	s.events.OrderStatusUpdated(ctx, orderID, prev, next)

	log.Info("order status updated",
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)
	return nil
}

func (s *service) FetchAllOrders(ctx context.Context, page, size int) (*utils.PaginatedData, error) {
	if err := utils.ValidatePage(page, size); err != nil {
		return nil, err
	}

	orders, err := s.repo.List(ctx, size, utils.Offset(page, size))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	data := utils.NewPaginatedData(total, size, len(orders), ToResponses(orders))
	return &data, nil
}

func (s *service) FetchOrdersForUser(ctx context.Context, userID int64, page, size int) (*utils.PaginatedData, error) {
	if err := utils.ValidatePage(page, size); err != nil {
		return nil, err
	}

	orders, err := s.repo.ListByUser(ctx, userID, size, utils.Offset(page, size))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := utils.NewPaginatedData(total, size, len(orders), ToResponses(orders))
	return &data, nil
}

func (s *service) FetchAllOrderItemsByOrderID(ctx context.Context, orderID int64, page, size int) (*utils.PaginatedData, error) {
	if err := utils.ValidatePage(page, size); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOrderNotFound
	}

	items, err := s.repo.ListItems(ctx, orderID, size, utils.Offset(page, size))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	data := utils.NewPaginatedData(total, size, len(items), ToItemResponses(items))
	return &data, nil
}
