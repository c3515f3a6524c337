package cart

import (
	"context"
	"errors"

	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"
	"gridiron-be/internal/product"
	"gridiron-be/internal/redisx"
	"gridiron-be/internal/utils"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddItemToCart(ctx context.Context, userID int64, req AddToCartRequest) error
	DeleteItemFromCart(ctx context.Context, userID, cartItemID int64) error
	FetchProductInCartByCartID(ctx context.Context, userID int64, page, size int) (*utils.PaginatedData, error)
	GetCheckoutItems(ctx context.Context, userID int64) (*Cart, []CartItem, error)
	ClearCart(ctx context.Context, cartID int64) error
	WithCartLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
	tx          db.Transactor
	locker      redisx.Locker
}

func NewService(repo Repository, productRepo product.Repository, tx db.Transactor, locker redisx.Locker) Service {
	return &service{repo: repo, productRepo: productRepo, tx: tx, locker: locker}
}

// WithCartLock runs fn while holding the user's cart lock.
func (s *service) WithCartLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error {
	unlock, err := s.locker.Lock(ctx, redisx.CartLockKey(userID))
	if errors.Is(err, redisx.ErrLockNotAcquired) {
		return ErrCartBusy
	}
	if err != nil {
		return err
	}
	defer unlock()

	return fn(ctx)
}

// AddItemToCart adds quantity units of a product to the user's cart. A line
// for the same product is merged by summing quantities.
func (s *service) AddItemToCart(ctx context.Context, userID int64, req AddToCartRequest) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItemToCart"),
		zap.Int64("product_id", req.ProductID),
	)

	if req.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if req.Quantity > product.MaxQuantity {
		return ErrQuantityTooLarge
	}

	err := s.WithCartLock(ctx, userID, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			p, err := s.productRepo.FindByID(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return productNotFound(req.ProductID)
			}

			c, err := s.repo.FindByUserID(ctx, userID)
			if err != nil {
				return err
			}
			if c == nil {
				if c, err = s.repo.Create(ctx, userID); err != nil {
					return err
				}
			}

			existing, err := s.repo.GetItemByProduct(ctx, c.ID, req.ProductID)
			if err != nil {
				return err
			}

			if existing != nil {
				merged := existing.Quantity + req.Quantity
				if merged > product.MaxQuantity {
					return ErrQuantityTooLarge
				}
				err = s.repo.UpdateItemQuantity(ctx, existing.ID, merged)
			} else {
				_, err = s.repo.CreateItem(ctx, c.ID, req.ProductID, req.Quantity)
			}
			if err != nil {
				return err
			}

			return s.repo.Touch(ctx, c.ID)
		})
	})
	if err != nil {
		log.Warn("failed to add item to cart", zap.Error(err))
		return err
	}

	log.Info("item added to cart", zap.Int("quantity", req.Quantity))
	return nil
}

func (s *service) DeleteItemFromCart(ctx context.Context, userID, cartItemID int64) error {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCartNotFound
	}

	deleted, err := s.repo.DeleteItem(ctx, c.ID, cartItemID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete cart item",
			zap.Int64("cart_item_id", cartItemID),
			zap.Error(err),
		)
		return err
	}
	if !deleted {
		return itemNotFound(cartItemID)
	}

	return s.repo.Touch(ctx, c.ID)
}

func (s *service) FetchProductInCartByCartID(ctx context.Context, userID int64, page, size int) (*utils.PaginatedData, error) {
	if err := utils.ValidatePage(page, size); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	items, err := s.repo.ListItems(ctx, c.ID, size, utils.Offset(page, size))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	data := utils.NewPaginatedData(total, size, len(items), ToItemResponses(items))
	return &data, nil
}

// GetCheckoutItems returns the user's cart with all of its items, locking
// the referenced products when called inside a transaction.
func (s *service) GetCheckoutItems(ctx context.Context, userID int64) (*Cart, []CartItem, error) {
	c, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if c == nil {
		return nil, nil, ErrCartNotFound
	}

	items, err := s.repo.ListItemsForCheckout(ctx, c.ID)
	if err != nil {
		return nil, nil, err
	}
	return c, items, nil
}

func (s *service) ClearCart(ctx context.Context, cartID int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.ClearItems(ctx, cartID); err != nil {
			return err
		}
		return s.repo.Touch(ctx, cartID)
	})
}
