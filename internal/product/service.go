package product

import (
	"context"
	"strings"
	"time"

	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"
	"gridiron-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error)
	FetchProducts(ctx context.Context, page, size int) (*utils.PaginatedData, error)
	FetchProduct(ctx context.Context, productID int64) (*ProductResponse, error)
	EditProduct(ctx context.Context, productID int64, req ProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, productID int64) error
	FindProduct(ctx context.Context, productID int64) (*Product, error)
	UpdateProductQuantityFromOrderItems(ctx context.Context, items []StockAdjustment, deduct bool) error
}

type service struct {
	repo Repository
	tx   db.Transactor
}

func NewService(repo Repository, tx db.Transactor) Service {
	return &service{repo: repo, tx: tx}
}

func normalize(req ProductRequest) (ProductRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	switch {
	case req.Name == "":
		return req, ErrNameRequired
	case req.Description == "":
		return req, ErrDescRequired
	case !req.Price.Valid:
		return req, ErrPriceRequired
	case req.Price.Decimal.IsNegative():
		return req, ErrNegativePrice
	case req.Price.Decimal.Round(2).GreaterThanOrEqual(MaxPrice):
		return req, ErrPriceTooLarge
	case req.AvailabilityQuantity < 0:
		return req, ErrNegativeStock
	case req.AvailabilityQuantity > MaxQuantity:
		return req, ErrStockTooLarge
	}
	req.Price.Decimal = req.Price.Decimal.Round(2)
	return req, nil
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	p := &Product{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price.Decimal,
		AvailabilityQuantity: req.AvailabilityQuantity,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Int64("product_id", p.ID))
	resp := ToResponse(*p)
	return &resp, nil
}

func (s *service) FetchProducts(ctx context.Context, page, size int) (*utils.PaginatedData, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FetchProducts"),
	)

	if err := utils.ValidatePage(page, size); err != nil {
		return nil, err
	}

	start := time.Now()

	products, err := s.repo.List(ctx, size, utils.Offset(page, size))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug("products fetched",
		zap.Int("page", page),
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	data := utils.NewPaginatedData(total, size, len(products), ToResponses(products))
	return &data, nil
}

func (s *service) FindProduct(ctx context.Context, productID int64) (*Product, error) {
	p, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) FetchProduct(ctx context.Context, productID int64) (*ProductResponse, error) {
	p, err := s.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(*p)
	return &resp, nil
}

func (s *service) EditProduct(ctx context.Context, productID int64, req ProductRequest) (*ProductResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "EditProduct"),
		zap.Int64("product_id", productID),
	)

	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	var updated Product
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.FindProduct(ctx, productID)
		if err != nil {
			return err
		}

		p.Name = req.Name
		p.Description = req.Description
		p.Price = req.Price.Decimal
		p.AvailabilityQuantity = req.AvailabilityQuantity

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = *p
		return nil
	})
	if err != nil {
		log.Warn("failed to edit product", zap.Error(err))
		return nil, err
	}

	resp := ToResponse(updated)
	return &resp, nil
}

// DeleteProduct drops every cart line that still points at the product
// before deleting the product itself.
func (s *service) DeleteProduct(ctx context.Context, productID int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.Int64("product_id", productID),
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.FindProduct(ctx, productID); err != nil {
			return err
		}
		if err := s.repo.DeleteCartItemsByProductID(ctx, productID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, productID)
	})
	if err != nil {
		log.Warn("failed to delete product", zap.Error(err))
		return err
	}

	log.Info("product deleted")
	return nil
}

// UpdateProductQuantityFromOrderItems moves stock for every item. A deduction
// is skipped for products already at zero stock.
func (s *service) UpdateProductQuantityFromOrderItems(ctx context.Context, items []StockAdjustment, deduct bool) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, it := range items {
			var err error
			if deduct {
				err = s.repo.DeductQuantity(ctx, it.ProductID, it.Quantity)
			} else {
				err = s.repo.RestoreQuantity(ctx, it.ProductID, it.Quantity)
			}
			if err != nil {
				logger.FromCtx(ctx).Error("failed to adjust stock",
					zap.Int64("product_id", it.ProductID),
					zap.Bool("deduct", deduct),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
}
