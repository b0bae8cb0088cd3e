package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/permataindah/storefront-backend/internal/products"
	"github.com/permataindah/storefront-backend/pkg/db"
	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
	"github.com/permataindah/storefront-backend/pkg/pagination"
)

// Service defines the behavior needed by the orders controller.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*models.Order, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error)
	ListAll(ctx context.Context, filter ListFilter) (*ListResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	db   *db.Client
	repo *Repository
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{
		db:   params.DB,
		repo: NewRepository(params.DB.DB()),
	}, nil
}

// PlaceOrder runs checkout atomically: every submitted line must resolve to a
// product with enough stock, or nothing is written.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*models.Order, error) {
	// The contact phone is checked before any product lookup so a bad
	// address never costs a database round trip.
	if err := req.Address.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}

	orderID := uuid.New()
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		productRepo := products.NewRepository(tx)
		orderRepo := s.repo.WithTx(tx)

		total := 0
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound,
						fmt.Sprintf("product %s not found", line.ProductID))
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}

			ok, err := productRepo.DecrementStock(ctx, product.ID, line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict,
					fmt.Sprintf("insufficient stock for %s", product.Name)).
					WithDetails(map[string]any{
						"productId": product.ID,
						"requested": line.Quantity,
						"available": product.Stock,
					})
			}

			subtotal := product.Price * line.Quantity
			total += subtotal
			items = append(items, models.OrderItem{
				ID:        uuid.New(),
				OrderID:   orderID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
				Subtotal:  subtotal,
			})
		}

		order := &models.Order{
			ID:      orderID,
			UserID:  userID,
			Total:   total,
			Status:  enums.OrderStatusPending,
			Address: req.Address,
			Phone:   req.Address.Phone,
			Notes:   req.Notes,
			Items:   items,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
	}
	return order, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *service) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if !isAdmin && order.UserID != requesterID {
		// Hidden rather than forbidden so order IDs are not probeable.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListAll(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	orders, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		// Cursor parse failures come back already coded as validation.
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	limit := pagination.NormalizeLimit(filter.Page.Limit)
	result := &ListResult{Items: orders}
	if len(orders) > limit {
		result.Items = orders[:limit]
		last := result.Items[limit-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		result.NextCursor = &cursor
	}
	if result.Items == nil {
		result.Items = []models.Order{}
	}
	return result, nil
}

// UpdateStatus performs the admin overwrite. Any status may replace any other;
// stock is not restored when an order is cancelled.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
	}
	return order, nil
}
