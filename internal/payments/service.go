package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/permataindah/storefront-backend/pkg/config"
	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
	"github.com/permataindah/storefront-backend/pkg/midtrans"
)

// Gateway is the payment provider surface the service depends on. The
// production implementation wraps the Midtrans SDK.
type Gateway interface {
	CreateTransaction(req midtrans.TransactionRequest) (*midtrans.TransactionToken, error)
	CheckTransaction(orderID string) (*midtrans.TransactionStatus, error)
	CancelTransaction(orderID string) error
	ServerKey() string
}

type orderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

// Service defines the behavior needed by the payments controller.
type Service interface {
	CreateToken(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*TokenResponse, error)
	HandleNotification(ctx context.Context, payload NotificationPayload) (*NotificationResult, error)
	Status(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*StatusResponse, error)
	Cancel(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*NotificationResult, error)
}

type service struct {
	gateway Gateway
	orders  orderRepository
	cfg     config.MidtransConfig
}

// ServiceParams bundles the dependencies required to build a payments service.
type ServiceParams struct {
	Gateway   Gateway
	OrderRepo orderRepository
	Config    config.MidtransConfig
}

// NewService constructs a payments service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Gateway == nil {
		return nil, fmt.Errorf("payment gateway is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	return &service{
		gateway: params.Gateway,
		orders:  params.OrderRepo,
		cfg:     params.Config,
	}, nil
}

func (s *service) CreateToken(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*TokenResponse, error) {
	order, err := s.loadOrder(ctx, requesterID, isAdmin, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order is not awaiting payment")
	}

	req := midtrans.TransactionRequest{
		OrderID:     order.ID.String(),
		GrossAmount: int64(order.Total),
		ItemName:    s.cfg.ItemName,
	}
	req.CustomerName = order.Address.FullName
	req.CustomerPhone = order.Phone
	if order.User != nil {
		req.CustomerEmail = order.User.Email
		if req.CustomerName == "" {
			req.CustomerName = order.User.Name
		}
	}

	token, err := s.gateway.CreateTransaction(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create snap transaction")
	}
	return &TokenResponse{Token: token.Token, RedirectURL: token.RedirectURL}, nil
}

// HandleNotification verifies the webhook signature and applies the mapped
// order status. A bad signature leaves the order untouched.
func (s *service) HandleNotification(ctx context.Context, payload NotificationPayload) (*NotificationResult, error) {
	if !midtrans.VerifySignature(
		payload.OrderID,
		payload.StatusCode,
		payload.GrossAmount,
		s.gateway.ServerKey(),
		payload.SignatureKey,
	) {
		return nil, pkgerrors.New(pkgerrors.CodeIntegrity, "webhook signature mismatch")
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order_id is not a valid id")
	}

	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	status := MapTransactionStatus(payload.TransactionStatus, payload.FraudStatus)
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	return &NotificationResult{OrderID: orderID, OrderStatus: status}, nil
}

func (s *service) Status(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*StatusResponse, error) {
	order, err := s.loadOrder(ctx, requesterID, isAdmin, orderID)
	if err != nil {
		return nil, err
	}

	tx, err := s.gateway.CheckTransaction(order.ID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check transaction")
	}

	return &StatusResponse{
		OrderID:           order.ID,
		OrderStatus:       order.Status,
		TransactionStatus: tx.TransactionStatus,
		FraudStatus:       tx.FraudStatus,
		PaymentType:       tx.PaymentType,
	}, nil
}

func (s *service) Cancel(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*NotificationResult, error) {
	order, err := s.loadOrder(ctx, requesterID, isAdmin, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only pending orders can be cancelled")
	}

	if err := s.gateway.CancelTransaction(order.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel transaction")
	}
	if err := s.orders.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	return &NotificationResult{OrderID: order.ID, OrderStatus: enums.OrderStatusCancelled}, nil
}

func (s *service) loadOrder(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// MapTransactionStatus folds the gateway transaction/fraud status pair into
// the order lifecycle. Unknown statuses leave the order pending.
func MapTransactionStatus(transactionStatus, fraudStatus string) enums.OrderStatus {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return enums.OrderStatusProcessing
		}
		return enums.OrderStatusPending
	case "settlement":
		return enums.OrderStatusProcessing
	case "cancel", "deny", "expire":
		return enums.OrderStatusCancelled
	case "pending":
		return enums.OrderStatusPending
	default:
		return enums.OrderStatusPending
	}
}
