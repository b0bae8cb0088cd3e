package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/permataindah/storefront-backend/api/middleware"
	ordersvc "github.com/permataindah/storefront-backend/internal/orders"
	"github.com/permataindah/storefront-backend/pkg/db/models"
	"github.com/permataindah/storefront-backend/pkg/enums"
)

type stubOrderService struct {
	placedBy     uuid.UUID
	placed       *ordersvc.PlaceOrderRequest
	statusUpdate *enums.OrderStatus
	listFilter   *ordersvc.ListFilter
}

func (s *stubOrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req ordersvc.PlaceOrderRequest) (*models.Order, error) {
	s.placedBy = userID
	s.placed = &req
	return &models.Order{ID: uuid.New(), UserID: userID, Status: enums.OrderStatusPending}, nil
}

func (s *stubOrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (s *stubOrderService) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: orderID, UserID: requesterID}, nil
}

func (s *stubOrderService) ListAll(ctx context.Context, filter ordersvc.ListFilter) (*ordersvc.ListResult, error) {
	s.listFilter = &filter
	return &ordersvc.ListResult{Items: []models.Order{}}, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	s.statusUpdate = &status
	return &models.Order{ID: orderID, Status: status}, nil
}

func shopperContext(ctx context.Context, id uuid.UUID) context.Context {
	return middleware.WithUser(ctx, &models.User{ID: id, Role: enums.UserRoleUser, Active: true})
}

func TestPlaceOrderReturns201(t *testing.T) {
	stub := &stubOrderService{}
	shopperID := uuid.New()
	productID := uuid.New()
	body := `{
		"items": [{"productId": "` + productID.String() + `", "quantity": 2}],
		"address": {
			"street": "Jl. Sudirman No. 10",
			"city": "Jakarta",
			"province": "DKI Jakarta",
			"postalCode": "10220",
			"fullName": "Siti Rahma",
			"phone": "081234567890"
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req = req.WithContext(shopperContext(req.Context(), shopperID))
	rec := httptest.NewRecorder()

	PlaceOrder(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.placedBy != shopperID {
		t.Fatalf("expected order placed by %s got %s", shopperID, stub.placedBy)
	}
	if stub.placed == nil || len(stub.placed.Items) != 1 || stub.placed.Items[0].Quantity != 2 {
		t.Fatalf("unexpected checkout payload: %+v", stub.placed)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	body := `{"items": [], "address": {"street": "Jl. Sudirman", "city": "Jakarta", "province": "DKI Jakarta", "postalCode": "10220", "fullName": "Siti", "phone": "081234567890"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req = req.WithContext(shopperContext(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()

	PlaceOrder(&stubOrderService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminListOrdersParsesStatusFilter(t *testing.T) {
	stub := &stubOrderService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders?status=processing&limit=5", nil)
	rec := httptest.NewRecorder()

	AdminListOrders(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.listFilter == nil || stub.listFilter.Status == nil || *stub.listFilter.Status != enums.OrderStatusProcessing {
		t.Fatalf("unexpected filter: %+v", stub.listFilter)
	}
	if stub.listFilter.Page.Limit != 5 {
		t.Fatalf("expected limit 5 got %d", stub.listFilter.Page.Limit)
	}
}

func TestAdminListOrdersRejectsUnknownStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders?status=refunded", nil)
	rec := httptest.NewRecorder()

	AdminListOrders(&stubOrderService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	stub := &stubOrderService{}
	orderID := uuid.New()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", orderID.String())
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status", strings.NewReader(`{"status":"shipped"}`))
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	rec := httptest.NewRecorder()

	AdminUpdateOrderStatus(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.statusUpdate == nil || *stub.statusUpdate != enums.OrderStatusShipped {
		t.Fatalf("unexpected status update: %+v", stub.statusUpdate)
	}
}
