package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tableorder/backend/internal/domain"
)

// defaultEstimatedMinutes is the preparation estimate applied to confirmed orders
const defaultEstimatedMinutes = 25

// OrderService submits orders upstream and records them locally
type OrderService struct {
	gateway        domain.POSGateway
	store          domain.OrderStore
	restaurantGUID string
}

// NewOrderService creates a new order service with dependencies
func NewOrderService(gateway domain.POSGateway, store domain.OrderStore, restaurantGUID string) *OrderService {
	return &OrderService{
		gateway:        gateway,
		store:          store,
		restaurantGUID: restaurantGUID,
	}
}

// CreateOrder mirrors the order to the Toast platform and, on success, stores
// it locally with confirmed status. An upstream failure propagates and nothing
// is stored.
func (s *OrderService) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest) (*domain.CreatedOrder, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	payload, err := s.buildPayload(req)
	if err != nil {
		return nil, err
	}

	upstream, err := s.gateway.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}

	estimated := defaultEstimatedMinutes
	order, err := s.store.CreateOrder(ctx, &domain.InsertOrder{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		OrderType:     req.OrderType,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		ServiceFee:    req.ServiceFee,
		Total:         req.Total,
		Status:        domain.OrderStatusConfirmed,
		EstimatedTime: &estimated,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	for _, item := range req.Items {
		if _, err := s.store.AddOrderItem(ctx, &domain.InsertOrderItem{
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		}); err != nil {
			return nil, fmt.Errorf("failed to store order item: %w", err)
		}
	}

	log.Printf("[ORDER] created %s (upstream %s) for %s", order.ID, upstream.GUID, order.CustomerName)

	return &domain.CreatedOrder{
		Order:      *order,
		POSOrderID: upstream.GUID,
	}, nil
}

// GetOrder returns a stored order with its items
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.OrderWithItems, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// buildPayload normalizes the inbound request into the Toast order shape
func (s *OrderService) buildPayload(req *domain.CreateOrderRequest) (*domain.ToastOrderPayload, error) {
	first, last := splitName(req.CustomerName)

	selections := make([]domain.ToastSelection, 0, len(req.Items))
	for _, item := range req.Items {
		unitPrice, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: item price %q", domain.ErrInvalidRequest, item.Price)
		}
		selections = append(selections, domain.ToastSelection{
			ItemGUID:  item.MenuItemID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice.InexactFloat64(),
		})
	}

	subtotal, err := decimal.NewFromString(req.Subtotal)
	if err != nil {
		return nil, fmt.Errorf("%w: subtotal %q", domain.ErrInvalidRequest, req.Subtotal)
	}
	tax, err := decimal.NewFromString(req.Tax)
	if err != nil {
		return nil, fmt.Errorf("%w: tax %q", domain.ErrInvalidRequest, req.Tax)
	}
	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		return nil, fmt.Errorf("%w: total %q", domain.ErrInvalidRequest, req.Total)
	}

	return &domain.ToastOrderPayload{
		RestaurantGUID: s.restaurantGUID,
		OrderType:      normalizeOrderType(req.OrderType),
		Customer: domain.ToastCustomer{
			FirstName: first,
			LastName:  last,
			Phone:     req.CustomerPhone,
		},
		Selections: selections,
		Totals: domain.ToastTotals{
			SubTotal: subtotal.InexactFloat64(),
			Tax:      tax.InexactFloat64(),
			Total:    total.InexactFloat64(),
		},
	}, nil
}

// normalizeOrderType converts "dine-in" style values to the upstream
// "DINE_IN" convention
func normalizeOrderType(orderType string) string {
	return strings.ToUpper(strings.ReplaceAll(orderType, "-", "_"))
}

// splitName splits a full name into first and last parts. A single-word name
// becomes the first name with an empty last name.
func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
