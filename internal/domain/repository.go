package domain

import (
	"context"
	"time"
)

// MenuCache defines the interface for memoizing transformed menu payloads.
// Expired entries are evicted lazily on Get; there is no background sweeper.
type MenuCache interface {
	Get(ctx context.Context, key string) ([]MenuItem, error)
	Set(ctx context.Context, key string, items []MenuItem, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// POSGateway defines the interface for authenticated calls against the Toast
// platform. Implementations own the OAuth token lifecycle.
type POSGateway interface {
	GetMenus(ctx context.Context) (*ToastMenusResponse, error)
	CreateOrder(ctx context.Context, payload *ToastOrderPayload) (*ToastOrderResponse, error)
}

// OrderStore defines persistence operations for orders and the menu-item
// snapshot that order reads resolve against.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *InsertOrder) (*Order, error)
	AddOrderItem(ctx context.Context, item *InsertOrderItem) (*OrderItem, error)
	// GetOrder returns (nil, nil) when the order id is absent.
	GetOrder(ctx context.Context, id string) (*OrderWithItems, error)

	PutMenuItems(ctx context.Context, items []MenuItem) error
	GetMenuItems(ctx context.Context) ([]MenuItem, error)
	GetMenuItemsByCategory(ctx context.Context, category string) ([]MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*MenuItem, error)
}
