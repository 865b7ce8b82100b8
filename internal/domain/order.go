package domain

import "time"

// Order types accepted from the UI
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeout  = "takeout"
	OrderTypeDelivery = "delivery"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// Order represents a locally stored customer order. Monetary fields are decimal
// strings, matching the JSON contract consumed by the UI.
type Order struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	OrderType     string    `json:"orderType"` // dine-in, takeout, delivery
	Subtotal      string    `json:"subtotal"`
	Tax           string    `json:"tax"`
	ServiceFee    string    `json:"serviceFee"`
	Total         string    `json:"total"`
	Status        string    `json:"status"`
	EstimatedTime *int      `json:"estimatedTime"` // in minutes
	CreatedAt     time.Time `json:"createdAt"`
}

// InsertOrder holds the fields needed to create an Order. ID and CreatedAt are
// assigned by the store.
type InsertOrder struct {
	CustomerName  string
	CustomerPhone string
	OrderType     string
	Subtotal      string
	Tax           string
	ServiceFee    string
	Total         string
	Status        string
	EstimatedTime *int
}

// OrderItem is a single line item belonging to an Order.
type OrderItem struct {
	ID         int    `json:"id"`
	OrderID    string `json:"orderId"`
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Price      string `json:"price"` // unit price, decimal string
}

// InsertOrderItem holds the fields needed to create an OrderItem. ID is
// assigned by the store.
type InsertOrderItem struct {
	OrderID    string
	MenuItemID string
	Quantity   int
	Price      string
}

// OrderItemWithDetails is an OrderItem augmented with its resolved MenuItem.
type OrderItemWithDetails struct {
	OrderItem
	MenuItem MenuItem `json:"menuItem"`
}

// OrderWithItems composes an Order with all of its line items.
type OrderWithItems struct {
	Order
	Items []OrderItemWithDetails `json:"items"`
}

// CreateOrderRequest is the inbound payload for order submission.
type CreateOrderRequest struct {
	CustomerName  string                   `json:"customerName" binding:"required"`
	CustomerPhone string                   `json:"customerPhone" binding:"required"`
	OrderType     string                   `json:"orderType" binding:"required,oneof=dine-in takeout delivery"`
	Subtotal      string                   `json:"subtotal" binding:"required"`
	Tax           string                   `json:"tax" binding:"required"`
	ServiceFee    string                   `json:"serviceFee" binding:"required"`
	Total         string                   `json:"total" binding:"required"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest is one line selection in a CreateOrderRequest.
type CreateOrderItemRequest struct {
	MenuItemID string `json:"menuItemId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Price      string `json:"price" binding:"required"`
}

// CreatedOrder is the response for a successful order submission: the locally
// stored order plus the identifier assigned by the POS platform.
type CreatedOrder struct {
	Order
	POSOrderID string `json:"toastOrderId"`
}
