package memstore

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/tableorder/backend/internal/domain"
)

// Store is an in-memory implementation of domain.OrderStore. All state is
// process-lifetime only; a restart loses every order.
type Store struct {
	mu sync.RWMutex

	menuOrder []string // preserves upstream menu ordering for reads
	menuItems map[string]domain.MenuItem

	orders     map[string]domain.Order
	orderItems map[string]domain.OrderItem
	nextItemID int

	now     func() time.Time
	randInt func(n int) int
}

// New creates an empty Store
func New() *Store {
	return &Store{
		menuItems:  make(map[string]domain.MenuItem),
		orders:     make(map[string]domain.Order),
		orderItems: make(map[string]domain.OrderItem),
		nextItemID: 1,
		now:        time.Now,
		randInt:    rand.Intn,
	}
}

// CreateOrder assigns an identifier and creation timestamp, applies defaults,
// and inserts the order. Identifiers are time+random composites; collisions
// are possible but vanishingly rare and deliberately not guarded against.
func (s *Store) CreateOrder(ctx context.Context, insert *domain.InsertOrder) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("TO-%d-%03d", s.now().UnixMilli(), s.randInt(1000))

	status := insert.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	order := domain.Order{
		ID:            id,
		CustomerName:  insert.CustomerName,
		CustomerPhone: insert.CustomerPhone,
		OrderType:     insert.OrderType,
		Subtotal:      insert.Subtotal,
		Tax:           insert.Tax,
		ServiceFee:    insert.ServiceFee,
		Total:         insert.Total,
		Status:        status,
		EstimatedTime: insert.EstimatedTime,
		CreatedAt:     s.now(),
	}
	s.orders[id] = order

	return &order, nil
}

// AddOrderItem assigns the next integer id from the store-wide counter and
// inserts the line item.
func (s *Store) AddOrderItem(ctx context.Context, insert *domain.InsertOrderItem) (*domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextItemID
	s.nextItemID++

	item := domain.OrderItem{
		ID:         id,
		OrderID:    insert.OrderID,
		MenuItemID: insert.MenuItemID,
		Quantity:   insert.Quantity,
		Price:      insert.Price,
	}
	s.orderItems[strconv.Itoa(id)] = item

	return &item, nil
}

// GetOrder returns the order merged with its line items, each resolved against
// the menu snapshot. An unknown id returns (nil, nil). A line item whose menu
// item is missing from the snapshot returns DataIntegrityError rather than a
// zero-valued dereference.
func (s *Store) GetOrder(ctx context.Context, id string) (*domain.OrderWithItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}

	items := make([]domain.OrderItemWithDetails, 0)
	for _, item := range s.orderItems {
		if item.OrderID != id {
			continue
		}

		menuItem, ok := s.menuItems[item.MenuItemID]
		if !ok {
			return nil, &domain.DataIntegrityError{OrderID: id, MenuItemID: item.MenuItemID}
		}

		items = append(items, domain.OrderItemWithDetails{
			OrderItem: item,
			MenuItem:  menuItem,
		})
	}

	// Map iteration order is random; present items in insertion order
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	return &domain.OrderWithItems{
		Order: order,
		Items: items,
	}, nil
}

// PutMenuItems replaces the menu snapshot, preserving the given ordering
func (s *Store) PutMenuItems(ctx context.Context, items []domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.menuOrder = make([]string, 0, len(items))
	s.menuItems = make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		s.menuOrder = append(s.menuOrder, item.ID)
		s.menuItems[item.ID] = item
	}

	return nil
}

// GetMenuItems returns all menu items in snapshot order
func (s *Store) GetMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.MenuItem, 0, len(s.menuOrder))
	for _, id := range s.menuOrder {
		items = append(items, s.menuItems[id])
	}

	return items, nil
}

// GetMenuItemsByCategory returns the menu items belonging to a category
func (s *Store) GetMenuItemsByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.MenuItem, 0)
	for _, id := range s.menuOrder {
		if item := s.menuItems[id]; item.Category == category {
			items = append(items, item)
		}
	}

	return items, nil
}

// GetMenuItem returns a single menu item, or ErrMenuNotFound when absent
func (s *Store) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.menuItems[id]
	if !ok {
		return nil, domain.ErrMenuNotFound
	}

	return &item, nil
}
