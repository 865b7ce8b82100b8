package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tableorder/backend/internal/domain"
	"github.com/tableorder/backend/internal/infrastructure/toast"
)

// MenuServiceConfig holds configuration for the menu service
type MenuServiceConfig struct {
	RestaurantGUID string
	MenuGUID       string
	CacheTTL       time.Duration
}

// MenuService serves the transformed menu, memoized in a TTL cache
type MenuService struct {
	cache          domain.MenuCache
	gateway        domain.POSGateway
	store          domain.OrderStore
	restaurantGUID string
	menuGUID       string
	cacheTTL       time.Duration
}

// NewMenuService creates a new menu service with dependencies
func NewMenuService(
	cache domain.MenuCache,
	gateway domain.POSGateway,
	store domain.OrderStore,
	config MenuServiceConfig,
) *MenuService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &MenuService{
		cache:          cache,
		gateway:        gateway,
		store:          store,
		restaurantGUID: config.RestaurantGUID,
		menuGUID:       config.MenuGUID,
		cacheTTL:       cacheTTL,
	}
}

// GetMenu returns the flattened menu for the configured restaurant.
// Flow: check cache -> fetch from Toast -> flatten -> refresh snapshot -> cache.
// Repeated calls within the TTL window return the cached list with zero
// upstream calls.
func (s *MenuService) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	cacheKey := s.cacheKey()

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil {
		log.Printf("[MENU] cache hit for %s", cacheKey)
		return cached, nil
	}

	menus, err := s.gateway.GetMenus(ctx)
	if err != nil {
		return nil, err
	}

	menu := findMenu(menus.Menus, s.menuGUID)
	if menu == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMenuNotFound, s.menuGUID)
	}

	log.Printf("[MENU] loading menu %q with %d groups", menu.Name, len(menu.MenuGroups))

	items := toast.FlattenMenu(menu)
	log.Printf("[MENU] transformed %d menu items", len(items))

	// Refresh the snapshot order reads resolve against. A failure here is
	// logged, not fatal: the menu itself is still servable.
	if err := s.store.PutMenuItems(ctx, items); err != nil {
		log.Printf("[MENU] warning: failed to refresh menu snapshot: %v", err)
	}

	if err := s.cache.Set(ctx, cacheKey, items, s.cacheTTL); err != nil {
		log.Printf("[MENU] warning: failed to cache menu: %v", err)
	}

	return items, nil
}

// GetMenuByCategory returns the snapshot menu items for one category
func (s *MenuService) GetMenuByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	return s.store.GetMenuItemsByCategory(ctx, category)
}

// cacheKey builds the cache key from the restaurant and menu identifiers
func (s *MenuService) cacheKey() string {
	return fmt.Sprintf("menu_%s_%s", s.restaurantGUID, s.menuGUID)
}

// findMenu locates a menu by GUID, nil when absent
func findMenu(menus []domain.ToastMenu, guid string) *domain.ToastMenu {
	for i := range menus {
		if menus[i].GUID == guid {
			return &menus[i]
		}
	}
	return nil
}
