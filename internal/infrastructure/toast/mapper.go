package toast

import (
	"strconv"

	"github.com/tableorder/backend/internal/domain"
)

// itemImages maps known menu item names to display images. Items without an
// entry are served with no image.
var itemImages = map[string]string{
	// Soda items
	"Coke":       "https://images.unsplash.com/photo-1554866585-cd94860890b7?w=400&h=300&fit=crop",
	"Pepsi":      "https://images.unsplash.com/photo-1629203851122-3726ecdf080e?w=400&h=300&fit=crop",
	"Ginger Ale": "https://images.unsplash.com/photo-1581006852262-e4307cf6283a?w=400&h=300&fit=crop",
	"Dr. Pepper": "https://images.unsplash.com/photo-1622543925917-763c34d1a86e?w=400&h=300&fit=crop",

	// Kids items
	"Hot Dog":         "https://images.unsplash.com/photo-1612392062798-2508a1fe4f78?w=400&h=300&fit=crop",
	"Hamburger":       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400&h=300&fit=crop",
	"Chicken Fingers": "https://images.unsplash.com/photo-1562967914-608f82629710?w=400&h=300&fit=crop",

	// Sandwich items
	"Turkey":          "https://images.unsplash.com/photo-1539252554453-80ab65ce3586?w=400&h=300&fit=crop",
	"Ham & Cheese":    "https://images.unsplash.com/photo-1528735602780-2552fd46c7af?w=400&h=300&fit=crop",
	"Grilled Chicken": "https://images.unsplash.com/photo-1571091718767-18b5b1457add?w=400&h=300&fit=crop",
	"Grilled Cheese":  "https://images.unsplash.com/photo-1528736235302-52922df5c122?w=400&h=300&fit=crop",
}

// FlattenMenu converts the nested menuGroup/menuItem structure of a Toast menu
// into a flat list of MenuItem records. The group name becomes the category.
// Availability is hardcoded to "available": the test restaurant has unlimited
// stock.
func FlattenMenu(menu *domain.ToastMenu) []domain.MenuItem {
	items := make([]domain.MenuItem, 0)

	for _, group := range menu.MenuGroups {
		for _, item := range group.MenuItems {
			items = append(items, domain.MenuItem{
				ID:           item.GUID,
				Name:         item.Name,
				Description:  item.Description,
				Price:        formatPrice(item.Price),
				Category:     group.Name,
				Availability: domain.AvailabilityAvailable,
				PrepTime:     nil,
				ImageURL:     imageFor(item.Name),
			})
		}
	}

	return items
}

// formatPrice renders an upstream price as a decimal string, "0" when unset
func formatPrice(price float64) string {
	if price == 0 {
		return "0"
	}
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// imageFor resolves a menu item name to its display image, nil when unknown
func imageFor(name string) *string {
	if url, ok := itemImages[name]; ok {
		return &url
	}
	return nil
}
