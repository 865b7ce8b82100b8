package domain

// Availability states for a menu item
const (
	AvailabilityAvailable  = "available"
	AvailabilityLowStock   = "low-stock"
	AvailabilityOutOfStock = "out-of-stock"
)

// MenuItem represents a single orderable item transformed from the POS menu structure.
// Instances are treated as immutable once cached.
type MenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        string  `json:"price"` // decimal string, e.g. "4.50"
	Category     string  `json:"category"`
	Availability string  `json:"availability"` // available, low-stock, out-of-stock
	PrepTime     *int    `json:"prepTime"`     // in minutes
	ImageURL     *string `json:"imageUrl"`
}
