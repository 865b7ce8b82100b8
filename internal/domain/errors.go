package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrMenuNotFound is returned when the configured menu is absent upstream
	ErrMenuNotFound = errors.New("menu not found")

	// ErrOrderNotFound is returned when a requested order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)

// ConfigurationError indicates missing or invalid credentials/identifiers.
// It is raised before any network call is made.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration missing: %s", e.Field)
}

// AuthenticationError indicates the POS platform rejected the credential
// exchange, carrying the upstream status and body for diagnostics.
type AuthenticationError struct {
	Status int
	Body   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("toast authentication failed: status %d: %s", e.Status, e.Body)
}

// RemoteAPIError indicates a non-success response from a proxied POS call.
type RemoteAPIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("toast API error: %d %s: %s", e.Status, e.StatusText, e.Body)
}

// DataIntegrityError indicates a stored order item references a menu item that
// no longer exists in the menu snapshot.
type DataIntegrityError struct {
	OrderID    string
	MenuItemID string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("order %s references missing menu item %s", e.OrderID, e.MenuItemID)
}
