package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tableorder/backend/config"
	"github.com/tableorder/backend/internal/domain"
	"github.com/tableorder/backend/internal/infrastructure/cache"
	"github.com/tableorder/backend/internal/infrastructure/memstore"
	"github.com/tableorder/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	os.Exit(exitCode)
}

// mockGateway is a mock implementation of domain.POSGateway
type mockGateway struct {
	menusResult *domain.ToastMenusResponse
	menusError  error
	menusCalls  int
	orderResult *domain.ToastOrderResponse
	orderError  error
}

func (m *mockGateway) GetMenus(ctx context.Context) (*domain.ToastMenusResponse, error) {
	m.menusCalls++
	if m.menusError != nil {
		return nil, m.menusError
	}
	return m.menusResult, nil
}

func (m *mockGateway) CreateOrder(ctx context.Context, payload *domain.ToastOrderPayload) (*domain.ToastOrderResponse, error) {
	if m.orderError != nil {
		return nil, m.orderError
	}
	return m.orderResult, nil
}

func testMenus() *domain.ToastMenusResponse {
	return &domain.ToastMenusResponse{
		Menus: []domain.ToastMenu{
			{
				GUID: "menu-1",
				Name: "Base Price Menu",
				MenuGroups: []domain.ToastMenuGroup{
					{
						Name: "Sandwiches",
						MenuItems: []domain.ToastMenuItem{
							{GUID: "item-1", Name: "Turkey", Description: "Roasted turkey on wheat", Price: 8.5},
						},
					},
					{
						Name: "Sodas",
						MenuItems: []domain.ToastMenuItem{
							{GUID: "item-2", Name: "Coke", Price: 2.25},
						},
					},
				},
			},
		},
	}
}

// setupTestRouter wires real services over an in-memory store and the given
// mock gateway
func setupTestRouter(gateway domain.POSGateway) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	menuCache := cache.NewMemoryCache()
	store := memstore.New()

	menuService := usecase.NewMenuService(menuCache, gateway, store, usecase.MenuServiceConfig{
		RestaurantGUID: "rest-1",
		MenuGUID:       "menu-1",
		CacheTTL:       5 * time.Minute,
	})
	orderService := usecase.NewOrderService(gateway, store, "rest-1")

	handler := NewHandler(menuService, orderService)
	return SetupRouter(cfg, handler)
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(&mockGateway{})

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "tableorder-backend" {
		t.Errorf("service = %v, want tableorder-backend", response["service"])
	}
}

func TestGetMenuEndpoint(t *testing.T) {
	t.Run("returns flattened menu", func(t *testing.T) {
		router := setupTestRouter(&mockGateway{menusResult: testMenus()})

		req, _ := http.NewRequest("GET", "/api/menu", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var items []domain.MenuItem
		if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if len(items) != 2 {
			t.Fatalf("len(items) = %d, want 2", len(items))
		}
		if items[0].Name != "Turkey" {
			t.Errorf("items[0].Name = %s, want Turkey", items[0].Name)
		}
		if items[0].Category != "Sandwiches" {
			t.Errorf("items[0].Category = %s, want Sandwiches", items[0].Category)
		}
		if items[0].Availability != "available" {
			t.Errorf("items[0].Availability = %s, want available", items[0].Availability)
		}
	})

	t.Run("serves repeat requests from cache", func(t *testing.T) {
		gateway := &mockGateway{menusResult: testMenus()}
		router := setupTestRouter(gateway)

		for i := 0; i < 3; i++ {
			req, _ := http.NewRequest("GET", "/api/menu", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("request %d: Status = %d, want %d", i, w.Code, http.StatusOK)
			}
		}

		if gateway.menusCalls != 1 {
			t.Errorf("upstream calls = %d, want 1 (cache should absorb repeats)", gateway.menusCalls)
		}
	})

	t.Run("maps authentication failure to 502", func(t *testing.T) {
		gateway := &mockGateway{menusError: &domain.AuthenticationError{Status: 401, Body: "bad credentials"}}
		router := setupTestRouter(gateway)

		req, _ := http.NewRequest("GET", "/api/menu", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadGateway)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["message"] == nil {
			t.Error("expected message field in error response")
		}
	})

	t.Run("maps missing menu to 404", func(t *testing.T) {
		gateway := &mockGateway{menusResult: &domain.ToastMenusResponse{
			Menus: []domain.ToastMenu{{GUID: "some-other-menu"}},
		}}
		router := setupTestRouter(gateway)

		req, _ := http.NewRequest("GET", "/api/menu", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestGetMenuByCategoryEndpoint(t *testing.T) {
	gateway := &mockGateway{menusResult: testMenus()}
	router := setupTestRouter(gateway)

	// Populate the snapshot via a menu fetch first
	req, _ := http.NewRequest("GET", "/api/menu", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req, _ = http.NewRequest("GET", "/api/menu/category/Sodas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Coke" {
		t.Errorf("items = %v, want [Coke]", items)
	}
}

func validOrderPayload() string {
	return `{
		"customerName": "Jamie Lee",
		"customerPhone": "555-0100",
		"orderType": "takeout",
		"subtotal": "17.00",
		"tax": "1.49",
		"serviceFee": "0.50",
		"total": "18.99",
		"items": [
			{"menuItemId": "item-1", "quantity": 2, "price": "8.50"}
		]
	}`
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Run("creates order and returns upstream id", func(t *testing.T) {
		gateway := &mockGateway{
			menusResult: testMenus(),
			orderResult: &domain.ToastOrderResponse{GUID: "upstream-guid"},
		}
		router := setupTestRouter(gateway)

		req, _ := http.NewRequest("POST", "/api/orders", strings.NewReader(validOrderPayload()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		id, _ := response["id"].(string)
		if matched := regexp.MustCompile(`^TO-\d+-\d{3}$`).MatchString(id); !matched {
			t.Errorf("id = %q, want TO-<millis>-<3 digits>", id)
		}
		if response["toastOrderId"] != "upstream-guid" {
			t.Errorf("toastOrderId = %v, want upstream-guid", response["toastOrderId"])
		}
		if response["status"] != "confirmed" {
			t.Errorf("status = %v, want confirmed", response["status"])
		}
		if response["estimatedTime"] != float64(25) {
			t.Errorf("estimatedTime = %v, want 25", response["estimatedTime"])
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router := setupTestRouter(&mockGateway{})

		req, _ := http.NewRequest("POST", "/api/orders", strings.NewReader(`{invalid json}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		router := setupTestRouter(&mockGateway{})

		req, _ := http.NewRequest("POST", "/api/orders", strings.NewReader(`{"customerName":"Jamie"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects unknown order type", func(t *testing.T) {
		router := setupTestRouter(&mockGateway{})

		payload := strings.Replace(validOrderPayload(), `"takeout"`, `"drive-through"`, 1)
		req, _ := http.NewRequest("POST", "/api/orders", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("maps upstream order failure to 502", func(t *testing.T) {
		gateway := &mockGateway{
			orderError: &domain.RemoteAPIError{Status: 500, StatusText: "Internal Server Error", Body: "oops"},
		}
		router := setupTestRouter(gateway)

		req, _ := http.NewRequest("POST", "/api/orders", strings.NewReader(validOrderPayload()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadGateway)
		}
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	t.Run("returns stored order with items", func(t *testing.T) {
		gateway := &mockGateway{
			menusResult: testMenus(),
			orderResult: &domain.ToastOrderResponse{GUID: "upstream-guid"},
		}
		router := setupTestRouter(gateway)

		// Populate menu snapshot, then create an order
		req, _ := http.NewRequest("GET", "/api/menu", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		req, _ = http.NewRequest("POST", "/api/orders", strings.NewReader(validOrderPayload()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var created map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("Failed to unmarshal create response: %v", err)
		}
		id, _ := created["id"].(string)

		req, _ = http.NewRequest("GET", "/api/orders/"+id, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var order domain.OrderWithItems
		if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
			t.Fatalf("Failed to unmarshal order: %v", err)
		}

		if order.ID != id {
			t.Errorf("order.ID = %s, want %s", order.ID, id)
		}
		if len(order.Items) != 1 {
			t.Fatalf("len(order.Items) = %d, want 1", len(order.Items))
		}
		if order.Items[0].MenuItem.Name != "Turkey" {
			t.Errorf("resolved menu item = %s, want Turkey", order.Items[0].MenuItem.Name)
		}
	})

	t.Run("returns 404 for unknown order", func(t *testing.T) {
		router := setupTestRouter(&mockGateway{})

		req, _ := http.NewRequest("GET", "/api/orders/TO-0-000", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["message"] != "Order not found" {
			t.Errorf("message = %v, want 'Order not found'", response["message"])
		}
	})
}

func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter(&mockGateway{})

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
	}
}

func TestRequestIDIntegration(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		router := setupTestRouter(&mockGateway{})

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Header().Get("X-Request-ID") == "" {
			t.Error("expected generated X-Request-ID header")
		}
	})

	t.Run("echoes a valid incoming id", func(t *testing.T) {
		router := setupTestRouter(&mockGateway{})

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("X-Request-ID", "req-12345")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "req-12345" {
			t.Errorf("X-Request-ID = %q, want req-12345", got)
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	router := setupTestRouter(&mockGateway{})

	// Add a test route that panics
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	req, _ := http.NewRequest("GET", "/panic", nil)
	w := httptest.NewRecorder()

	// This should not crash the test - recovery middleware should handle it
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
