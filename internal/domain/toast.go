package domain

// ToastTokenResponse is the response from the Toast authentication endpoint.
type ToastTokenResponse struct {
	Token ToastToken `json:"token"`
}

// ToastToken carries the bearer token and its lifetime in seconds.
type ToastToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// ToastMenusResponse is the response from the Toast menus endpoint.
type ToastMenusResponse struct {
	Menus []ToastMenu `json:"menus"`
}

// ToastMenu is a single published menu with its nested group/item structure.
type ToastMenu struct {
	GUID       string           `json:"guid"`
	Name       string           `json:"name"`
	MenuGroups []ToastMenuGroup `json:"menuGroups"`
}

// ToastMenuGroup is a named grouping of menu items (e.g. "Sandwiches").
type ToastMenuGroup struct {
	GUID      string          `json:"guid"`
	Name      string          `json:"name"`
	MenuItems []ToastMenuItem `json:"menuItems"`
}

// ToastMenuItem is a single item as served by the Toast API.
type ToastMenuItem struct {
	GUID        string  `json:"guid"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ToastOrderPayload is the normalized order mirrored to the Toast orders endpoint.
type ToastOrderPayload struct {
	RestaurantGUID string           `json:"restaurantGuid"`
	OrderType      string           `json:"orderType"` // e.g. DINE_IN, TAKEOUT, DELIVERY
	Customer       ToastCustomer    `json:"customer"`
	Selections     []ToastSelection `json:"selections"`
	Totals         ToastTotals      `json:"totals"`
}

// ToastCustomer identifies the ordering customer.
type ToastCustomer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// ToastSelection is a single line selection in an upstream order.
type ToastSelection struct {
	ItemGUID  string  `json:"itemGuid"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// ToastTotals carries the monetary totals for an upstream order.
type ToastTotals struct {
	SubTotal float64 `json:"subTotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ToastOrderResponse is the response from the Toast orders endpoint.
type ToastOrderResponse struct {
	GUID string `json:"guid"`
}
