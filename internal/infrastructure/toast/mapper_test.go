package toast

import (
	"testing"

	"github.com/tableorder/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenMenu(t *testing.T) {
	menu := &domain.ToastMenu{
		GUID: "menu-1",
		Name: "Base Price Menu",
		MenuGroups: []domain.ToastMenuGroup{
			{
				Name: "Sandwiches",
				MenuItems: []domain.ToastMenuItem{
					{GUID: "item-1", Name: "Turkey", Description: "Roasted turkey on wheat", Price: 8.5},
					{GUID: "item-2", Name: "Mystery Sandwich", Price: 7},
				},
			},
			{
				Name: "Sodas",
				MenuItems: []domain.ToastMenuItem{
					{GUID: "item-3", Name: "Coke", Price: 2.25},
				},
			},
		},
	}

	items := FlattenMenu(menu)
	require.Len(t, items, 3)

	turkey := items[0]
	assert.Equal(t, "item-1", turkey.ID)
	assert.Equal(t, "Turkey", turkey.Name)
	assert.Equal(t, "Roasted turkey on wheat", turkey.Description)
	assert.Equal(t, "8.5", turkey.Price)
	assert.Equal(t, "Sandwiches", turkey.Category)
	assert.Equal(t, domain.AvailabilityAvailable, turkey.Availability)
	assert.Nil(t, turkey.PrepTime)
	require.NotNil(t, turkey.ImageURL)
	assert.Contains(t, *turkey.ImageURL, "unsplash.com")

	// Unknown item names resolve to no image
	assert.Nil(t, items[1].ImageURL)

	// Category comes from the owning group
	assert.Equal(t, "Sodas", items[2].Category)
}

func TestFlattenMenu_EmptyGroups(t *testing.T) {
	menu := &domain.ToastMenu{
		GUID:       "menu-1",
		MenuGroups: []domain.ToastMenuGroup{{Name: "Empty Group"}},
	}

	items := FlattenMenu(menu)
	assert.Empty(t, items)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "0"},
		{8.5, "8.5"},
		{2.25, "2.25"},
		{10, "10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPrice(tt.price))
	}
}
