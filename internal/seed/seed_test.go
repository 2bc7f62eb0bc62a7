package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/food-delivery/internal/food"
	"github.com/vasiliy-maslov/food-delivery/internal/seed"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestApply_Default(t *testing.T) {
	registry := food.NewRegistry()
	require.NoError(t, seed.Apply(registry, seed.Default()))

	restaurants := registry.Restaurants()
	require.Len(t, restaurants, 2)
	assert.Equal(t, "Tasty Bites", restaurants[0].Name)
	assert.Equal(t, "Spicy Delight", restaurants[1].Name)

	menu := restaurants[0].Menu()
	require.Len(t, menu, 2)
	assert.Equal(t, "Burger", menu[0].Name)
	assert.Equal(t, "5.99", menu[0].Price.StringFixed(2))
	assert.Equal(t, "Pizza", menu[1].Name)
	assert.Equal(t, "8.99", menu[1].Price.StringFixed(2))
	assert.Equal(t, "14.98", food.TotalOf(menu).StringFixed(2))

	_, ok := registry.FindUserByUsername("john_doe")
	assert.True(t, ok)
	_, ok = registry.FindUserByUsername("jane_smith")
	assert.True(t, ok)

	agents := registry.DeliveryAgents()
	require.Len(t, agents, 2)
	assert.Equal(t, "Jack", agents[0].Name)
	assert.Equal(t, "Emily", agents[1].Name)

	assert.Empty(t, registry.Orders())
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, seed.Validate(seed.Default()))
}

func TestLoadFile_Success(t *testing.T) {
	path := writeCatalog(t, `
restaurants:
  - name: Green Bowl
    menu:
      - name: Salad
        price: 4.5
        description: Seasonal greens.
users:
  - username: alice
    password: secret
delivery_agents:
  - name: Bob
`)

	catalog, err := seed.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, catalog.Restaurants, 1)
	assert.Equal(t, "Green Bowl", catalog.Restaurants[0].Name)
	assert.Equal(t, 4.5, catalog.Restaurants[0].Menu[0].Price)
	assert.Equal(t, "alice", catalog.Users[0].Username)
	assert.Equal(t, "Bob", catalog.DeliveryAgents[0].Name)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "negative_price",
			content: `
restaurants:
  - name: Green Bowl
    menu:
      - name: Salad
        price: -1
users:
  - username: alice
delivery_agents:
  - name: Bob
`,
		},
		{
			name: "missing_users",
			content: `
restaurants:
  - name: Green Bowl
delivery_agents:
  - name: Bob
`,
		},
		{
			name: "unknown_field",
			content: `
restaurants:
  - name: Green Bowl
    rating: 5
users:
  - username: alice
delivery_agents:
  - name: Bob
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.LoadFile(writeCatalog(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, seed.ErrInvalidCatalog)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := seed.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply_RejectsNegativePrice(t *testing.T) {
	catalog := seed.Default()
	catalog.Restaurants[0].Menu[0].Price = -2

	err := seed.Apply(food.NewRegistry(), catalog)
	assert.ErrorIs(t, err, food.ErrNegativePrice)
}

func TestLoadFile_ExampleCatalogMatchesDefault(t *testing.T) {
	catalog, err := seed.LoadFile(filepath.Join("..", "..", "configs", "catalog.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, seed.Default(), catalog)
}
