// Package seed provides the sample catalog a run starts from.
package seed

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vasiliy-maslov/food-delivery/internal/food"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type MenuItem struct {
	Name        string  `yaml:"name" validate:"required"`
	Price       float64 `yaml:"price" validate:"gte=0"`
	Description string  `yaml:"description"`
}

type Restaurant struct {
	Name string     `yaml:"name" validate:"required"`
	Menu []MenuItem `yaml:"menu" validate:"dive"`
}

type User struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password"`
}

type DeliveryAgent struct {
	Name string `yaml:"name" validate:"required"`
}

type Catalog struct {
	Restaurants    []Restaurant    `yaml:"restaurants" validate:"required,min=1,dive"`
	Users          []User          `yaml:"users" validate:"required,min=1,dive"`
	DeliveryAgents []DeliveryAgent `yaml:"delivery_agents" validate:"required,min=1,dive"`
}

// Default is the fixed sample data used when no catalog file is configured.
func Default() Catalog {
	return Catalog{
		Restaurants: []Restaurant{
			{
				Name: "Tasty Bites",
				Menu: []MenuItem{
					{Name: "Burger", Price: 5.99, Description: "Delicious beef burger with cheese."},
					{Name: "Pizza", Price: 8.99, Description: "Classic pepperoni pizza."},
				},
			},
			{
				Name: "Spicy Delight",
				Menu: []MenuItem{
					{Name: "Noodles", Price: 6.49, Description: "Hakka noodles with vegetables."},
					{Name: "Biryani", Price: 9.99, Description: "Chicken biryani with flavorful spices."},
				},
			},
		},
		Users: []User{
			{Username: "john_doe", Password: "password123"},
			{Username: "jane_smith", Password: "123456"},
		},
		DeliveryAgents: []DeliveryAgent{
			{Name: "Jack"},
			{Name: "Emily"},
		},
	}
}

func LoadFile(path string) (Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var catalog Catalog
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return Catalog{}, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, path, err)
	}

	if err := Validate(catalog); err != nil {
		return Catalog{}, err
	}

	log.Info().Str("path", path).
		Int("restaurants", len(catalog.Restaurants)).
		Int("users", len(catalog.Users)).
		Int("delivery_agents", len(catalog.DeliveryAgents)).
		Msg("seed: catalog loaded")

	return catalog, nil
}

func Validate(catalog Catalog) error {
	err := validator.New().Struct(catalog)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(details, "; "))
}

// Apply registers the catalog in file order.
func Apply(registry *food.Registry, catalog Catalog) error {
	for _, r := range catalog.Restaurants {
		restaurant := food.NewRestaurant(r.Name)
		for _, m := range r.Menu {
			item, err := food.NewFoodItem(m.Name, decimal.NewFromFloat(m.Price), m.Description)
			if err != nil {
				return fmt.Errorf("seed: restaurant %q: %w", r.Name, err)
			}
			restaurant.AddFoodItem(item)
		}
		registry.AddRestaurant(restaurant)
	}

	for _, u := range catalog.Users {
		registry.AddUser(&food.User{Username: u.Username, Password: u.Password})
	}

	for _, d := range catalog.DeliveryAgents {
		registry.AddDeliveryAgent(&food.DeliveryAgent{Name: d.Name})
	}

	return nil
}
