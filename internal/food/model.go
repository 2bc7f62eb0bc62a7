package food

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

var ErrNegativePrice = errors.New("food item price cannot be negative")

// FoodItem is a single menu entry. It is never modified after creation.
type FoodItem struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

func NewFoodItem(name string, price decimal.Decimal, description string) (FoodItem, error) {
	if price.IsNegative() {
		return FoodItem{}, fmt.Errorf("%w: %s costs %s", ErrNegativePrice, name, price.String())
	}

	return FoodItem{Name: name, Price: price, Description: description}, nil
}

type Restaurant struct {
	Name string `json:"name"`
	menu []FoodItem
}

func NewRestaurant(name string) *Restaurant {
	return &Restaurant{Name: name, menu: make([]FoodItem, 0)}
}

func (r *Restaurant) AddFoodItem(item FoodItem) {
	r.menu = append(r.menu, item)
}

// Menu returns the items in the order they were added.
func (r *Restaurant) Menu() []FoodItem {
	return r.menu
}

// User holds plaintext credentials; lookups by username ignore case.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

func (u *User) PasswordMatches(password string) bool {
	return u.Password == password
}

type DeliveryAgent struct {
	Name string `json:"name"`
}

type Order struct {
	ID              int             `json:"id"`
	Reference       uuid.UUID       `json:"reference"`
	User            *User           `json:"user"`
	Restaurant      *Restaurant     `json:"restaurant"`
	Items           []FoodItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress string          `json:"delivery_address"`
	DeliveryTime    time.Time       `json:"delivery_time"`

	deliveryAgent *DeliveryAgent
}

// DeliveryAgent reports the assigned agent, if any.
func (o *Order) DeliveryAgent() (*DeliveryAgent, bool) {
	return o.deliveryAgent, o.deliveryAgent != nil
}

func (o *Order) assignDeliveryAgent(agent *DeliveryAgent) {
	o.deliveryAgent = agent
}

// TotalOf sums item prices. An empty selection costs zero.
func TotalOf(items []FoodItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}

	return total
}
