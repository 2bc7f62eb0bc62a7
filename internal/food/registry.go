package food

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrChoiceOutOfRange   = errors.New("choice is out of range")
)

// Registry keeps every restaurant, user, delivery agent and order of a run.
// It is not safe for concurrent use.
type Registry struct {
	restaurants    []*Restaurant
	users          []*User
	deliveryAgents []*DeliveryAgent
	orders         []*Order
	orderIDCounter int
}

func NewRegistry() *Registry {
	return &Registry{
		restaurants:    make([]*Restaurant, 0),
		users:          make([]*User, 0),
		deliveryAgents: make([]*DeliveryAgent, 0),
		orders:         make([]*Order, 0),
		orderIDCounter: 1,
	}
}

func (r *Registry) AddRestaurant(restaurant *Restaurant) {
	r.restaurants = append(r.restaurants, restaurant)
}

func (r *Registry) AddUser(user *User) {
	r.users = append(r.users, user)
}

func (r *Registry) AddDeliveryAgent(agent *DeliveryAgent) {
	r.deliveryAgents = append(r.deliveryAgents, agent)
}

func (r *Registry) Restaurants() []*Restaurant {
	return r.restaurants
}

func (r *Registry) DeliveryAgents() []*DeliveryAgent {
	return r.deliveryAgents
}

func (r *Registry) Orders() []*Order {
	return r.orders
}

// FindUserByUsername returns the first user whose username matches ignoring case.
func (r *Registry) FindUserByUsername(username string) (*User, bool) {
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return user, true
		}
	}

	return nil, false
}

func (r *Registry) Authenticate(username, password string) (*User, error) {
	user, ok := r.FindUserByUsername(username)
	if !ok {
		log.Warn().Str("username", username).Msg("registry: unknown username")
		return nil, ErrInvalidCredentials
	}

	if !user.PasswordMatches(password) {
		log.Warn().Str("username", user.Username).Msg("registry: password mismatch")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RestaurantAt resolves a 1-based choice from the restaurant listing.
func (r *Registry) RestaurantAt(choice int) (*Restaurant, error) {
	if choice < 1 || choice > len(r.restaurants) {
		return nil, fmt.Errorf("restaurant %d of %d: %w", choice, len(r.restaurants), ErrChoiceOutOfRange)
	}

	return r.restaurants[choice-1], nil
}

// DeliveryAgentAt resolves a 1-based choice from the delivery agent listing.
func (r *Registry) DeliveryAgentAt(choice int) (*DeliveryAgent, error) {
	if choice < 1 || choice > len(r.deliveryAgents) {
		return nil, fmt.Errorf("delivery agent %d of %d: %w", choice, len(r.deliveryAgents), ErrChoiceOutOfRange)
	}

	return r.deliveryAgents[choice-1], nil
}

// PlaceOrder records a new order under the next id. Items are not checked
// against the restaurant's menu, the delivery time may lie in the past and a
// nil user or restaurant is stored as is.
func (r *Registry) PlaceOrder(user *User, restaurant *Restaurant, items []FoodItem, address string, deliveryTime time.Time) (*Order, error) {
	reference, err := uuid.NewV4()
	if err != nil {
		log.Error().Err(err).Msg("registry: failed to generate order reference")
		return nil, fmt.Errorf("registry: failed to generate order reference: %w", err)
	}

	order := &Order{
		ID:              r.orderIDCounter,
		Reference:       reference,
		User:            user,
		Restaurant:      restaurant,
		Items:           items,
		Total:           TotalOf(items),
		DeliveryAddress: address,
		DeliveryTime:    deliveryTime,
	}
	r.orderIDCounter++
	r.orders = append(r.orders, order)

	event := log.Debug().
		Int("order_id", order.ID).
		Stringer("reference", order.Reference).
		Int("items", len(items)).
		Str("total", order.Total.StringFixed(2))
	if restaurant != nil {
		event = event.Str("restaurant", restaurant.Name)
	}
	event.Msg("registry: order placed")

	return order, nil
}

// OrdersByUser returns the orders placed by exactly this user, oldest first.
func (r *Registry) OrdersByUser(user *User) []*Order {
	userOrders := make([]*Order, 0)
	for _, order := range r.orders {
		if order.User == user {
			userOrders = append(userOrders, order)
		}
	}

	return userOrders
}

// AssignDeliveryAgent overwrites any previous assignment. A nil agent leaves
// the order unassigned.
func (r *Registry) AssignDeliveryAgent(order *Order, agent *DeliveryAgent) *Order {
	event := log.Debug().Int("order_id", order.ID)
	if previous, ok := order.DeliveryAgent(); ok {
		event = event.Str("previous_agent", previous.Name)
	}
	if agent != nil {
		event.Str("agent", agent.Name).Msg("registry: delivery agent assigned")
	} else {
		event.Msg("registry: delivery agent cleared")
	}

	order.assignDeliveryAgent(agent)

	return order
}
