// Package console runs the order placement dialogue on a line based terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/food-delivery/internal/food"
)

var (
	ErrInvalidCredentials         = errors.New("login rejected")
	ErrInvalidRestaurantChoice    = errors.New("invalid restaurant choice")
	ErrInvalidDeliveryAgentChoice = errors.New("invalid delivery agent choice")
)

// Registry is the part of food.Registry the dialogue needs.
type Registry interface {
	Authenticate(username, password string) (*food.User, error)
	Restaurants() []*food.Restaurant
	RestaurantAt(choice int) (*food.Restaurant, error)
	PlaceOrder(user *food.User, restaurant *food.Restaurant, items []food.FoodItem, address string, deliveryTime time.Time) (*food.Order, error)
	DeliveryAgents() []*food.DeliveryAgent
	DeliveryAgentAt(choice int) (*food.DeliveryAgent, error)
	AssignDeliveryAgent(order *food.Order, agent *food.DeliveryAgent) *food.Order
}

var _ Registry = (*food.Registry)(nil)

type Session struct {
	registry Registry
	in       *bufio.Reader
	out      io.Writer
}

func NewSession(registry Registry, in io.Reader, out io.Writer) *Session {
	return &Session{
		registry: registry,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

type readResult struct {
	text string
	err  error
}

// IsAborted reports whether err ends a run after the user has been told why.
func IsAborted(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidRestaurantChoice) ||
		errors.Is(err, ErrInvalidDeliveryAgentChoice) ||
		errors.Is(err, ErrInvalidDeliveryTime)
}

// Run walks through login, restaurant and item selection, order placement and
// delivery agent assignment, then prints the order summary. Any rejected input
// ends the run. An order placed before a failed agent choice stays in the
// registry without an agent.
func (s *Session) Run(ctx context.Context) (*food.Order, error) {
	username, err := s.prompt(ctx, "Enter your username: ")
	if err != nil {
		return nil, err
	}
	password, err := s.prompt(ctx, "Enter your password: ")
	if err != nil {
		return nil, err
	}

	user, err := s.registry.Authenticate(username, password)
	if err != nil {
		s.println("Invalid username or password. Exiting...")
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	log.Info().Str("username", user.Username).Msg("console: user logged in")

	s.printf("Welcome, %s!\n", user.Username)

	restaurant, err := s.chooseRestaurant(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.chooseItems(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	address, err := s.prompt(ctx, "Enter your delivery address: ")
	if err != nil {
		return nil, err
	}

	rawTime, err := s.prompt(ctx, "Enter your delivery time (e.g., '2023-08-01 19:30'): ")
	if err != nil {
		return nil, err
	}
	deliveryTime, err := ParseDeliveryTime(rawTime)
	if err != nil {
		s.println("Invalid delivery time format. Exiting...")
		return nil, err
	}

	order, err := s.registry.PlaceOrder(user, restaurant, items, address, deliveryTime)
	if err != nil {
		return nil, fmt.Errorf("console: failed to place order: %w", err)
	}

	agent, err := s.chooseDeliveryAgent(ctx)
	if err != nil {
		log.Warn().Int("order_id", order.ID).Msg("console: order left without delivery agent")
		return nil, err
	}

	s.registry.AssignDeliveryAgent(order, agent)
	s.printSummary(order)

	return order, nil
}

func (s *Session) chooseRestaurant(ctx context.Context) (*food.Restaurant, error) {
	s.println("Available Restaurants:")
	for i, r := range s.registry.Restaurants() {
		s.printf("%d. %s\n", i+1, r.Name)
	}

	input, err := s.prompt(ctx, "Enter the number corresponding to the restaurant: ")
	if err != nil {
		return nil, err
	}

	restaurant, err := pickFrom(input, s.registry.RestaurantAt)
	if err != nil {
		s.println("Invalid restaurant choice. Exiting...")
		return nil, fmt.Errorf("%w: %w", ErrInvalidRestaurantChoice, err)
	}

	return restaurant, nil
}

func (s *Session) chooseItems(ctx context.Context, restaurant *food.Restaurant) ([]food.FoodItem, error) {
	menu := restaurant.Menu()

	s.printf("Menu of %s:\n", restaurant.Name)
	for i, item := range menu {
		s.printf("%d. %s - $%s - %s\n", i+1, item.Name, item.Price.StringFixed(2), item.Description)
	}

	input, err := s.prompt(ctx, "Enter the numbers corresponding to the food items you want to order (separated by commas): ")
	if err != nil {
		return nil, err
	}

	indices, err := ParseItemSelection(input, len(menu))
	if err != nil {
		s.println("Invalid food item selection. Exiting...")
		return nil, err
	}

	items := make([]food.FoodItem, 0, len(indices))
	for _, i := range indices {
		items = append(items, menu[i])
	}

	return items, nil
}

func (s *Session) chooseDeliveryAgent(ctx context.Context) (*food.DeliveryAgent, error) {
	s.println("Available Delivery Agents:")
	for i, agent := range s.registry.DeliveryAgents() {
		s.printf("%d. %s\n", i+1, agent.Name)
	}

	input, err := s.prompt(ctx, "Enter the number corresponding to the delivery agent: ")
	if err != nil {
		return nil, err
	}

	agent, err := pickFrom(input, s.registry.DeliveryAgentAt)
	if err != nil {
		s.println("Invalid delivery agent choice. Exiting...")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDeliveryAgentChoice, err)
	}

	return agent, nil
}

func (s *Session) printSummary(order *food.Order) {
	s.println("Order Details:")
	s.printf("Order ID: %d\n", order.ID)
	s.printf("Tracking Reference: %s\n", order.Reference)
	s.printf("User: %s\n", order.User.Username)
	s.printf("Restaurant: %s\n", order.Restaurant.Name)
	s.println("Items:")
	for _, item := range order.Items {
		s.printf("- %s - $%s\n", item.Name, item.Price.StringFixed(2))
	}
	s.printf("Total Amount: $%s\n", order.Total.StringFixed(2))
	s.printf("Delivery Address: %s\n", order.DeliveryAddress)
	s.printf("Delivery Time: %s\n", order.DeliveryTime.Format(DeliveryTimeLayout))
	if agent, ok := order.DeliveryAgent(); ok {
		s.printf("Assigned Delivery Agent: %s\n", agent.Name)
	}
}

// pickFrom resolves a typed 1-based choice through at.
func pickFrom[T any](input string, at func(int) (T, error)) (T, error) {
	choice, err := ParseChoice(input)
	if err != nil {
		var zero T
		return zero, err
	}
	return at(choice)
}

// prompt writes label and reads one line without its line terminator. A
// canceled ctx ends the wait even while the read is still blocked.
func (s *Session) prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.printf("%s", label)

	result := make(chan readResult, 1)
	go func() {
		text, err := s.readLine()
		result <- readResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-result:
		return r.text, r.err
	}
}

func (s *Session) readLine() (string, error) {
	text, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("console: failed to read input: %w", err)
		}
		if text == "" {
			return "", fmt.Errorf("console: input closed: %w", io.ErrUnexpectedEOF)
		}
	}

	return strings.TrimRight(text, "\r\n"), nil
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}
