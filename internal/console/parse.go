package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DeliveryTimeLayout is the only accepted delivery time shape, e.g. "2023-08-01 19:30".
const DeliveryTimeLayout = "2006-01-02 15:04"

var (
	ErrInvalidChoice       = errors.New("choice is not a number")
	ErrInvalidDeliveryTime = errors.New("invalid delivery time format")
)

// ItemSelectionError reports a token in the item list that is not a number.
// Unlike out-of-range indices, which are skipped, it ends the run.
type ItemSelectionError struct {
	Token string
	Err   error
}

func (e *ItemSelectionError) Error() string {
	return fmt.Sprintf("invalid food item selection %q: %v", e.Token, e.Err)
}

func (e *ItemSelectionError) Unwrap() error {
	return e.Err
}

// ParseChoice parses a 1-based menu choice. Range checks are left to the caller.
func ParseChoice(input string) (int, error) {
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, strings.TrimSpace(input))
	}
	return choice, nil
}

// ParseItemSelection turns a comma separated list of 1-based positions into
// 0-based menu indices. Repeated positions are kept, positions outside the
// menu are dropped. Empty tokens after the last comma are ignored, so "1, 2,"
// selects two items and "," selects none. An empty line and an empty token
// between two commas are rejected.
func ParseItemSelection(input string, menuSize int) ([]int, error) {
	tokens := strings.Split(input, ",")
	if input != "" {
		for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}
	indices := make([]int, 0, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		position, err := strconv.Atoi(token)
		if err != nil {
			return nil, &ItemSelectionError{Token: token, Err: err}
		}

		index := position - 1
		if index >= 0 && index < menuSize {
			indices = append(indices, index)
		}
	}

	return indices, nil
}

// ParseDeliveryTime parses input in DeliveryTimeLayout in the local time zone.
func ParseDeliveryTime(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	// time.Parse accepts a single digit hour for "15".
	if len(input) != len(DeliveryTimeLayout) {
		return time.Time{}, fmt.Errorf("%w: %q does not match %q", ErrInvalidDeliveryTime, input, DeliveryTimeLayout)
	}

	t, err := time.ParseInLocation(DeliveryTimeLayout, input, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDeliveryTime, err)
	}
	return t, nil
}
