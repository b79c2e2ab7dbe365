package services

import "errors"

var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// MsgInvalidDishes is shown to the client when the dish list is empty, missing or too long.
const MsgInvalidDishes = "Список страв має містити від 1 до 10 елементів"

// ValidationError reports client data that violates a constraint.
// Message is safe to show to the client.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }
