package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrInvalidParameter = errors.New("invalid parameter")

	// Numeric errors
	ErrIntegrationBudget = errors.New("numeric integration budget exceeded")

	// Lookup errors
	ErrSweepNotFound = errors.New("sweep not found")
)

// Error constructors with context
func NewInvalidParameterError(param string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, param, reason)
}

func NewIntegrationBudgetError(nodes int, residual float64) error {
	return fmt.Errorf("%w: %d nodes, residual %g", ErrIntegrationBudget, nodes, residual)
}

// Error checking helpers
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsIntegrationBudget(err error) bool {
	return errors.Is(err, ErrIntegrationBudget)
}
