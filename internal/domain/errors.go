package domain

import "errors"

// ConfigError represents a configuration error
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError wraps err for the given config field
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}

var (
	// ErrNoLiquidity is returned when one side of an order book has no levels.
	// The mid price is undefined and the product is skipped for the tick.
	ErrNoLiquidity = errors.New("no liquidity")

	// ErrMalformedState is returned when the trader data blob cannot be decoded.
	// Callers recover by starting from an empty history.
	ErrMalformedState = errors.New("malformed trader state")

	// ErrUnknownProduct is returned when a symbol has no registered strategy
	ErrUnknownProduct = errors.New("unknown product")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
