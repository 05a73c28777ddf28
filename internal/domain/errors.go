// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidPosition is returned when card positions are not a dense
	// 1..N sequence matching list order.
	ErrInvalidPosition = errors.New("invalid card position")
)
