package services

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrConflict        = errors.New("record already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrMovementExists  = errors.New("container movement for this voyage already exists")
	ErrCostRateMissing = errors.New("cost rate for port not found")
)
