package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidTransition  = errors.New("status transition not permitted")
	ErrConflict           = errors.New("order modified concurrently")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSweepRunning       = errors.New("sweep already running")
)
