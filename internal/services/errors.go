package services

import "errors"

var (
	// ErrDatasetNotLoaded is returned when no snapshot is available yet
	ErrDatasetNotLoaded = errors.New("movie dataset not loaded")

	// ErrInvalidInput is returned for query arguments the core rejects
	ErrInvalidInput = errors.New("invalid input")
)
