package rederive

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrReportRepositoryRequired is returned when a report repository is not provided.
	ErrReportRepositoryRequired = errors.New("report repository required")
)

// errStop ends an iteration early without reporting a failure.
var errStop = errors.New("stop iteration")
