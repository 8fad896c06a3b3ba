package types

import (
	"errors"
	"fmt"
)

// Load errors
var (
	ErrLoad           = errors.New("failed to load dataset")
	ErrMissingColumn  = errors.New("required column missing")
	ErrMalformedValue = errors.New("malformed value")
)

// Compute errors
var (
	ErrCompute     = errors.New("failed to compute report")
	ErrEmptySubset = fmt.Errorf("%w: aggregation over empty set", ErrCompute)
)

// Configuration errors
var (
	ErrUnknownSource = errors.New("unknown dataset source")
	ErrUnknownFormat = errors.New("unknown output format")
)
