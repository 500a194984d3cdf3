// generate/errors.go
// Copyright(c) 2024-2025 doc29 contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package generate

import (
	"errors"
	"fmt"
)

var (
	ErrRequiredLookup    = errors.New("required value not found")
	ErrDuplicateFlightID = errors.New("duplicate flight id")
)

// LookupError reports a value that generation cannot proceed without,
// such as the selected runway or the meteorological conditions.
type LookupError struct {
	Sheet string
	What  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Sheet, e.What, ErrRequiredLookup)
}

func (e *LookupError) Unwrap() error { return ErrRequiredLookup }
