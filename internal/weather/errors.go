// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingData matches every MissingDataError.
	ErrMissingData = errors.New("data missing or invalid")
	// ErrFetch matches every FetchError.
	ErrFetch = errors.New("error occurred while fetching data")
)

// MissingDataError is returned when the daily series lack a required value. Index is -1
// when the whole series is absent or has the wrong length.
type MissingDataError struct {
	Field string
	Index int
}

func (e *MissingDataError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s series absent or of unequal length", ErrMissingData, e.Field)
	}
	return fmt.Sprintf("%s: no %s value for day %d", ErrMissingData, e.Field, e.Index)
}

func (e *MissingDataError) Is(target error) bool {
	return target == ErrMissingData
}

// FetchError wraps any failure to retrieve or decode a forecast.
type FetchError struct {
	Provider string
	Err      error
}

// NewFetchError wraps err unless it is nil or already a FetchError or MissingDataError.
func NewFetchError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) || errors.Is(err, ErrMissingData) {
		return err
	}
	return &FetchError{Provider: provider, Err: err}
}

func (e *FetchError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("%s: %s", ErrFetch, e.Err)
	}
	return fmt.Sprintf("%s from %s: %s", ErrFetch, e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
