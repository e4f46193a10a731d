// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Unset is the string representation of a Variable without a value.
const Unset = "n/a"

type (
	// VarFloat64 is a type alias for Variable[float64], representing a float64 value with initialization tracking.
	VarFloat64 = Variable[float64]

	// VarInt is a type alias for Variable[int], representing an integer value with initialization tracking.
	VarInt = Variable[int]
)

// Variable represents a generic type wrapper that holds a value and tracks its initialization state.
// A JSON null or a missing array element decodes into an unset Variable.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable creates and returns a new Variable instance initialized with the provided value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// Value retrieves the current value stored in the Variable.
func (v Variable[T]) Value() T {
	return v.value
}

// Set assigns the provided value to the Variable and marks it as initialized.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// IsSet returns true if the Variable has been initialized with a value, otherwise false.
func (v Variable[T]) IsSet() bool {
	return v.isset
}

// String returns a string representation of the Variable.
func (v Variable[T]) String() string {
	if !v.isset {
		return Unset
	}
	return fmt.Sprint(v.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Variable[T]) UnmarshalJSON(b []byte) error {
	var zero T
	v.value, v.isset = zero, false
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var val T
	if err := json.Unmarshal(b, &val); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	v.Set(val)
	return nil
}

// MarshalJSON implements json.Marshaler. Unset values are encoded as null.
func (v Variable[T]) MarshalJSON() ([]byte, error) {
	if !v.isset {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
