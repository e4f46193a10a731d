// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package classify maps WMO weather codes to display categories.
package classify

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNoGroups = errors.New("classification table requires at least one group")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Category is the display grouping of a weather code.
type Category struct {
	Name  string `validate:"required"`
	Color string `validate:"required,hexcolor"`
	Icon  string `validate:"required"`
}

// Group assigns a list of weather codes to a Category.
type Group struct {
	Category
	Codes []int `validate:"required,min=1,dive,gte=0"`
}

// Table classifies weather codes. It is immutable and safe for concurrent use.
type Table struct {
	groups   []Group
	fallback Category
	index    map[int]int
}

var (
	Clear        = Category{Name: "clear", Color: "#ffe082", Icon: "☀️"}
	Cloudy       = Category{Name: "cloudy", Color: "#b3e5fc", Icon: "⛅"}
	Rain         = Category{Name: "rain", Color: "#b2dfdb", Icon: "🌦️"}
	Snow         = Category{Name: "snow", Color: "#e1f5fe", Icon: "❄️"}
	Thunderstorm = Category{Name: "thunderstorm", Color: "#b39ddb", Icon: "⛈️"}
	Overcast     = Category{Name: "overcast", Color: "#cfd8dc", Icon: "☁️"}
)

// DefaultGroups returns the built-in classification groups.
func DefaultGroups() []Group {
	return []Group{
		{Category: Clear, Codes: []int{0, 1}},
		{Category: Cloudy, Codes: []int{2, 3, 45, 48}},
		{Category: Rain, Codes: []int{51, 53, 55, 61, 63, 65, 80, 81, 82}},
		{Category: Snow, Codes: []int{71, 73, 75, 77, 85, 86}},
		{Category: Thunderstorm, Codes: []int{95, 96, 99}},
	}
}

// NewTable validates groups and fallback and builds a lookup index. When a code is listed
// in more than one group, the first group keeps it.
func NewTable(groups []Group, fallback Category) (*Table, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}
	if err := validate.Struct(fallback); err != nil {
		return nil, fmt.Errorf("invalid fallback category: %w", err)
	}
	table := &Table{
		groups:   make([]Group, len(groups)),
		fallback: fallback,
		index:    make(map[int]int),
	}
	for i, group := range groups {
		if err := validate.Struct(group); err != nil {
			return nil, fmt.Errorf("invalid classification group %q: %w", group.Name, err)
		}
		codes := make([]int, len(group.Codes))
		copy(codes, group.Codes)
		table.groups[i] = Group{Category: group.Category, Codes: codes}
		for _, code := range codes {
			if _, ok := table.index[code]; !ok {
				table.index[code] = i
			}
		}
	}
	return table, nil
}

// Default returns the built-in table.
func Default() *Table {
	table, err := NewTable(DefaultGroups(), Overcast)
	if err != nil {
		panic(err)
	}
	return table
}

// Classify returns the category of code. Every code maps to exactly one category; codes
// not listed in any group map to the fallback.
func (t *Table) Classify(code int) Category {
	if idx, ok := t.index[code]; ok {
		return t.groups[idx].Category
	}
	return t.fallback
}

// Fallback returns the category used for unlisted codes.
func (t *Table) Fallback() Category {
	return t.fallback
}

// Categories returns all categories of the table in order, the fallback last.
func (t *Table) Categories() []Category {
	out := make([]Category, 0, len(t.groups)+1)
	for _, group := range t.groups {
		out = append(out, group.Category)
	}
	return append(out, t.fallback)
}
