// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package classify

import (
	"errors"
	"testing"
)

func TestTable_Classify(t *testing.T) {
	table := Default()
	tests := []struct {
		codes []int
		want  Category
	}{
		{[]int{0, 1}, Clear},
		{[]int{2, 3, 45, 48}, Cloudy},
		{[]int{51, 53, 55, 61, 63, 65, 80, 81, 82}, Rain},
		{[]int{71, 73, 75, 77, 85, 86}, Snow},
		{[]int{95, 96, 99}, Thunderstorm},
		{[]int{-1, 4, 56, 57, 66, 67, 100, 1 << 20}, Overcast},
	}
	for _, tc := range tests {
		t.Run(tc.want.Name, func(t *testing.T) {
			for _, code := range tc.codes {
				if got := table.Classify(code); got != tc.want {
					t.Errorf("expected code %d to be %q, got %q", code, tc.want.Name, got.Name)
				}
			}
		})
	}
}

func TestTable_Classify_Deterministic(t *testing.T) {
	table := Default()
	for code := -5; code <= 105; code++ {
		first := table.Classify(code)
		if second := table.Classify(code); first != second {
			t.Errorf("expected code %d to classify identically, got %q and %q", code, first.Name,
				second.Name)
		}
	}
}

func TestTable_Boundaries(t *testing.T) {
	table := Default()
	if table.Classify(0) != Clear {
		t.Errorf("expected code 0 to be clear, got %q", table.Classify(0).Name)
	}
	if table.Classify(100) != table.Fallback() {
		t.Errorf("expected code 100 to be the fallback, got %q", table.Classify(100).Name)
	}
	if table.Classify(61) != Rain {
		t.Errorf("expected code 61 to be rain, got %q", table.Classify(61).Name)
	}
}

func TestNewTable(t *testing.T) {
	t.Run("first matching group wins on overlap", func(t *testing.T) {
		hot := Category{Name: "hot", Color: "#ff0000", Icon: "🔥"}
		table, err := NewTable([]Group{
			{Category: hot, Codes: []int{0}},
			{Category: Clear, Codes: []int{0, 1}},
		}, Overcast)
		if err != nil {
			t.Fatalf("failed to create table: %s", err)
		}
		if table.Classify(0) != hot {
			t.Errorf("expected first group to win, got %q", table.Classify(0).Name)
		}
		if table.Classify(1) != Clear {
			t.Errorf("expected code 1 to be clear, got %q", table.Classify(1).Name)
		}
	})
	t.Run("groups are copied", func(t *testing.T) {
		groups := DefaultGroups()
		table, err := NewTable(groups, Overcast)
		if err != nil {
			t.Fatalf("failed to create table: %s", err)
		}
		groups[0].Codes[0] = 99
		groups[0].Name = "changed"
		if table.Classify(0) != Clear {
			t.Error("expected table to be unaffected by changes to its input")
		}
	})
	t.Run("categories are listed in order", func(t *testing.T) {
		cats := Default().Categories()
		if len(cats) != 6 {
			t.Fatalf("expected 6 categories, got %d", len(cats))
		}
		if cats[0] != Clear || cats[5] != Overcast {
			t.Errorf("unexpected category order: %+v", cats)
		}
	})
	t.Run("invalid tables fail", func(t *testing.T) {
		tests := []struct {
			name     string
			groups   []Group
			fallback Category
		}{
			{"no groups", nil, Overcast},
			{"invalid fallback color", DefaultGroups(), Category{Name: "x", Color: "grey", Icon: "?"}},
			{"empty fallback", DefaultGroups(), Category{}},
			{"group without codes", []Group{{Category: Clear}}, Overcast},
			{"group with negative code", []Group{{Category: Clear, Codes: []int{-1}}}, Overcast},
			{
				"group without name",
				[]Group{{Category: Category{Color: "#fff", Icon: "x"}, Codes: []int{1}}},
				Overcast,
			},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := NewTable(tc.groups, tc.fallback); err == nil {
					t.Error("expected table creation to fail")
				}
			})
		}
	})
	t.Run("no groups returns sentinel", func(t *testing.T) {
		_, err := NewTable(nil, Overcast)
		if !errors.Is(err, ErrNoGroups) {
			t.Errorf("expected %s, got %v", ErrNoGroups, err)
		}
	})
}
