// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"encoding/json"
	"testing"
)

func TestNewVariable(t *testing.T) {
	v := NewVariable(12.5)
	if !v.IsSet() {
		t.Fatal("expected variable to be set")
	}
	if v.Value() != 12.5 {
		t.Errorf("expected value to be 12.5, got %f", v.Value())
	}
	if v.String() != "12.5" {
		t.Errorf("expected string to be 12.5, got %s", v.String())
	}
}

func TestVariable_String(t *testing.T) {
	var v VarFloat64
	if v.IsSet() {
		t.Fatal("expected zero variable to be unset")
	}
	if v.String() != Unset {
		t.Errorf("expected string of unset variable to be %q, got %q", Unset, v.String())
	}
	v.Set(0)
	if !v.IsSet() {
		t.Error("expected variable to be set after Set")
	}
	if v.String() != "0" {
		t.Errorf("expected string to be 0, got %s", v.String())
	}
}

func TestVariable_UnmarshalJSON(t *testing.T) {
	t.Run("arrays with null elements decode into unset values", func(t *testing.T) {
		var vals []VarFloat64
		if err := json.Unmarshal([]byte(`[1.5, null, 0]`), &vals); err != nil {
			t.Fatalf("failed to decode: %s", err)
		}
		if len(vals) != 3 {
			t.Fatalf("expected 3 values, got %d", len(vals))
		}
		if !vals[0].IsSet() || vals[0].Value() != 1.5 {
			t.Errorf("expected first value to be 1.5, got %s", vals[0])
		}
		if vals[1].IsSet() {
			t.Errorf("expected second value to be unset, got %s", vals[1])
		}
		if !vals[2].IsSet() || vals[2].Value() != 0 {
			t.Errorf("expected third value to be 0, got %s", vals[2])
		}
	})
	t.Run("integers decode", func(t *testing.T) {
		var vals []VarInt
		if err := json.Unmarshal([]byte(`[0, 61, null]`), &vals); err != nil {
			t.Fatalf("failed to decode: %s", err)
		}
		if vals[1].Value() != 61 {
			t.Errorf("expected 61, got %d", vals[1].Value())
		}
		if vals[2].IsSet() {
			t.Error("expected null to be unset")
		}
	})
	t.Run("invalid values fail", func(t *testing.T) {
		var vals []VarInt
		if err := json.Unmarshal([]byte(`["sunny"]`), &vals); err == nil {
			t.Error("expected decoding to fail")
		}
	})
}

func TestVariable_MarshalJSON(t *testing.T) {
	vals := []VarFloat64{NewVariable(2.5), {}}
	data, err := json.Marshal(vals)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	if string(data) != `[2.5,null]` {
		t.Errorf("expected [2.5,null], got %s", data)
	}
}
