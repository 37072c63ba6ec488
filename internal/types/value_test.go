// Package types defines the runtime value representation.
package types

import "testing"

func TestValueConstructorsAndKind(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"Undefined", Undefined(), UNDEFINED},
		{"Int(0)", Int(0), INTEGER},
		{"Int(42)", Int(42), INTEGER},
		{"Int(-7)", Int(-7), INTEGER},
		{"Bool true", Bool(true), BOOLEAN},
		{"Bool false", Bool(false), BOOLEAN},
		{"NewList", NewList(), LIST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestValuePredicates(t *testing.T) {
	u, i, b, l := Undefined(), Int(1), Bool(true), NewList()

	preds := []struct {
		name string
		v    Value
		want [4]bool // IsUndefined, IsInt, IsBool, IsList
	}{
		{"Undefined", u, [4]bool{true, false, false, false}},
		{"Int", i, [4]bool{false, true, false, false}},
		{"Bool", b, [4]bool{false, false, true, false}},
		{"List", l, [4]bool{false, false, false, true}},
	}

	for _, tt := range preds {
		got := [4]bool{tt.v.IsUndefined(), tt.v.IsInt(), tt.v.IsBool(), tt.v.IsList()}
		if got != tt.want {
			t.Errorf("%s predicates = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"zero", Int(0), "0"},
		{"positive", Int(42), "42"},
		{"negative", Int(-42), "-42"},
		{"true", Bool(true), "True"},
		{"false", Bool(false), "False"},
		{"undefined", Undefined(), "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueStringEmptyList(t *testing.T) {
	if got := NewList().String(); got != "[]" {
		t.Errorf("String() = %q, want %q", got, "[]")
	}
}

func TestValueStringNestedList(t *testing.T) {
	outer := NewList()
	inner := NewList()
	inner.List().Add(Int(1), Int(2))
	outer.List().Add(inner, Int(3), Bool(true))

	want := "[[1, 2], 3, True]"
	if got := outer.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestValueCopyIsIndependentForLists(t *testing.T) {
	original := NewList()
	original.List().Add(Int(1), Int(2))

	copied := original.Copy()
	copied.List().Add(Int(3))

	if original.List().Size() != 2 {
		t.Errorf("original list mutated by copy: size = %d, want 2", original.List().Size())
	}
	if copied.List().Size() != 3 {
		t.Errorf("copied list size = %d, want 3", copied.List().Size())
	}
}

func TestValueCopyDeepCopiesNestedLists(t *testing.T) {
	inner := NewList()
	inner.List().Add(Int(1))
	outer := NewList()
	outer.List().Add(inner)

	copied := outer.Copy()
	copiedInner, _ := copied.List().Get(0)
	copiedInner.(Value).List().Add(Int(99))

	originalInner, _ := outer.List().Get(0)
	if originalInner.(Value).List().Size() != 1 {
		t.Errorf("nested list mutated through copy: size = %d, want 1", originalInner.(Value).List().Size())
	}
}

func TestValueCopyIsNoopForNonLists(t *testing.T) {
	for _, v := range []Value{Int(5), Bool(false), Undefined()} {
		if got := v.Copy(); got.String() != v.String() || got.Kind() != v.Kind() {
			t.Errorf("Copy() of non-list value changed it: got %v, want %v", got, v)
		}
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Value
		want    bool
		wantErr bool
	}{
		{"equal ints", Int(3), Int(3), true, false},
		{"unequal ints", Int(3), Int(4), false, false},
		{"equal bools", Bool(true), Bool(true), true, false},
		{"unequal bools", Bool(true), Bool(false), false, false},
		{"mismatched kinds", Int(1), Bool(true), false, true},
		{"undefined vs int", Undefined(), Int(0), false, true},
		{"lists always rejected", NewList(), NewList(), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Equal(tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Equal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
