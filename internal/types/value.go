// Package types defines the runtime value representation.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// Kind identifies the tag of a runtime Value.
type Kind uint8

const (
	UNDEFINED Kind = iota // never-initialized sentinel; not directly constructable by a program
	INTEGER
	BOOLEAN
	LIST
)

// String returns a human-readable, capitalized name of the kind, used
// in type-mismatch diagnostics.
func (k Kind) String() string {
	switch k {
	case UNDEFINED:
		return "UNDEFINED"
	case INTEGER:
		return "INTEGER"
	case BOOLEAN:
		return "BOOLEAN"
	case LIST:
		return "LIST"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the four runtime types: INTEGER,
// BOOLEAN, LIST, and UNDEFINED. It is passed by value; LIST values
// carry a pointer to backing storage that Copy clones so that no two
// distinct bindings ever alias the same list.
type Value struct {
	kind Kind
	num  int64
	flag bool
	list *arraylist.List
}

// Undefined returns the sentinel value bound to a name that has never
// been assigned.
func Undefined() Value {
	return Value{kind: UNDEFINED}
}

// Int creates an INTEGER value.
func Int(n int64) Value {
	return Value{kind: INTEGER, num: n}
}

// Bool creates a BOOLEAN value.
func Bool(b bool) Value {
	return Value{kind: BOOLEAN, flag: b}
}

// NewList creates a fresh, empty LIST value.
func NewList() Value {
	return Value{kind: LIST, list: arraylist.New()}
}

// listOf wraps an already-populated arraylist as a LIST value.
func listOf(l *arraylist.List) Value {
	return Value{kind: LIST, list: l}
}

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == UNDEFINED }
func (v Value) IsInt() bool       { return v.kind == INTEGER }
func (v Value) IsBool() bool      { return v.kind == BOOLEAN }
func (v Value) IsList() bool      { return v.kind == LIST }

// Int returns the underlying integer. Callers must check IsInt first;
// this mirrors the evaluator's own type-checked access pattern, where
// each operator checks the operand's kind before extraction.
func (v Value) Int() int64 { return v.num }

// Bool returns the underlying boolean.
func (v Value) Bool() bool { return v.flag }

// List returns the underlying list storage.
func (v Value) List() *arraylist.List { return v.list }

// Copy returns an independent value: for LIST, a deep copy of the
// backing storage (and, recursively, of any nested lists) so that no
// mutation of the copy is ever observable through the original
// binding.
func (v Value) Copy() Value {
	if v.kind != LIST {
		return v
	}
	copied := arraylist.New()
	for _, elem := range v.list.Values() {
		copied.Add(elem.(Value).Copy())
	}
	return listOf(copied)
}

// String renders v in the language's canonical print form: integers
// as decimal, booleans as True/False, lists as "[e1, e2, ...]" with
// every element formatted recursively by the same rule.
func (v Value) String() string {
	switch v.kind {
	case INTEGER:
		return strconv.FormatInt(v.num, 10)
	case BOOLEAN:
		if v.flag {
			return "True"
		}
		return "False"
	case LIST:
		elems := v.list.Values()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.(Value).String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "undefined"
	}
}

// GoString supports %#v in diagnostic output and test failures.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s %s}", v.kind, v.String())
}

// Equal implements the language's equality operator. Both operands
// must share the same kind; comparing two LIST values is a runtime
// error even when their kinds match, per the language's explicit ban
// on list equality.
func (v Value) Equal(other Value) (bool, error) {
	if v.kind != other.kind {
		return false, fmt.Errorf("cannot compare %s and %s", v.kind, other.kind)
	}
	switch v.kind {
	case INTEGER:
		return v.num == other.num, nil
	case BOOLEAN:
		return v.flag == other.flag, nil
	case LIST:
		return false, fmt.Errorf("cannot compare LIST values for equality")
	default:
		return false, fmt.Errorf("cannot compare %s values for equality", v.kind)
	}
}
