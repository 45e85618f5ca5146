// Package symtab implements the stack-of-scopes symbol table shared by the
// semantic checker and the evaluator: push/pop frame lifecycle, lookup
// through all open scopes innermost-first, redefinition detection in the
// current scope, and in-place assignment into (possibly nested) array
// cells.
package symtab

import (
	"strings"

	"github.com/roverscript/roverscript/internal/types"
)

// Symbol is one declared name: its static type information plus, once the
// evaluator is running, its live value. The checker only ever populates
// Base/Shape; Value stays nil until the evaluator's matching Decl executes.
type Symbol struct {
	Base  types.Base
	Shape []int // declared array dimension sizes, empty for a scalar

	// Value holds the runtime value once this symbol has been initialized
	// by the evaluator. For a scalar it holds whatever Value type the
	// caller's interp package uses (an `any` stored opaquely); for an
	// array it holds a nested []any, one level of slice per Shape entry,
	// whose leaves are scalar values of the same kind.
	Value any
}

// scope is one frame: a flat name -> symbol map.
type scope struct {
	names map[string]*Symbol
}

func newScope() *scope { return &scope{names: make(map[string]*Symbol)} }

// Table is a non-empty-while-in-use stack of scopes.
type Table struct {
	frames []*scope
}

// New returns an empty Table. Push must be called before Declare/Resolve
// are used: the stack must be non-empty whenever a block is being
// processed.
func New() *Table {
	return &Table{}
}

// Push opens a new innermost scope.
func (t *Table) Push() {
	t.frames = append(t.frames, newScope())
}

// Pop closes the innermost scope.
func (t *Table) Pop() {
	t.frames = t.frames[:len(t.frames)-1]
}

// Depth returns the number of open scope frames, used to assert the
// push/pop balance invariant in tests.
func (t *Table) Depth() int {
	return len(t.frames)
}

func key(name string) string { return strings.ToLower(name) }

// Declare inserts sym into the current (innermost) scope under name. It
// returns false if name is already declared in that same scope (the
// caller raises a RedefinedError; Declare itself carries no position).
func (t *Table) Declare(name string, sym *Symbol) bool {
	top := t.frames[len(t.frames)-1]
	k := key(name)
	if _, exists := top.names[k]; exists {
		return false
	}
	top.names[k] = sym
	return true
}

// Resolve searches frames innermost-first and returns the first match, or
// nil if name is not declared in any open scope.
func (t *Table) Resolve(name string) *Symbol {
	k := key(name)
	for i := len(t.frames) - 1; i >= 0; i-- {
		if sym, ok := t.frames[i].names[k]; ok {
			return sym
		}
	}
	return nil
}

// AssignCell resolves name and writes val into the cell indices levels
// deep into its stored array value (or, for an empty indices list,
// directly replaces the symbol's scalar value). It mutates the actual
// stored array in place, never a copy.
func (t *Table) AssignCell(name string, indices []int, val any) error {
	sym := t.Resolve(name)
	if sym == nil {
		return &undefinedError{name: name}
	}
	if len(indices) == 0 {
		sym.Value = val
		return nil
	}

	cur, ok := sym.Value.([]any)
	if !ok {
		return &shapeError{name: name}
	}
	for i := 0; i < len(indices)-1; i++ {
		idx := indices[i]
		if idx < 0 || idx >= len(cur) {
			return &rangeError{name: name, index: idx, size: len(cur)}
		}
		next, ok := cur[idx].([]any)
		if !ok {
			return &shapeError{name: name}
		}
		cur = next
	}
	last := indices[len(indices)-1]
	if last < 0 || last >= len(cur) {
		return &rangeError{name: name, index: last, size: len(cur)}
	}
	cur[last] = val
	return nil
}

// ReadCell resolves name and reads the cell indices levels deep, mirroring
// AssignCell's traversal for l-value reads.
func (t *Table) ReadCell(name string, indices []int) (any, error) {
	sym := t.Resolve(name)
	if sym == nil {
		return nil, &undefinedError{name: name}
	}
	cur := sym.Value
	for _, idx := range indices {
		arr, ok := cur.([]any)
		if !ok {
			return nil, &shapeError{name: name}
		}
		if idx < 0 || idx >= len(arr) {
			return nil, &rangeError{name: name, index: idx, size: len(arr)}
		}
		cur = arr[idx]
	}
	return cur, nil
}

type undefinedError struct{ name string }

func (e *undefinedError) Error() string { return "undefined variable " + e.name }

type shapeError struct{ name string }

func (e *shapeError) Error() string { return "internal error: malformed array value for " + e.name }

type rangeError struct {
	name        string
	index, size int
}

func (e *rangeError) Error() string { return "index out of range for " + e.name }

// IndexOutOfRange reports whether err is a range error, exposing the
// offending index and bound so callers can build an IndexOutOfRangeError
// with full position context.
func IndexOutOfRange(err error) (index, size int, ok bool) {
	if re, isRange := err.(*rangeError); isRange {
		return re.index, re.size, true
	}
	return 0, 0, false
}
