// Package symtab implements the flat symbol table that maps declared
// identifiers to their offset in the data segment.
package symtab

import "github.com/dolthub/swiss"

// Table maps identifier names to dense, 0-based data-segment offsets. There
// is a single flat namespace; no nested scopes.
type Table struct {
	m    *swiss.Map[string, int]
	next int // next offset to hand out
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{m: swiss.NewMap[string, int](16)}
}

// Install records name as declared and assigns it the next free data-segment
// offset. It reports false if name was already installed, in which case the
// table is left unchanged.
func (t *Table) Install(name string) (offset int, ok bool) {
	if _, dup := t.m.Get(name); dup {
		return 0, false
	}
	offset = t.next
	t.m.Put(name, offset)
	t.next++
	return offset, true
}

// Lookup returns the data-segment offset assigned to name, and whether name
// is installed.
func (t *Table) Lookup(name string) (offset int, ok bool) {
	return t.m.Get(name)
}

// Len returns the number of installed identifiers, i.e. the size required
// for the data segment.
func (t *Table) Len() int {
	return t.next
}

// Reset discards all installed identifiers, returning the table to its
// initial empty state.
func (t *Table) Reset() {
	t.m = swiss.NewMap[string, int](16)
	t.next = 0
}
