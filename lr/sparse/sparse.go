/*
Package sparse implements a simple type for sparse integer matrices.
It is used for the parser tables (GOTO-table and ACTION-table) of package lr.
Every entry in the table is either a single int32 or a pair (int32,int32);
the second slot of a pair holds a conflicting entry, if any.

This implementation uses the COO algorithm (a.k.a. triplet-encoding).

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// Matrix is a sparse matrix of int32 values. Construct with
//
//     M := sparse.NewMatrix(10, 10, sparse.DefaultNullValue)
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value at an occupied cell
//     v, w := M.Values(2, 3)         // returns (4711, 123)
//     v = M.Value(9, 9)              // returns the null-value
//
// Values cannot be deleted, but may be overwritten with the null-value.
// Space for null-values is not re-claimed.
type Matrix struct {
	cells   []cell
	rowcnt  int
	colcnt  int
	nullval int32
}

// A cell stores up to two values at a matrix position. Cells are kept sorted
// by (row, col) so lookup can use binary search.
type cell struct {
	row, col int
	primary  int32
	second   int32
}

// NewMatrix creates a matrix of size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewMatrix(m, n int, nullValue int32) *Matrix {
	return &Matrix{
		cells:   []cell{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// M returns the row count.
func (m *Matrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *Matrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value.
func (m *Matrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of occupied positions in the matrix.
func (m *Matrix) ValueCount() int {
	return len(m.cells)
}

// locate returns the index of the cell for (i,j), or the insertion position
// and false if the position is unoccupied.
func (m *Matrix) locate(i, j int) (int, bool) {
	at := sort.Search(len(m.cells), func(k int) bool {
		c := m.cells[k]
		return c.row > i || (c.row == i && c.col >= j)
	})
	if at < len(m.cells) && m.cells[at].row == i && m.cells[at].col == j {
		return at, true
	}
	return at, false
}

// Value returns the primary value at position (i,j), or NullValue.
func (m *Matrix) Value(i, j int) int32 {
	if at, ok := m.locate(i, j); ok {
		return m.cells[at].primary
	}
	return m.nullval
}

// Values returns the pair of values at position (i,j), or a pair of
// null-values.
func (m *Matrix) Values(i, j int) (int32, int32) {
	if at, ok := m.locate(i, j); ok {
		return m.cells[at].primary, m.cells[at].second
	}
	return m.nullval, m.nullval
}

// Set a value in the matrix at position (i,j), overwriting any previous
// values.
func (m *Matrix) Set(i, j int, value int32) *Matrix {
	at, ok := m.locate(i, j)
	if ok {
		m.cells[at].primary = value
		m.cells[at].second = m.nullval
		return m
	}
	m.insert(at, i, j, value)
	return m
}

// Add a value in the matrix at position (i,j). If the position is occupied,
// the value goes into the second slot of the cell, preserving the primary
// entry. A full cell overwrites the second slot.
func (m *Matrix) Add(i, j int, value int32) *Matrix {
	at, ok := m.locate(i, j)
	if !ok {
		m.insert(at, i, j, value)
		return m
	}
	if m.cells[at].primary == m.nullval {
		m.cells[at].primary = value
	} else {
		m.cells[at].second = value
	}
	return m
}

func (m *Matrix) insert(at, i, j int, value int32) {
	m.cells = append(m.cells, cell{})
	copy(m.cells[at+1:], m.cells[at:])
	m.cells[at] = cell{row: i, col: j, primary: value, second: m.nullval}
}

func (c cell) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", c.row, c.col, c.primary, c.second)
}
