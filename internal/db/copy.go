package db

import "github.com/jackc/pgx/v5"

// CopyRow is any row type that can express itself in COPY column order.
type CopyRow interface {
	CopyValues() []any
}

// SliceSource implements pgx.CopyFromSource over in-memory rows, with a
// fixed prefix prepended to every row (the dataset id for all orsynth
// tables). Dataset tables are small enough to hold fully in memory.
type SliceSource[T CopyRow] struct {
	prefix []any
	rows   []T
	i      int
}

// NewSliceSource creates a CopyFromSource over rows; prefix values lead
// every emitted row.
func NewSliceSource[T CopyRow](prefix []any, rows []T) *SliceSource[T] {
	return &SliceSource[T]{prefix: prefix, rows: rows, i: -1}
}

// Next advances to the next row.
func (s *SliceSource[T]) Next() bool {
	s.i++
	return s.i < len(s.rows)
}

// Values returns the current row's values in COPY column order.
func (s *SliceSource[T]) Values() ([]any, error) {
	vals := make([]any, 0, len(s.prefix)+8)
	vals = append(vals, s.prefix...)
	vals = append(vals, s.rows[s.i].CopyValues()...)
	return vals, nil
}

// Err returns any error encountered during iteration.
func (s *SliceSource[T]) Err() error {
	return nil
}

// Compile-time check that SliceSource satisfies the interface.
var _ pgx.CopyFromSource = (*SliceSource[CopyRow])(nil)
