package parquetio

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Reader wraps a parquet GenericReader for streaming rows of one table.
type Reader[T any] struct {
	file   *os.File
	reader *parquet.GenericReader[T]
}

// Open opens a Parquet file and returns a streaming Reader.
func Open[T any](path string) (*Reader[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	return &Reader[T]{file: f, reader: parquet.NewGenericReader[T](pf)}, nil
}

// NumRows returns the total row count from the file metadata.
func (r *Reader[T]) NumRows() int64 {
	return r.reader.NumRows()
}

// Read reads up to len(rows) records into the provided slice.
// Returns the number of rows read and io.EOF when done.
func (r *Reader[T]) Read(rows []T) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// Close releases all resources.
func (r *Reader[T]) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// ReadAll loads every row of a Parquet file into memory. Dataset tables are
// small, so this is the common path for the loader and tests.
func ReadAll[T any](path string) ([]T, error) {
	r, err := Open[T](path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	all := make([]T, 0, r.NumRows())
	buf := make([]T, 256)
	for {
		n, err := r.Read(buf)
		all = append(all, buf[:n]...)
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
