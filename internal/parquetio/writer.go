package parquetio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// WriteTable writes rows to a new Parquet file at path, replacing any
// existing file. Returns the number of rows written.
func WriteTable[T any](path string, rows []T) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[T](f)
	n, err := w.Write(rows)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close parquet file: %w", err)
	}
	return int64(n), nil
}
