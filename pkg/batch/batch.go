// Package batch partitions ordered work into fixed-size batches.
package batch

import (
	"fmt"

	"github.com/wehubfusion/Daedalus/pkg/errors"
)

// Split partitions items into ordered, contiguous batches of length size; the
// last batch may be shorter. The partition is deterministic: the same input
// always yields the same batches. A non-positive size is an invalid-option
// error so it surfaces at job start, never mid-run.
func Split[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", errors.ErrInvalidOptions, size)
	}

	numBatches := (len(items) + size - 1) / size
	batches := make([][]T, 0, numBatches)

	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end:end])
	}

	return batches, nil
}

// Count returns the number of batches Split would produce without building
// them.
func Count(itemCount, size int) int {
	if size <= 0 || itemCount <= 0 {
		return 0
	}
	return (itemCount + size - 1) / size
}
