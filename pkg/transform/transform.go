// Package transform defines the per-item transformation applied by the
// processor, along with ready-made transform implementations.
package transform

import "github.com/wehubfusion/Daedalus/pkg/flatten"

// Context carries an item's position to the transform function.
type Context struct {
	// Index is the item's position in the flattened sequence
	Index int
	// Path is the item's location in the tree
	Path flatten.Path
}

// Output is the value a transform produces for one item.
type Output struct {
	// Value is the transformed value
	Value interface{}
	// Metadata carries optional transform-specific annotations
	Metadata map[string]interface{}
}

// Func transforms a single tree value. A returned error marks the item as
// failed without affecting any other item in the batch.
//
// A Func used with the worker pool must be safe for concurrent calls; a Func
// that captures job-specific mutable state must only be run sequentially.
type Func func(value interface{}, tc Context) (Output, error)

// Identity returns the default transform: it passes every value through
// unchanged. Used whenever no transform is configured, so the executor never
// branches on a nil function.
func Identity() Func {
	return func(value interface{}, _ Context) (Output, error) {
		return Output{Value: value}, nil
	}
}
