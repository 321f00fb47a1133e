package processor

import (
	"fmt"

	"github.com/wehubfusion/Daedalus/pkg/flatten"
	"github.com/wehubfusion/Daedalus/pkg/transform"
)

// executeItem applies the transform to a single work item. A transform error
// or panic becomes a failed Result for that item alone; it never propagates
// out of the batch. The executor has no side effects beyond invoking fn.
func executeItem(item flatten.WorkItem, fn transform.Func) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Index:   item.Index,
				Success: false,
				Error:   fmt.Sprintf("transform panic: %v", r),
			}
		}
	}()

	out, err := fn(item.Value, transform.Context{Index: item.Index, Path: item.Path})
	if err != nil {
		return Result{
			Index:   item.Index,
			Success: false,
			Error:   err.Error(),
		}
	}

	return Result{
		Index:    item.Index,
		Value:    out.Value,
		Success:  true,
		Metadata: out.Metadata,
	}
}

// executeSequential runs a batch on the caller's goroutine, in item order.
func executeSequential(items []flatten.WorkItem, fn transform.Func) []Result {
	results := make([]Result, len(items))
	for i, item := range items {
		results[i] = executeItem(item, fn)
	}
	return results
}
