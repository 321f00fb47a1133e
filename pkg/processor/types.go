// Package processor walks a parsed JSON tree and applies a transform to every
// node in ordered batches, with live progress reporting, cooperative
// cancellation and per-item failure isolation.
package processor

import "time"

// Result is the outcome of processing one work item. The result list returned
// by a job is always in work-item index order, regardless of execution order
// across batches or workers.
type Result struct {
	// Index is the item's position in the flattened sequence
	Index int `json:"index"`
	// Value is the transformed value (nil when the item failed)
	Value interface{} `json:"value"`
	// Success reports whether the transform succeeded
	Success bool `json:"success"`
	// Error is the failure message (empty on success)
	Error string `json:"error,omitempty"`
	// Metadata carries optional transform annotations
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ItemError records one failed item in encounter order.
type ItemError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// State is a snapshot of a job's cumulative progress. It is recomputed after
// every batch and only ever read by subscribers as an immutable copy.
type State struct {
	// Total is the number of work items in the job
	Total int `json:"total"`
	// Processed is the number of items attempted so far; monotonically
	// non-decreasing and never exceeds Total
	Processed int `json:"processed"`
	// Progress is the completion percentage, 0..100
	Progress int `json:"progress"`
	// CurrentBatch is the 1-based index of the most recently completed batch
	CurrentBatch int `json:"currentBatch"`
	// TotalBatches is fixed at job start
	TotalBatches int `json:"totalBatches"`
	// Speed is the observed throughput in items per second
	Speed float64 `json:"speed"`
	// EstimatedRemaining extrapolates the time left from Speed
	EstimatedRemaining time.Duration `json:"estimatedRemaining"`
	// Errors lists failed items in encounter order, without deduplication
	Errors []ItemError `json:"errors,omitempty"`
}

// JobInfo identifies one processing invocation to emitters and logs.
type JobInfo struct {
	// ID is a UUID generated at job start
	ID string `json:"id"`
	// Total is the number of work items
	Total int `json:"total"`
	// TotalBatches is the number of batches the job will run
	TotalBatches int `json:"totalBatches"`
}
