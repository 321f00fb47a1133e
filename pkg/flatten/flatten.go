// Package flatten walks a parsed JSON value and produces an ordered list of
// work items for batch processing.
//
// A tree value is anything encoding/json produces: nil, bool, float64,
// json.Number, string, []interface{} or map[string]interface{}. The walker
// only reads the tree; it never mutates it.
package flatten

import (
	"sort"
	"strconv"
	"strings"
)

// Segment is one step in a path from the tree root: an object key or an array
// index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key creates an object-key segment.
func Key(k string) Segment {
	return Segment{Key: k}
}

// Index creates an array-index segment.
func Index(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// String renders the segment as it appears in a path.
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is the sequence of keys and indices from the tree root to a node.
type Path []Segment

// String renders the path in "/a/0/b" notation. The root path renders as "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(seg.String())
	}
	return b.String()
}

// child returns a new path extended by one segment. The parent's backing array
// is never shared, so items keep independent paths.
func (p Path) child(seg Segment) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = seg
	return next
}

// WorkItem is one unit of traversal output: a value plus its position and path
// in the tree.
type WorkItem struct {
	// Index is the item's position in the flattened, order-preserving sequence
	Index int
	// Value is the node's value (scalar or container), read-only
	Value interface{}
	// Path is the sequence of keys/indices from the tree root
	Path Path
}

// node pairs a value with its path while it waits on the traversal stack.
type node struct {
	value interface{}
	path  Path
}

// Flatten walks root and returns one WorkItem per visited node.
//
// When deep is true the walk is an iterative depth-first pre-order: a container
// is emitted before its children, array elements are visited in index order and
// object keys in ascending lexicographic order (Go maps carry no insertion
// order once a document has passed through encoding/json, so sorted keys is
// the deterministic choice). Every node is emitted, containers included.
//
// When deep is false only the direct children of a container root are emitted,
// without descending further. A scalar root yields exactly one WorkItem in
// either mode.
//
// The traversal uses an explicit stack, so tree depth is bounded by available
// heap rather than goroutine stack.
func Flatten(root interface{}, deep bool) []WorkItem {
	if !deep {
		return flattenShallow(root)
	}

	var items []WorkItem
	stack := []node{{value: root, path: Path{}}}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		items = append(items, WorkItem{
			Index: len(items),
			Value: n.value,
			Path:  n.path,
		})

		// Children are pushed in reverse so they pop in natural order.
		switch v := n.value.(type) {
		case []interface{}:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, node{value: v[i], path: n.path.child(Index(i))})
			}
		case map[string]interface{}:
			keys := sortedKeys(v)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, node{value: v[keys[i]], path: n.path.child(Key(keys[i]))})
			}
		}
	}

	return items
}

// flattenShallow emits one WorkItem per direct child of a container root, or a
// single item for a scalar root.
func flattenShallow(root interface{}) []WorkItem {
	switch v := root.(type) {
	case []interface{}:
		items := make([]WorkItem, len(v))
		for i, child := range v {
			items[i] = WorkItem{
				Index: i,
				Value: child,
				Path:  Path{Index(i)},
			}
		}
		return items
	case map[string]interface{}:
		keys := sortedKeys(v)
		items := make([]WorkItem, len(keys))
		for i, k := range keys {
			items[i] = WorkItem{
				Index: i,
				Value: v[k],
				Path:  Path{Key(k)},
			}
		}
		return items
	default:
		return []WorkItem{{Index: 0, Value: root, Path: Path{}}}
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
