package transform

import (
	"fmt"
	"runtime"

	"github.com/dop251/goja"
)

// dangerousGlobals are host bindings stripped from every VM so a transform
// script cannot reach outside its sandbox.
var dangerousGlobals = []string{
	"require",
	"module",
	"exports",
	"process",
	"global",
	"__dirname",
	"__filename",
	"Buffer",
	"setImmediate",
	"clearImmediate",
}

// jsTransform evaluates a compiled script against items, reusing sandboxed VM
// instances from a pool. goja runtimes are not safe for concurrent use, so each
// call checks a VM out for its duration; the pool makes the transform safe to
// run under the worker pool.
type jsTransform struct {
	prog *goja.Program
	vms  chan *goja.Runtime
}

// JS compiles a JavaScript expression into a transform Func.
//
// The expression is evaluated once per item with three bindings in scope:
// value (the item's tree value), index (its position in the flattened
// sequence) and path (its "/a/0/b" location string). The expression's result
// becomes the item's transformed value. A script error fails only the item it
// ran for.
func JS(src string) (Func, error) {
	prog, err := goja.Compile("transform", src, true)
	if err != nil {
		return nil, fmt.Errorf("compiling transform script: %w", err)
	}

	t := &jsTransform{
		prog: prog,
		vms:  make(chan *goja.Runtime, runtime.GOMAXPROCS(0)),
	}
	return t.run, nil
}

func (t *jsTransform) run(value interface{}, tc Context) (Output, error) {
	vm, err := t.acquire()
	if err != nil {
		return Output{}, err
	}
	defer t.release(vm)

	if err := vm.Set("value", value); err != nil {
		return Output{}, fmt.Errorf("binding value: %w", err)
	}
	if err := vm.Set("index", tc.Index); err != nil {
		return Output{}, fmt.Errorf("binding index: %w", err)
	}
	if err := vm.Set("path", tc.Path.String()); err != nil {
		return Output{}, fmt.Errorf("binding path: %w", err)
	}

	result, err := vm.RunProgram(t.prog)
	if err != nil {
		return Output{}, fmt.Errorf("transform script: %w", err)
	}

	return Output{Value: result.Export()}, nil
}

// acquire checks a VM out of the pool, creating a fresh sandboxed instance
// when the pool is empty.
func (t *jsTransform) acquire() (*goja.Runtime, error) {
	select {
	case vm := <-t.vms:
		return vm, nil
	default:
		return newSandboxedVM()
	}
}

// release returns a VM to the pool, dropping it if the pool is full.
func (t *jsTransform) release(vm *goja.Runtime) {
	select {
	case t.vms <- vm:
	default:
	}
}

func newSandboxedVM() (*goja.Runtime, error) {
	vm := goja.New()
	for _, name := range dangerousGlobals {
		if err := vm.Set(name, goja.Undefined()); err != nil {
			return nil, fmt.Errorf("sandboxing vm: failed to remove %s: %w", name, err)
		}
	}
	return vm, nil
}
