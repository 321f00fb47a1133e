package transform

import (
	"strings"
	"sync"
	"testing"

	"github.com/wehubfusion/Daedalus/pkg/flatten"
)

func TestJS_Expression(t *testing.T) {
	fn, err := JS(`typeof value === "number" ? value * 2 : value`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	out, err := fn(float64(21), Context{Index: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Value != int64(42) && out.Value != float64(42) {
		t.Fatalf("expected 42, got %v (%T)", out.Value, out.Value)
	}

	out, err = fn("keep", Context{Index: 4})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Value != "keep" {
		t.Fatalf("expected passthrough, got %v", out.Value)
	}
}

func TestJS_SeesIndexAndPath(t *testing.T) {
	fn, err := JS(`path + "#" + index`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	out, err := fn(nil, Context{Index: 7, Path: flatten.Path{flatten.Key("a"), flatten.Index(0)}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Value != "/a/0#7" {
		t.Fatalf("expected /a/0#7, got %v", out.Value)
	}
}

func TestJS_CompileError(t *testing.T) {
	if _, err := JS(`this is not javascript`); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestJS_RuntimeErrorFailsOnlyThatCall(t *testing.T) {
	fn, err := JS(`if (value === "bad") { throw new Error("boom") }; value`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if _, err := fn("bad", Context{}); err == nil {
		t.Fatal("expected script error")
	} else if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected script message in error, got %v", err)
	}

	out, err := fn("good", Context{})
	if err != nil {
		t.Fatalf("later call failed: %v", err)
	}
	if out.Value != "good" {
		t.Fatalf("expected good, got %v", out.Value)
	}
}

func TestJS_SandboxStripsHostGlobals(t *testing.T) {
	fn, err := JS(`typeof require`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	out, err := fn(nil, Context{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.Value != "undefined" {
		t.Fatalf("expected require to be undefined, got %v", out.Value)
	}
}

func TestJS_ConcurrentCalls(t *testing.T) {
	fn, err := JS(`index`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := fn(nil, Context{Index: i})
			if err != nil {
				t.Errorf("call %d failed: %v", i, err)
				return
			}
			if out.Value != int64(i) {
				t.Errorf("call %d returned %v", i, out.Value)
			}
		}(i)
	}
	wg.Wait()
}
