package errcore

import "testing"

func TestSimpleCatch(t *testing.T) {
	rt := NewDefaultRuntime()
	var caught *Error

	rt.WithTrap(func() {
		rt.Fail(ErrReason{Err: mustMake(t, rt, "script", "invalid-arg", IntegerCell(42))})
	}, func(e *Error) {
		caught = e
	})

	if caught == nil {
		t.Fatal("expected onError to be called")
	}
	code, _ := rt.Catalog.CodeFor("script", "invalid-arg")
	if caught.CodeOr(-1) != code {
		t.Errorf("expected code %d, got %d", code, caught.CodeOr(-1))
	}
	if caught.ID != "invalid-arg" {
		t.Errorf("expected id invalid-arg, got %q", caught.ID)
	}
	arg1, ok := caught.Arg("arg1")
	if !ok {
		t.Fatal("expected arg1 to be bound")
	}
	if arg1.Payload != 42 {
		t.Errorf("expected arg1 == 42, got %v", arg1.Payload)
	}
}

func TestFailLIFO(t *testing.T) {
	rt := NewDefaultRuntime()
	var innerCaught, outerCaught bool

	rt.WithTrap(func() {
		rt.WithTrap(func() {
			rt.Fail(StringReason{Text: "boom"})
		}, func(e *Error) {
			innerCaught = true
		})
		// Inner handler did not re-raise: outer body continues normally,
		// then fails again, which must reach the outer handler alone.
		rt.Fail(StringReason{Text: "second"})
	}, func(e *Error) {
		outerCaught = true
		if e.RenderedMessage() != "second" {
			t.Errorf("expected outer handler to see the second failure, got %q", e.RenderedMessage())
		}
	})

	if !innerCaught {
		t.Error("expected inner handler to catch the first fail")
	}
	if !outerCaught {
		t.Error("expected outer handler to catch the second fail")
	}
}

func TestNestedFrames(t *testing.T) {
	rt := NewDefaultRuntime()
	var where []string

	rt.WithTrap(func() {
		rt.PushFrame(&Frame{Label: "A", IsCall: true})
		rt.PushFrame(&Frame{Label: "B", IsCall: true})
		rt.PushFrame(&Frame{Label: "C", IsCall: true})
		rt.Fail(StringReason{Text: "deep"})
	}, func(e *Error) {
		where = e.Where
	})

	want := []string{"C", "B", "A"}
	if len(where) != len(want) {
		t.Fatalf("expected where=%v, got %v", want, where)
	}
	for i := range want {
		if where[i] != want[i] {
			t.Fatalf("expected where=%v, got %v", want, where)
		}
	}
	if rt.FrameDepth() != 0 {
		t.Errorf("expected frame stack restored to 0, got %d", rt.FrameDepth())
	}
}

func TestHaltBypassesUnhaltable(t *testing.T) {
	rt := NewDefaultRuntime()
	var outerSawHalt, innerRan bool

	rt.WithTrap(func() {
		rt.WithTrapUnhaltable(func() {
			innerRan = true
			rt.Fail(ErrReason{Err: Halt(rt)})
		}, func(e *Error) {
			t.Fatal("unhaltable handler's onError must not run for a halt")
		}, nil)
	}, func(e *Error) {
		outerSawHalt = IsHalt(e)
	})

	if !innerRan {
		t.Fatal("expected unhaltable body to run")
	}
	if !outerSawHalt {
		t.Fatal("expected outer haltable handler to see the halt")
	}
}

func TestManualAllocationLeakFree(t *testing.T) {
	rt := NewDefaultRuntime()
	before := rt.Manual.Len()

	rt.WithTrap(func() {
		rt.Manual.Track()
		rt.Manual.Track()
		rt.Fail(StringReason{Text: "x"})
	}, func(e *Error) {})

	if rt.Manual.Len() != before {
		t.Errorf("expected manual allocation list restored to %d, got %d", before, rt.Manual.Len())
	}
}

func mustMake(t *testing.T, rt *Runtime, category, id string, args ...Cell) *Error {
	t.Helper()
	code, ok := rt.Catalog.CodeFor(category, id)
	if !ok {
		t.Fatalf("catalog missing %s/%s", category, id)
	}
	e, err := MakeError(rt, code, args...)
	if err != nil {
		t.Fatalf("MakeError: %v", err)
	}
	return e
}
