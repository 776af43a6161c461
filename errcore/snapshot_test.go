package errcore

import "testing"

func TestSnapRequiresEmptyCollectBuffer(t *testing.T) {
	rt := NewDefaultRuntime()
	rt.Collect.Add("x")

	defer func() {
		if recover() == nil {
			t.Fatal("expected Snap to panic with a non-empty collect buffer")
		}
	}()
	Snap(rt)
}

func TestSnapshotRoundTrip(t *testing.T) {
	rt := NewDefaultRuntime()
	rt.Stack.Push(IntegerCell(1))
	rt.Guards.Guard(IntegerCell(2))

	s := Snap(rt)

	// Well-behaved region: push then pop.
	rt.Stack.Push(IntegerCell(3))
	rt.Stack.Pop()

	if err := AssertBalanced(rt, s); err != nil {
		t.Fatalf("expected balanced snapshot, got: %v", err)
	}
}

func TestAssertBalancedDetectsImbalance(t *testing.T) {
	rt := NewDefaultRuntime()
	s := Snap(rt)
	rt.Stack.Push(IntegerCell(1))

	if err := AssertBalanced(rt, s); err == nil {
		t.Fatal("expected AssertBalanced to report the leaked stack push")
	}
}
