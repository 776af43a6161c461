package errcore

import "fmt"

// Snapshot is the captured scalar state of a Runtime at the point a
// handler is installed. It is alive from handler push until pop and must
// be popped in LIFO order with its sibling Handler.
type Snapshot struct {
	DSP        int // data stack pointer
	ChunkTop   int
	FrameTop   int // frame stack depth
	ManualLen  int
	GuardLen   int
	ScratchLen int
	MoldLen    int
	Prev       *Snapshot // previous handler's snapshot, for diagnostics
	Error      *Error    // filled by the unwinder on fail
}

// Snap records the current values of every scalar cursor into a fresh
// Snapshot. The collect buffer must be empty at entry: an in-progress
// symbol collection leaves named entries in a binding table that only
// CollectBuffer.End can unwind, and Snap running mid-collection would
// silently corrupt that invariant.
func Snap(rt *Runtime) *Snapshot {
	if !rt.Collect.Empty() {
		panic("errcore: Snap called with a non-empty collect buffer")
	}
	return &Snapshot{
		DSP:        rt.Stack.Len(),
		ChunkTop:   rt.Chunks.Top(),
		FrameTop:   rt.FrameDepth(),
		ManualLen:  rt.Manual.Len(),
		GuardLen:   rt.Guards.Len(),
		ScratchLen: rt.Scratch.ScratchLen(),
		MoldLen:    rt.Scratch.MoldLen(),
		Prev:       rt.handlers.snapshotOrNil(),
	}
}

func (h *Handler) snapshotOrNil() *Snapshot {
	if h == nil {
		return nil
	}
	return h.Snapshot
}

// AssertBalanced verifies that every scalar cursor in s still equals its
// current Runtime value — i.e. the region between Snap and AssertBalanced
// performed no net stack/guard/alloc change. This is the debug-only
// companion to Snap; any imbalance is a programming error in that region
// (a push without a matching pop), reported with enough detail to find it.
func AssertBalanced(rt *Runtime, s *Snapshot) error {
	type check struct {
		name     string
		got, want int
	}
	checks := []check{
		{"data stack", rt.Stack.Len(), s.DSP},
		{"chunk pool", rt.Chunks.Top(), s.ChunkTop},
		{"frame stack", rt.FrameDepth(), s.FrameTop},
		{"manual allocations", rt.Manual.Len(), s.ManualLen},
		{"gc guards", rt.Guards.Len(), s.GuardLen},
		{"scratch buffer", rt.Scratch.ScratchLen(), s.ScratchLen},
		{"mold stack", rt.Scratch.MoldLen(), s.MoldLen},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("errcore: snapshot imbalance in %s: have %d, want %d", c.name, c.got, c.want)
		}
	}
	return nil
}
