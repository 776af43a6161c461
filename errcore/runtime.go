package errcore

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Frame is a runtime record for one invocation on the evaluator call
// stack: a source array, an execution index into it, an output slot, and
// flags describing whether it is a function call, mid-argument-fulfillment,
// or backed by a variadic C-level argument list.
type Frame struct {
	Label          string
	Source         *Array
	Index          int
	Output         Cell
	IsCall         bool
	MidFulfillment bool
	Variadic       bool
	ArgRegion      bool
}

// Chunk is a bump-allocated block of argument cells backing frames.
// ChunkPool models the whole pool as a single monotonically increasing
// top cursor, since the core never needs to address individual chunks —
// only truncate the pool back to a previously recorded top.
type ChunkPool struct {
	top int
}

func (p *ChunkPool) Top() int { return p.top }

func (p *ChunkPool) Alloc(cells int) int {
	p.top += cells
	return p.top
}

func (p *ChunkPool) Truncate(n int) {
	if n < p.top {
		p.top = n
	}
}

// DataStack is the interpreter's data stack: cells pushed and popped by
// the evaluator, truncated wholesale on unwind.
type DataStack struct {
	cells []Cell
}

func (s *DataStack) Len() int { return len(s.cells) }

func (s *DataStack) Push(c Cell) { s.cells = append(s.cells, c) }

func (s *DataStack) Pop() Cell {
	n := len(s.cells)
	if n == 0 {
		return EndCell()
	}
	c := s.cells[n-1]
	s.cells = s.cells[:n-1]
	return c
}

func (s *DataStack) Truncate(n int) {
	if n >= 0 && n <= len(s.cells) {
		s.cells = s.cells[:n]
	}
}

// ManualAllocs is the process-wide, append-only series of
// manually-tracked allocations: memory handed out before the GC has taken
// ownership of it.
type ManualAllocs struct {
	active []bool
}

// Track records a new manual allocation and returns its index.
func (m *ManualAllocs) Track() int {
	m.active = append(m.active, true)
	return len(m.active) - 1
}

func (m *ManualAllocs) Len() int { return len(m.active) }

// Release marks the allocation at i as handed over to the GC, once its
// owner no longer needs to free it manually.
func (m *ManualAllocs) Release(i int) {
	if i >= 0 && i < len(m.active) {
		m.active[i] = false
	}
}

// FreeAfter frees every still-active allocation recorded at or after n,
// returning the count freed. A caller asserting leak-freedom after unwind
// checks this count is always zero once a handler's snapshot length is
// restored.
func (m *ManualAllocs) FreeAfter(n int) int {
	freed := 0
	for i := n; i < len(m.active); i++ {
		if m.active[i] {
			freed++
		}
	}
	if n < len(m.active) {
		m.active = m.active[:n]
	}
	return freed
}

// GuardList is the GC-guard register series: values temporarily pinned
// against collection. Truncating it on unwind discards guards taken after
// the snapshot.
type GuardList struct {
	guarded []Cell
}

func (g *GuardList) Guard(c Cell) int {
	g.guarded = append(g.guarded, c)
	return len(g.guarded) - 1
}

func (g *GuardList) Len() int { return len(g.guarded) }

func (g *GuardList) Truncate(n int) {
	if n >= 0 && n <= len(g.guarded) {
		g.guarded = g.guarded[:n]
	}
}

// ScratchBuffers models the string-building scratch buffer and the
// mold-stack as independently truncatable byte buffers, plus the
// "currently building a mold" flag used to detect recursive molding.
type ScratchBuffers struct {
	scratch      []byte
	moldStack    []byte
	buildingMold bool
}

func (s *ScratchBuffers) ScratchLen() int { return len(s.scratch) }
func (s *ScratchBuffers) MoldLen() int    { return len(s.moldStack) }

func (s *ScratchBuffers) WriteScratch(p []byte) { s.scratch = append(s.scratch, p...) }
func (s *ScratchBuffers) WriteMold(p []byte)    { s.moldStack = append(s.moldStack, p...) }

func (s *ScratchBuffers) TruncateScratch(n int) {
	if n >= 0 && n <= len(s.scratch) {
		s.scratch = s.scratch[:n]
	}
}

func (s *ScratchBuffers) TruncateMold(n int) {
	if n >= 0 && n <= len(s.moldStack) {
		s.moldStack = s.moldStack[:n]
	}
	s.buildingMold = false
}

func (s *ScratchBuffers) BuildingMold() bool { return s.buildingMold }

// CollectBuffer models the in-progress symbol-collection buffer: while
// non-empty, the unwinder must end the collection (zeroing bindings in the
// lookup table) rather than leaving stale entries behind.
type CollectBuffer struct {
	entries map[string]int
}

func (c *CollectBuffer) Empty() bool { return len(c.entries) == 0 }

func (c *CollectBuffer) Begin() {
	if c.entries == nil {
		c.entries = make(map[string]int)
	}
}

func (c *CollectBuffer) Add(name string) {
	c.Begin()
	c.entries[name] = len(c.entries)
}

// End zeroes every entry in the binding-lookup table and clears the
// buffer, as the collect-end routine does.
func (c *CollectBuffer) End() {
	for k := range c.entries {
		delete(c.entries, k)
	}
}

// ThrownRegister is the single process-wide cell carrying a throw payload,
// valid only while a thrown value is in flight.
type ThrownRegister struct {
	value   Cell
	readable bool
}

func (t *ThrownRegister) Set(c Cell) {
	t.value = c
	t.readable = true
}

func (t *ThrownRegister) Get() (Cell, bool) {
	if !t.readable {
		return Cell{}, false
	}
	return t.value, true
}

// MarkUnreadable restores the register to "unreadable", the state the
// unwinder forces whenever a thrown value's frame is dropped.
func (t *ThrownRegister) MarkUnreadable() {
	t.readable = false
	t.value = Cell{}
}

// Runtime is the single-owner, process-wide runtime record: every piece
// of transient execution state the unwinder coordinates, plus the catalog,
// logger, and metrics. It owns all of this state directly, the same way a
// single owning runtime struct would for an interpreter as a whole:
// single-threaded, cooperatively scheduled, no locks on this path.
type Runtime struct {
	id uint64 // atomic run-id, read via runid

	Stack     DataStack
	Chunks    ChunkPool
	Manual    ManualAllocs
	Guards    GuardList
	Scratch   ScratchBuffers
	Collect   CollectBuffer
	Thrown    ThrownRegister
	frames    []*Frame
	handlers  *Handler

	Catalog *Catalog
	Log     *logrus.Logger
	Metrics *Metrics

	started bool
}

// NewRuntime builds a Runtime wired to cat, ready to have handlers
// installed and native code run under it.
func NewRuntime(cat *Catalog) *Runtime {
	rt := &Runtime{
		Catalog: cat,
		Log:     newLogger(),
		Metrics: NewMetrics(),
	}
	rt.started = true
	return rt
}

func (rt *Runtime) runid() uint64 { return atomic.LoadUint64(&rt.id) }

// withMold scopes a molding operation so the "currently building a mold"
// flag is always cleared on return, including when body panics. A mold
// started while another is already in progress indicates a recursive
// mold, which this core does not support; Unwind's TruncateMold still
// clears the flag defensively for the case a panic bypassed this deferred
// reset entirely.
func (rt *Runtime) withMold(body func() string) string {
	if rt.Scratch.buildingMold {
		panic("errcore: recursive mold")
	}
	rt.Scratch.buildingMold = true
	defer func() { rt.Scratch.buildingMold = false }()
	return body()
}

// MoldError renders e for display via Mold, scoping the render with
// withMold so a panic partway through never leaves the mold-in-progress
// flag set.
func (rt *Runtime) MoldError(e *Error) string {
	return rt.withMold(func() string { return Mold(e) })
}

func (rt *Runtime) PushFrame(f *Frame) {
	rt.frames = append(rt.frames, f)
}

// TopFrame returns the current top frame, or nil if the frame stack is
// empty.
func (rt *Runtime) TopFrame() *Frame {
	if len(rt.frames) == 0 {
		return nil
	}
	return rt.frames[len(rt.frames)-1]
}

func (rt *Runtime) FrameDepth() int { return len(rt.frames) }

// dropFrame unlinks and frees the top frame, performing the per-frame
// cleanup an unwind requires: reset the output slot to an end marker, end
// any variadic list, and drop the argument region marker.
func (rt *Runtime) dropFrame() {
	n := len(rt.frames)
	if n == 0 {
		return
	}
	f := rt.frames[n-1]
	if f.Variadic {
		rt.endVariadic(f)
	}
	f.ArgRegion = false
	if !f.Output.End() {
		f.Output = EndCell()
	}
	rt.frames = rt.frames[:n-1]
}

// endVariadic releases a C-level variadic argument list: a resource
// acquired for the duration of a call that must be released on every exit
// path, normal or panicking.
func (rt *Runtime) endVariadic(f *Frame) {
	f.Variadic = false
}
