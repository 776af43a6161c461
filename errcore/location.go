package errcore

// NearMarker is the word placed at the exact failure index inside a near
// block. The near block must remain a printable, legal value in its own
// right (it is displayed and can be re-molded), which rules out a raw
// sentinel byte or an out-of-band marker; "??" is the legal word this
// implementation uses to mark the failure position unambiguously.
const NearMarker = "??"

// nearRadius bounds how many cells surround the failure index on each
// side before the near block is truncated: up to six cells centered on
// the current execution index.
const nearRadius = 3

// SetLocation fills where/near/file/line on e from rt's current frame
// chain.
func SetLocation(rt *Runtime, e *Error) {
	e.Where = buildWhere(rt)
	if f := rt.TopFrame(); f != nil {
		e.Near = buildNear(f)
	}
	setFileLine(rt, e)
}

// buildWhere walks the frame chain top-down, emitting the label of each
// invoked function frame and skipping frames that are not invoked
// functions or are still mid-argument-fulfillment (those frames have no
// meaningful call-site label to contribute yet).
func buildWhere(rt *Runtime) []string {
	var where []string
	for i := len(rt.frames) - 1; i >= 0; i-- {
		f := rt.frames[i]
		if !f.IsCall || f.MidFulfillment {
			continue
		}
		where = append(where, f.Label)
	}
	return where
}

// buildNear picks up to nearRadius*2+1 cells centered on f.Index from
// f.Source, places NearMarker at the exact index, and prefixes/suffixes
// ellipsis words when truncating. If Source is nil (a variadic list not
// yet reified), an array holding only NearMarker is returned,
// mirroring "reify it to an array first" without requiring a real
// reification step here since the core has no variadic-list type of its
// own — that lives in the out-of-scope evaluator.
func buildNear(f *Frame) *Array {
	a := NewArray(0)
	if f.Source == nil {
		a.Push(WordCell(NearMarker))
		return a
	}
	src := f.Source.Cells
	idx := f.Index
	lo := idx - nearRadius
	truncatedHead := lo > 0
	if lo < 0 {
		lo = 0
	}
	hi := idx + nearRadius
	truncatedTail := hi < len(src)-1
	if hi >= len(src) {
		hi = len(src) - 1
	}

	if truncatedHead {
		a.Push(WordCell("..."))
	}
	for i := lo; i <= hi && i < len(src); i++ {
		if i == idx {
			a.Push(WordCell(NearMarker))
			continue
		}
		if i >= 0 {
			a.Push(src[i])
		}
	}
	if truncatedTail {
		a.Push(WordCell("..."))
	}
	return a
}

// setFileLine walks the frame chain for the nearest frame whose source
// array carries file/line metadata.
func setFileLine(rt *Runtime, e *Error) {
	for i := len(rt.frames) - 1; i >= 0; i-- {
		f := rt.frames[i]
		if f.Source != nil && f.Source.HasFileLine() {
			e.File = f.Source.File
			e.SetLine(f.Source.Line)
			return
		}
	}
}
