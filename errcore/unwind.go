package errcore

// Unwind restores rt's transient state to target's snapshot and records
// err into the snapshot's error slot. Step ordering is mandatory: frames
// must drop before chunks are reclaimed (a frame's argument list still
// references chunk cells while the frame exists), and manual allocations
// free only after the data stack and collect buffer are settled.
//
// Unwind itself must never fail: every step here operates on Runtime's own
// bookkeeping slices, none of which can error, so the sequence is
// panic-free and has no way to fail recursively.
func Unwind(rt *Runtime, target *Handler, err *Error) {
	snap := target.Snapshot

	// 1. Drop evaluator frames down to (not including) the target's frame.
	for rt.FrameDepth() > snap.FrameTop {
		rt.dropFrame()
	}
	if _, ok := rt.Thrown.Get(); ok {
		rt.Thrown.MarkUnreadable()
	}

	// 2. Drop chunks of argument cells back to the snapshot's chunk top.
	rt.Chunks.Truncate(snap.ChunkTop)

	// 3. Truncate the data stack.
	rt.Stack.Truncate(snap.DSP)

	// 4. End any in-progress symbol collection.
	if !rt.Collect.Empty() {
		rt.Collect.End()
	}

	// 5. Free all manual allocations made after the snapshot.
	rt.Manual.FreeAfter(snap.ManualLen)

	// 6. Truncate the GC-guard list.
	rt.Guards.Truncate(snap.GuardLen)

	// 7. Truncate the string scratch buffer and the mold-stack.
	rt.Scratch.TruncateScratch(snap.ScratchLen)
	rt.Scratch.TruncateMold(snap.MoldLen)

	// 8. Record the error; the jump to the handler's resume point is
	// performed by Fail via panic(*unwindSignal), after Unwind returns.
	snap.Error = err

	rt.handlers = target
	rt.Metrics.FailsTotal.WithLabelValues(categoryLabel(err)).Inc()
	if IsHalt(err) {
		rt.Metrics.HaltsTotal.Inc()
	}
	rt.Log.WithFields(map[string]any{
		"code":       err.CodeOr(-1),
		"type":       err.Type,
		"id":         err.ID,
		"handler_id": target.id,
	}).Warn("unwound to handler")
}

func categoryLabel(err *Error) string {
	if err.Type == "" {
		return "user"
	}
	return err.Type
}
