// Package errcore implements the error-handling and unwinding core of the
// aurora interpreter runtime: a structured error object backed by a
// category/id catalog, a LIFO stack of installed handlers, and an unwinder
// that restores every piece of transient execution state (data stack,
// chunk pool, manual allocations, GC guards, scratch/mold buffers, frame
// stack) between a fail site and the nearest handler.
//
// The runtime is single-threaded and cooperatively scheduled: a *Runtime
// owns all transient state directly, the same way a single owning runtime
// struct holds its frame stack, pending panics, and call bookkeeping as one
// process-wide singleton. There are no locks on the hot fail/unwind path;
// only the catalog (loaded once at startup, mutated only by Register) takes
// a mutex, since extension registration may race with concurrent lookups
// from other goroutines.
package errcore
