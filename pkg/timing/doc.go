/*
Package timing provides call-rate shaping primitives for event handlers.

  - debounce: run an action once a burst of calls has gone quiet
  - throttle: run an action at most once per interval, coalescing the rest

Both take their notion of time from a Clock so callers and tests can control
scheduling:

	d := debounce.New(300*time.Millisecond, func(q string) { search(q) })
	d.Call("go")
	d.Call("gopher") // supersedes "go"

	t := throttle.New(200*time.Millisecond, redraw)
	t.Call() // runs now
	t.Call() // deferred until the window has elapsed

Debouncers and throttlers are safe for concurrent use. Actions never run while
internal locks are held, so an action may call back into its own wrapper.
*/
package timing
