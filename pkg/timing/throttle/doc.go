/*
Package throttle bounds how often an action runs to at most once per interval.

The first call runs the action immediately and opens a window. A call made once
the window has elapsed runs immediately too and opens a new window. A call made
inside the window is deferred: it replaces any retry already pending and polls
on a short fixed interval (50ms by default) until the window has elapsed, then
runs the action.

	t := throttle.New(200*time.Millisecond, redraw)

	t.Call() // t=0:   runs, window opens
	t.Call() // t=50:  deferred, runs at t=200
	t.Call() // t=210: deferred, runs at t=410

Arguments are bound once at construction, not per call:

	onScroll := throttle.Func(report, 200*time.Millisecond, "viewport")
	onScroll() // report("viewport")

Immediate executions run on the caller's goroutine; deferred executions run on
the timer goroutine. A panic in the action is not recovered.
*/
package throttle
