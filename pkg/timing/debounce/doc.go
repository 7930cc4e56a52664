/*
Package debounce delays an action until calls to it have stopped for a quiet
period.

Every call cancels the pending execution, if any, and schedules a new one
carrying the latest argument. When no further call arrives within the delay,
the action runs exactly once with that argument:

	d := debounce.New(100*time.Millisecond, func(q string) {
		fmt.Println("search:", q)
	})

	d.Call("g")
	d.Call("go")
	d.Call("gopher") // only "gopher" is searched, 100ms after this call

A zero delay still defers the action to the timer goroutine; it never runs on
the caller's goroutine. Nothing is returned to callers, and a panic in the
action is not recovered.

Func is a shorthand when only the callable is needed:

	onInput := debounce.Func(search, 300*time.Millisecond)
	onInput("query")
*/
package debounce
