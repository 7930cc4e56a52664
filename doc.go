/*
Package shellkit provides the reusable back-end pieces of a dashboard shell:
call-rate shaping for event handlers, a load-once loader for external SDK
scripts, and display formatting helpers.

Timing (pkg/timing):
  - debounce: run an action once calls have gone quiet
  - throttle: run an action at most once per interval

Loading (pkg/loader):
  - Loader: fetch a resource once and share it with every caller
  - HTTPFetcher, MemoryCache, RedisCache: pluggable fetch and cache layers

Formatting (pkg/format):
  - token time layouts, digit grouping, display widths, status lookups

Example usage:

	import (
		"github.com/vnykmshr/shellkit/pkg/loader"
		"github.com/vnykmshr/shellkit/pkg/timing/debounce"
	)

	search := debounce.New(300*time.Millisecond, func(q string) { runQuery(q) })
	search.Call("gopher")

	sdk, err := loader.Load(ctx) // shared by every caller in the process

The shellkit command (cmd/shellkit) fetches and serves the configured
resource and exposes the formatting helpers on the command line.
*/
package shellkit
