/*
Package loader loads an external resource, such as a third-party SDK script,
exactly once and shares the result with every caller.

The first Load starts the request. Callers arriving while it is in flight wait
for the same result, and callers arriving after it succeeded get the cached
handle without a new request:

	l, err := loader.New(loader.Config{
		Endpoint: loader.Endpoint{
			BaseURL:  "https://webapi.amap.com/maps",
			Version:  "1.4.15",
			Key:      apiKey,
			Callback: "initAMap",
		},
	})
	if err != nil {
		return err
	}

	sdk, err := l.Load(ctx)

A caller whose context ends stops waiting, but the request keeps running for
everyone else, bounded by Config.Timeout.

Ready callbacks:

Scripts that announce readiness through a well-known global callback are
handled by Endpoint alone: it adds the callback query parameter, and
Endpoint.ReadyCheck can be set as Config.Validate to reject a script that
never references it. Everything else uses OnReady:

	l.OnReady(func(res *loader.Resource, err error) {
		// runs once the load settles
	})

Failures:

A failed load returns an error wrapping errors.ErrLoadFailed (and
errors.ErrTimeout when the deadline expired). By default the failure is
terminal: later Load calls return the same error without issuing another
request. Set Config.RetryOnFailure to let the next Load try again.

Sharing between processes:

A Cache is consulted before fetching and filled afterwards. MemoryCache keeps
resources in-process; RedisCache lets several instances share one copy:

	cache, _ := loader.NewRedisCache(loader.RedisConfig{
		Client: redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
		TTL:    24 * time.Hour,
	})

Process-wide instance:

Default returns a lazily built Loader for DefaultEndpoint, and the package
level Load uses it. SetDefault replaces it and ResetDefaultForTesting drops it.
*/
package loader
