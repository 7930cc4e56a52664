package loader_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/vnykmshr/shellkit/pkg/loader"
)

func ExampleLoader_Load() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "window.initAMap && initAMap()")
	}))
	defer srv.Close()

	ep := loader.Endpoint{BaseURL: srv.URL + "/maps", Version: "1.4.15", Callback: "initAMap"}
	l, err := loader.New(loader.Config{Endpoint: ep, Validate: ep.ReadyCheck()})
	if err != nil {
		fmt.Println(err)
		return
	}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Load(context.Background())
		}()
	}
	wg.Wait()

	res, ok := l.Resource()
	fmt.Println(ok, res.Size(), res.Source)
	// Output:
	// true 29 fetch
}

func ExampleLoader_OnReady() {
	l, _ := loader.New(loader.Config{URL: "https://sdk.example.com/maps.js"})

	l.OnReady(func(res *loader.Resource, err error) {
		fmt.Println("ready:", string(res.Body))
	})
	l.Provide(&loader.Resource{Body: []byte("inline sdk")})

	// Output:
	// ready: inline sdk
}

func ExampleEndpoint_URL() {
	ep := loader.DefaultEndpoint()
	ep.Key = "your-key"
	fmt.Println(ep.URL())
	// Output:
	// https://webapi.amap.com/maps?callback=initAMap&key=your-key&v=1.4.15
}
