// Package server serves isla pages over HTTP.
//
// The server renders registered pages to HTML with the render package,
// serves JSON documents for islands using url: state, and exposes
// Prometheus metrics. In development mode it additionally runs a WebSocket
// reload channel browsers subscribe to.
//
//	srv := server.New(server.DefaultConfig())
//	srv.HandlePage("/", func(r *http.Request, rd *render.Renderer) (*vdom.VNode, error) {
//	    return pages.Home(), nil
//	})
//	srv.HandleState("/state/cart", func(r *http.Request) (any, error) {
//	    return cartFor(r), nil
//	})
//	log.Fatal(srv.Start())
//
// Routing is chi; Router exposes the underlying router so applications can
// mount their own handlers next to the page routes.
package server
