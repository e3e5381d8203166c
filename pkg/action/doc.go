// Package action implements declarative event bindings for islands.
//
// An Action attribute carries a name instead of a function, so the server
// can render a binding the client resolves later: at hydration time the
// engine looks the name up in a Registry and attaches the registered
// handler to the matched DOM node.
//
// Action references may carry arguments: Codec packs them with msgpack and
// either signs the payload (visible but tamper-proof, HMAC-SHA256 over the
// packed bytes) or encrypts it (AES-256-GCM, fully opaque). A reference is
// "name" or "name:token".
//
//	codec, _ := action.NewCodec(secret)
//	reg := action.NewRegistry()
//	reg.Register("remove", func(ev *dom.Event, args map[string]any) { … })
//
//	ref, _ := codec.Ref("remove", map[string]any{"id": 42})
//	// render: vdom.OnAction("click", ref)
//	// hydrate: mount.Binder{Actions: reg.Resolver(codec)}
package action
