package action

import (
	"strings"
	"testing"

	"github.com/isla-dev/isla/pkg/dom"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestSignedRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	in := map[string]any{"id": int8(7), "name": "widget"}
	token, err := c.Encode(in, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out map[string]any
	if err := c.Decode(token, false, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out["name"] != "widget" {
		t.Errorf("name = %v, want widget", out["name"])
	}
}

func TestSignedTokenVisible(t *testing.T) {
	c := newTestCodec(t)

	token, err := c.Encode(map[string]any{"x": 1}, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(token, ".") {
		t.Errorf("signed token %q has no signature separator", token)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	c := newTestCodec(t)

	token, err := c.Encode(map[string]any{"admin": false}, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Flip the first payload character; the signature no longer matches.
	tampered := flip(token[0]) + token[1:]

	var out map[string]any
	if err := c.Decode(tampered, false, &out); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestWrongKeyRejected(t *testing.T) {
	a := newTestCodec(t)
	b, err := NewCodec([]byte("different-key"))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	token, err := a.Encode(map[string]any{"x": 1}, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var out map[string]any
	if err := b.Decode(token, false, &out); err == nil {
		t.Error("token signed with another key accepted")
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	token, err := c.Encode(map[string]any{"secret": "hunter2"}, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(token, "hunter2") {
		t.Error("encrypted token leaks the plaintext")
	}

	var out map[string]any
	if err := c.Decode(token, true, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out["secret"] != "hunter2" {
		t.Errorf("secret = %v", out["secret"])
	}
}

func TestEncryptedGarbageRejected(t *testing.T) {
	c := newTestCodec(t)

	var out map[string]any
	if err := c.Decode("AAAA", true, &out); err == nil {
		t.Error("garbage ciphertext accepted")
	}
}

func TestRef(t *testing.T) {
	c := newTestCodec(t)

	ref, err := c.Ref("save", nil)
	if err != nil {
		t.Fatalf("Ref: %v", err)
	}
	if ref != "save" {
		t.Errorf("argless ref = %q, want save", ref)
	}

	ref, err = c.Ref("delete", map[string]any{"id": 7})
	if err != nil {
		t.Fatalf("Ref: %v", err)
	}
	if !strings.HasPrefix(ref, "delete:") {
		t.Errorf("ref = %q, want delete:<token>", ref)
	}
}

func TestResolverPlainName(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register("save", func(ev *dom.Event, args map[string]any) {
		called = true
		if args != nil {
			t.Errorf("args = %v, want nil", args)
		}
	})

	resolve := r.Resolver(nil)
	h, ok := resolve("save")
	if !ok {
		t.Fatal("save not resolved")
	}
	h(&dom.Event{Type: "click"})
	if !called {
		t.Error("handler not invoked")
	}
}

func TestResolverWithToken(t *testing.T) {
	c := newTestCodec(t)
	r := NewRegistry()

	var got map[string]any
	r.Register("delete", func(ev *dom.Event, args map[string]any) { got = args })

	ref, err := c.Ref("delete", map[string]any{"id": "7"})
	if err != nil {
		t.Fatalf("Ref: %v", err)
	}

	h, ok := r.Resolver(c)(ref)
	if !ok {
		t.Fatal("ref not resolved")
	}
	h(&dom.Event{Type: "click"})

	if got["id"] != "7" {
		t.Errorf("args = %v, want id=7", got)
	}
}

func TestResolverUnknownName(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Resolver(nil)("ghost"); ok {
		t.Error("unknown action resolved")
	}
}

func TestResolverBadTokenInert(t *testing.T) {
	c := newTestCodec(t)
	r := NewRegistry()
	r.Register("delete", func(ev *dom.Event, args map[string]any) {
		t.Error("handler ran for a forged token")
	})

	if _, ok := r.Resolver(c)("delete:forged.token"); ok {
		t.Error("forged token resolved")
	}
}

func flip(b byte) string {
	if b == 'A' {
		return "B"
	}
	return "A"
}
