package uri_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/httpuri/log"
	"github.com/ghettovoice/httpuri/uri"
)

func TestCache_Parse(t *testing.T) {
	t.Parallel()

	c := uri.NewCache(&uri.CacheOptions{Size: 2, Logger: log.Noop})

	u1, err := c.Parse("HTTP://example.com:80/a b")
	if err != nil {
		t.Fatalf("c.Parse() error = %v, want nil", err)
	}
	if got, want := u1.String(), "http://example.com/a%20b"; got != want {
		t.Errorf("c.Parse().String() = %q, want %q", got, want)
	}

	u2, err := c.Parse("HTTP://example.com:80/a b")
	if err != nil {
		t.Fatalf("second c.Parse() error = %v, want nil", err)
	}
	if u2 != u1 {
		t.Error("second c.Parse() returned a new URI, want the cached one")
	}

	// other spellings of the same URI are separate entries
	u3, err := c.Parse("http://example.com/a%20b")
	if err != nil {
		t.Fatalf("c.Parse() error = %v, want nil", err)
	}
	if u3 == u1 || !u3.Equal(u1) {
		t.Errorf("c.Parse() = %p %v, want a distinct URI equal to %p %v", u3, u3, u1, u1)
	}
}

func TestCache_Parse_Error(t *testing.T) {
	t.Parallel()

	c := uri.NewCache(nil)
	for range 2 {
		u, err := c.Parse("ftp://example.com")
		if diff := cmp.Diff(err, uri.ErrInvalidArgument, cmpopts.EquateErrors()); diff != "" {
			t.Fatalf("c.Parse() error = %v, want %v\ndiff (-got +want):\n%v", err, uri.ErrInvalidArgument, diff)
		}
		if u != nil {
			t.Errorf("c.Parse() = %v, want nil", u)
		}
	}
}

func TestCache_Parse_Concurrent(t *testing.T) {
	t.Parallel()

	c := uri.NewCache(&uri.CacheOptions{Size: 8, Logger: log.Noop})
	inputs := []string{
		"http://a.example/",
		"https://b.example:8443/x",
		"//c.example/y?z",
		"/d",
	}

	var wg sync.WaitGroup
	for i := range 32 {
		in := inputs[i%len(inputs)]
		wg.Go(func() {
			u, err := c.Parse(in)
			if err != nil {
				t.Errorf("c.Parse(%q) error = %v, want nil", in, err)
				return
			}
			if got := u.String(); got != in {
				t.Errorf("c.Parse(%q).String() = %q, want %q", in, got, in)
			}
		})
	}
	wg.Wait()
}
