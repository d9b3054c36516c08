package uri

import (
	"math"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpuri/internal/grammar"
	"github.com/ghettovoice/httpuri/internal/util"
)

// WithScheme returns a copy of the URI with the given scheme.
// The scheme is trimmed and lowercased, a trailing ":" or "://" is dropped.
// An empty scheme removes the scheme, anything else than "http" or "https" is rejected.
func (u *URI) WithScheme(scheme string) (*URI, error) {
	s, err := filterScheme(scheme)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c := u.comps()
	c.scheme = s
	return u.derive(c), nil
}

// WithUserInfo returns a copy of the URI with the given user and password.
// An empty password means no password.
func (u *URI) WithUserInfo(user, passwd string) *URI {
	c := u.comps()
	c.userInfo = joinUserInfo(user, passwd, passwd != "")
	return u.derive(c)
}

// WithHost returns a copy of the URI with the given host.
// An empty host removes the authority.
func (u *URI) WithHost(host string) *URI {
	c := u.comps()
	c.host = host
	return u.derive(c)
}

// WithPort returns a copy of the URI with the given port.
//
// The port can be any integer type or a numeric string in range 1-65535.
// A nil port removes the port, see also [URI.WithoutPort].
func (u *URI) WithPort(port any) (*URI, error) {
	p, err := portFromAny(port)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	c := u.comps()
	c.port = p
	return u.derive(c), nil
}

// WithoutPort returns a copy of the URI without the port.
func (u *URI) WithoutPort() *URI {
	c := u.comps()
	c.port = 0
	return u.derive(c)
}

func portFromAny(val any) (uint16, error) {
	var (
		n  uint64
		ok = true
	)
	switch v := val.(type) {
	case nil:
		return 0, nil
	case int:
		n, ok = fromInt(int64(v))
	case int8:
		n, ok = fromInt(int64(v))
	case int16:
		n, ok = fromInt(int64(v))
	case int32:
		n, ok = fromInt(int64(v))
	case int64:
		n, ok = fromInt(v)
	case uint:
		n = uint64(v)
	case uint8:
		n = uint64(v)
	case uint16:
		n = uint64(v)
	case uint32:
		n = uint64(v)
	case uint64:
		n = v
	case string:
		i, err := strconv.ParseInt(util.TrimSP(v), 10, 64)
		if err != nil {
			return 0, errtrace.Wrap(NewInvalidArgumentError("invalid port %q: must be an integer or a numeric string", v))
		}
		n, ok = fromInt(i)
	default:
		return 0, errtrace.Wrap(NewInvalidArgumentError("invalid port of type %T: must be an integer or a numeric string", v))
	}
	if !ok || n < 1 || n > math.MaxUint16 {
		return 0, errtrace.Wrap(NewInvalidArgumentError("invalid port %v: must be in range [1, 65535]", val))
	}
	return uint16(n), nil
}

func fromInt(i int64) (uint64, bool) { return uint64(i), i >= 0 }

// WithPath returns a copy of the URI with the given path.
// The path is percent-encoded, already encoded triplets are kept.
// A path containing "?" or "#" is rejected.
func (u *URI) WithPath(path string) (*URI, error) {
	if strings.Contains(path, "?") {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid path %q: must not contain a query string", path))
	}
	if strings.Contains(path, "#") {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid path %q: must not contain a URI fragment", path))
	}
	c := u.comps()
	c.path = grammar.EscapePath(path)
	return u.derive(c), nil
}

// WithQuery returns a copy of the URI with the given query.
// A leading "?" is dropped, keys and values are percent-encoded independently.
// A query containing "#" is rejected.
func (u *URI) WithQuery(query string) (*URI, error) {
	if strings.Contains(query, "#") {
		return nil, errtrace.Wrap(NewInvalidArgumentError("invalid query %q: must not contain a URI fragment", query))
	}
	c := u.comps()
	c.query = grammar.EscapeQuery(strings.TrimPrefix(query, "?"))
	return u.derive(c), nil
}

// WithFragment returns a copy of the URI with the given fragment.
// A leading "#" is dropped.
func (u *URI) WithFragment(fragment string) *URI {
	c := u.comps()
	c.fragment = grammar.EscapeFragment(strings.TrimPrefix(fragment, "#"))
	return u.derive(c)
}
