package uri

//go:generate go tool errtrace -w .

import (
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/httpuri/internal/constraints"
	"github.com/ghettovoice/httpuri/internal/grammar"
	"github.com/ghettovoice/httpuri/internal/types"
	"github.com/ghettovoice/httpuri/internal/util"
)

// RenderOptions contains options for rendering URIs.
type RenderOptions = types.RenderOptions

// URI represents an immutable HTTP URI.
//
// The zero value and a nil *URI are both the empty URI.
// Use [Parse] or the With* methods to obtain non-empty URIs.
type URI struct {
	c   components
	str atomic.Pointer[string]
}

type components struct {
	scheme   string
	userInfo string
	host     string
	port     uint16 // 0 - no port
	path     string
	query    string
	fragment string
}

var (
	_ types.Renderer        = (*URI)(nil)
	_ types.Cloneable[*URI] = (*URI)(nil)
	_ types.Equalable       = (*URI)(nil)
	_ types.ValidFlag       = (*URI)(nil)
)

// Parse parses a URI from the given input s (string or []byte).
// Empty input returns the empty URI.
func Parse[T constraints.Byteseq](s T) (*URI, error) {
	if len(s) == 0 {
		return new(URI), nil
	}
	c, err := parseComponents(string(s))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &URI{c: c}, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse[T constraints.Byteseq](s T) *URI { return util.Must2(Parse(s)) }

func parseComponents(s string) (components, error) {
	var c components

	// a '%' without two hex digits is taken literally, as the component filters do
	pu, err := url.Parse(grammar.EscapePercent(s))
	if err != nil {
		return c, errtrace.Wrap(NewInvalidArgumentError(grammar.NewMalformedInputError(err)))
	}

	if c.scheme, err = filterScheme(pu.Scheme); err != nil {
		return c, errtrace.Wrap(err)
	}

	if pu.User != nil {
		passwd, hasPasswd := pu.User.Password()
		c.userInfo = joinUserInfo(pu.User.Username(), passwd, hasPasswd)
	}

	c.host = pu.Host
	if p := pu.Port(); p != "" {
		c.host = c.host[:len(c.host)-len(p)-1]
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil || n == 0 {
			return c, errtrace.Wrap(NewInvalidArgumentError("invalid port %q: must be in range [1, 65535]", p))
		}
		c.port = uint16(n)
	} else {
		c.host = strings.TrimSuffix(c.host, ":")
	}

	// "http:a/b" is taken as a rootless path
	path := pu.Opaque
	if path == "" {
		if path = pu.RawPath; path == "" {
			path = pu.EscapedPath()
		}
	}
	c.path = grammar.EscapePath(path)
	c.query = grammar.EscapeQuery(pu.RawQuery)
	c.fragment = grammar.EscapeFragment(pu.EscapedFragment())
	return c, nil
}

func joinUserInfo(user, passwd string, hasPasswd bool) string {
	if !hasPasswd {
		return grammar.EscapeUserInfo(user)
	}
	return grammar.EscapeUserInfo(user) + ":" + grammar.EscapeUserInfo(passwd)
}

func (u *URI) comps() components {
	if u == nil {
		return components{}
	}
	return u.c
}

// Scheme returns the lowercased scheme or an empty string.
func (u *URI) Scheme() string {
	if u == nil {
		return ""
	}
	return u.c.scheme
}

// Authority returns the "[userinfo@]host[:port]" part of the URI.
// An empty string is returned when the URI has no host.
// The port is omitted when it is the standard port of the scheme.
func (u *URI) Authority() string {
	if u == nil {
		return ""
	}
	return u.c.authority(false)
}

func (c *components) authority(hideUserInfo bool) string {
	if c.host == "" {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if c.userInfo != "" && !hideUserInfo {
		sb.WriteString(c.userInfo)
		sb.WriteByte('@')
	}
	sb.WriteString(c.host)
	if c.port != 0 && c.isNonStdPort() {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(uint64(c.port), 10))
	}
	return sb.String()
}

// UserInfo returns the "user[:password]" part of the URI.
func (u *URI) UserInfo() string {
	if u == nil {
		return ""
	}
	return u.c.userInfo
}

// Host returns the host as it was given, IPv6 literals keep their brackets.
func (u *URI) Host() string {
	if u == nil {
		return ""
	}
	return u.c.host
}

// Port returns the port and true if the port is set and it is not
// the standard port of the scheme.
func (u *URI) Port() (uint16, bool) {
	if u == nil || u.c.port == 0 || !u.c.isNonStdPort() {
		return 0, false
	}
	return u.c.port, true
}

// Path returns the percent-encoded path.
func (u *URI) Path() string {
	if u == nil {
		return ""
	}
	return u.c.path
}

// Query returns the percent-encoded query without the leading "?".
func (u *URI) Query() string {
	if u == nil {
		return ""
	}
	return u.c.query
}

// Fragment returns the percent-encoded fragment without the leading "#".
func (u *URI) Fragment() string {
	if u == nil {
		return ""
	}
	return u.c.fragment
}

// IsZero reports whether the URI is empty.
func (u *URI) IsZero() bool { return u == nil || u.c == components{} }

// IsAbs reports whether the URI has a scheme.
func (u *URI) IsAbs() bool { return u != nil && u.c.scheme != "" }

// IsValid reports whether the URI has a syntactically valid host:
// an IP address (IPv6 in brackets) or a domain name, possibly percent-encoded.
func (u *URI) IsValid() bool {
	if u == nil || u.c.host == "" {
		return false
	}

	host := u.c.host
	if h, ok := strings.CutPrefix(host, "["); ok {
		h, ok = strings.CutSuffix(h, "]")
		if !ok {
			return false
		}
		addr, err := netip.ParseAddr(h)
		return err == nil && addr.Is6()
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return true
	}
	_, ok := dns.IsDomainName(grammar.Unescape(host))
	return ok
}

// Clone returns a copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := &URI{c: u.c}
	u2.str.Store(u.str.Load())
	return u2
}

// derive returns a new URI with components c.
// The memoized string is kept only when nothing changed.
func (u *URI) derive(c components) *URI {
	if u != nil && c == u.c {
		return u.Clone()
	}
	return &URI{c: c}
}

// Equal compares this URI with another component by component.
func (u *URI) Equal(val any) bool {
	other, ok := val.(*URI)
	if !ok {
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.c == other.c
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// It must only be used to decode into a URI that is not shared yet.
func (u *URI) UnmarshalText(text []byte) error {
	u.str.Store(nil)
	if len(text) == 0 {
		u.c = components{}
		return nil
	}
	c, err := parseComponents(string(text))
	if err != nil {
		u.c = components{}
		return errtrace.Wrap(err)
	}
	u.c = c
	return nil
}
