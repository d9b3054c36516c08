package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpuri/internal/ioutil"
	"github.com/ghettovoice/httpuri/internal/util"
)

// RenderTo writes the URI to the provided writer.
func (u *URI) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	auth := u.c.authority(opts != nil && opts.HideUserInfo)

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.c.scheme != "" {
		cw.WriteString(u.c.scheme, "://")
	} else if auth != "" {
		cw.WriteString("//")
	}
	cw.WriteString(auth)
	if u.c.path != "" {
		cw.WriteString(renderPath(u.c.path, auth != ""))
	}
	if u.c.query != "" {
		cw.WriteString("?", u.c.query)
	}
	if u.c.fragment != "" {
		cw.WriteString("#", u.c.fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

// renderPath returns the path as it must appear in the URI string.
// The stored path is never changed.
func renderPath(path string, hasAuth bool) string {
	if !hasAuth && strings.HasPrefix(path, "//") {
		return "/" + strings.TrimLeft(path, "/")
	}
	if path[0] != '/' {
		return "/" + path
	}
	return path
}

// Render returns the string representation of the URI.
func (u *URI) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the canonical string representation of the URI.
// The result is computed once per URI.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	if s := u.str.Load(); s != nil {
		return *s
	}
	// concurrent callers may render twice, both get the same string
	s := u.Render(nil)
	u.str.Store(&s)
	return s
}

// Format implements fmt.Formatter for custom formatting of the URI.
//
//   - %s, %v print the canonical string;
//   - %+s writes the URI directly to the output;
//   - %q prints the quoted canonical string.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
	case 'v':
		fmt.Fprint(f, u.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
	default:
		fmt.Fprintf(f, "%%!%c(*uri.URI=%s)", verb, u.String())
	}
}

// LogValue implements [slog.LogValuer].
// The userinfo is hidden.
func (u *URI) LogValue() slog.Value {
	return slog.StringValue(u.Render(&RenderOptions{HideUserInfo: true}))
}
