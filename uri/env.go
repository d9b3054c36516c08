package uri

//go:generate go tool mockgen -destination=../internal/testutil/envmock/envmock.go -package=envmock github.com/ghettovoice/httpuri/uri Environment

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpuri/internal/util"
	"github.com/ghettovoice/httpuri/log"
)

// Environment provides access to CGI-style server variables.
type Environment interface {
	// Lookup returns the value of the variable and true if it is set.
	Lookup(key string) (string, bool)
}

// EnvMap is an [Environment] backed by a map.
type EnvMap map[string]string

func (m EnvMap) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// OSEnv is an [Environment] backed by the process environment, as CGI servers provide it.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

// EnvOptions contains options for [FromEnvironment].
type EnvOptions struct {
	// Logger is used to log how the URI components were resolved.
	// If nil, [log.Default] is used.
	Logger *slog.Logger
}

func (o *EnvOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// FromEnvironment builds the request URI from server variables.
//
//   - scheme is "https" when HTTPS is set to anything except an empty string or "off",
//     "http" otherwise;
//   - host and port are taken from HTTP_HOST, or from SERVER_NAME / SERVER_ADDR and SERVER_PORT;
//   - path, query and fragment are taken from REQUEST_URI, the query falls back to QUERY_STRING.
func FromEnvironment(env Environment, opts *EnvOptions) (*URI, error) {
	if env == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("nil environment"))
	}

	logger := opts.log()

	scheme := "http"
	if v, ok := env.Lookup("HTTPS"); ok && v != "" && !util.EqFold(v, "off") {
		scheme = "https"
	}

	host, port := envHostPort(env, logger)

	target, _ := env.Lookup("REQUEST_URI")
	query, _ := env.Lookup("QUERY_STRING")

	u, err := fromRequestParts(scheme, host, port, target, query)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	logger.Debug("URI resolved from environment", "uri", u)
	return u, nil
}

func envHostPort(env Environment, logger *slog.Logger) (host, port string) {
	if v, ok := env.Lookup("HTTP_HOST"); ok && v != "" {
		host, port = splitHostPort(v)
		logger.Debug("host resolved from HTTP_HOST", "host", host, "port", port)
		return host, port
	}

	for _, k := range []string{"SERVER_NAME", "SERVER_ADDR"} {
		if v, ok := env.Lookup(k); ok && v != "" {
			host = v
			logger.Debug("host resolved from "+k, "host", host)
			break
		}
	}
	if host == "" {
		logger.Debug("no host variables found")
		return "", ""
	}
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}
	port, _ = env.Lookup("SERVER_PORT")
	return host, port
}

// FromRequest builds the URI of the inbound server request r.
// The scheme is "https" for TLS connections.
func FromRequest(r *http.Request) (*URI, error) {
	if r == nil {
		return nil, errtrace.Wrap(NewInvalidArgumentError("nil request"))
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	hostport := r.Host
	target := r.RequestURI
	if r.URL != nil {
		if hostport == "" {
			hostport = r.URL.Host
		}
		if target == "" {
			target = r.URL.RequestURI()
		}
	}

	host, port := splitHostPort(hostport)
	return errtrace.Wrap2(fromRequestParts(scheme, host, port, target, ""))
}

// splitHostPort splits "host[:port]", IPv6 literals must be in brackets.
func splitHostPort(hostport string) (host, port string) {
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return hostport, ""
		}
		host = hostport[:end+1]
		if p, ok := strings.CutPrefix(hostport[end+1:], ":"); ok && util.IsDigits(p) {
			port = p
		}
		return host, port
	}
	if h, p, ok := strings.Cut(hostport, ":"); ok && util.IsDigits(p) {
		return h, p
	}
	return hostport, ""
}

// fromRequestParts builds the URI through the With* methods,
// so every part goes through the same filters as in [Parse].
func fromRequestParts(scheme, host, port, target, fallbackQuery string) (*URI, error) {
	target, fragment, _ := strings.Cut(target, "#")
	path, query, hasQuery := strings.Cut(target, "?")

	// absolute-form request target, e.g. a request to a proxy
	if path != "" && path[0] != '/' && strings.Contains(path, "://") {
		if tu, err := Parse(path); err == nil {
			path = tu.Path()
		}
	}
	if !hasQuery {
		query = fallbackQuery
	}
	if path == "" {
		path = "/"
	}

	u, err := new(URI).WithScheme(scheme)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u = u.WithHost(host)
	if port != "" {
		if u, err = u.WithPort(port); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if u, err = u.WithPath(path); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if u, err = u.WithQuery(query); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u.WithFragment(fragment), nil
}
