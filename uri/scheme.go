package uri

import (
	"maps"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpuri/internal/util"
)

// stdPorts maps each supported scheme to its standard port.
var stdPorts = map[string]uint16{
	"http":  80,
	"https": 443,
}

var supportedSchemes = strings.Join(slices.Sorted(maps.Keys(stdPorts)), ", ")

// StdPort returns the standard port of the scheme and true if the scheme is supported.
func StdPort(scheme string) (uint16, bool) {
	p, ok := stdPorts[util.LCase(scheme)]
	return p, ok
}

// filterScheme normalizes s to the lowercase scheme name.
// A trailing ":" or "://" is dropped.
func filterScheme(s string) (string, error) {
	s = util.LCase(util.TrimSP(s))
	if t, ok := strings.CutSuffix(s, "://"); ok {
		s = t
	} else {
		s = strings.TrimSuffix(s, ":")
	}
	if s == "" {
		return "", nil
	}
	if _, ok := stdPorts[s]; !ok {
		return "", errtrace.Wrap(NewInvalidArgumentError(
			"unsupported scheme %q: must be an empty string or one of (%s)", s, supportedSchemes,
		))
	}
	return s, nil
}

// isNonStdPort reports whether the port must be rendered.
// Without a scheme there is nothing to compare with, so any port is non-standard.
// Without a host or a port there is nothing to render.
func (c *components) isNonStdPort() bool {
	if c.scheme == "" {
		return true
	}
	if c.host == "" || c.port == 0 {
		return false
	}
	std, ok := stdPorts[c.scheme]
	return !ok || c.port != std
}
