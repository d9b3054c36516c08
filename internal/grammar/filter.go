package grammar

import "strings"

func shouldEscapePathChar(c byte) bool { return !IsPathChar(c) }

func shouldEscapeQueryChar(c byte) bool { return !IsQueryChar(c) }

func shouldEscapeUserInfoChar(c byte) bool { return !IsUserInfoChar(c) }

// EscapePath percent-encodes every byte of s not allowed in a URI path.
// Already encoded triplets are kept, so the result can be passed through EscapePath again unchanged.
func EscapePath(s string) string { return Escape(s, shouldEscapePathChar) }

// EscapeQuery percent-encodes a query string without the leading "?".
// The query is split on "&" into key[=value] pairs,
// each key and value is escaped independently and the pairs are joined back.
// A pair without "=" stays valueless.
func EscapeQuery(s string) string {
	if s == "" {
		return ""
	}

	pairs := strings.Split(s, "&")
	for i, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			pairs[i] = escapeQueryPart(k)
			continue
		}
		pairs[i] = escapeQueryPart(k) + "=" + escapeQueryPart(v)
	}
	return strings.Join(pairs, "&")
}

func escapeQueryPart(s string) string { return Escape(s, shouldEscapeQueryChar) }

// EscapeFragment percent-encodes a fragment without the leading "#".
func EscapeFragment(s string) string { return Escape(s, shouldEscapeQueryChar) }

// EscapeUserInfo percent-encodes a single user or password part of a userinfo.
func EscapeUserInfo(s string) string { return Escape(s, shouldEscapeUserInfoChar) }
