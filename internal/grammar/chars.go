package grammar

// IsAlphanumChar checks ALPHA / DIGIT rule.
func IsAlphanumChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func charSet(chars string) [256]bool {
	var set [256]bool
	for i := range len(chars) {
		set[chars[i]] = true
	}
	return set
}

var (
	unreservedChars = charSet("-._~")
	subDelimsChars  = charSet("!$&'()*+,;=")
	pathChars       = charSet("_-.~:@&=+$,/;%")
	queryChars      = charSet("_-.~!$&'()*+,;=%:@/?")
)

// IsUnreservedChar checks RFC 3986 unreserved rule.
func IsUnreservedChar(c byte) bool {
	return unreservedChars[c] || IsAlphanumChar(c)
}

// IsSubDelimChar checks RFC 3986 sub-delims rule.
func IsSubDelimChar(c byte) bool { return subDelimsChars[c] }

// IsPathChar reports whether c can appear unescaped in a URI path.
func IsPathChar(c byte) bool {
	return pathChars[c] || IsAlphanumChar(c)
}

// IsQueryChar reports whether c can appear unescaped in a URI query or fragment.
func IsQueryChar(c byte) bool {
	return queryChars[c] || IsAlphanumChar(c)
}

// IsUserInfoChar reports whether c can appear unescaped in the user or password part of a userinfo.
// The colon is excluded since it separates the user from the password.
func IsUserInfoChar(c byte) bool {
	return IsUnreservedChar(c) || IsSubDelimChar(c)
}
