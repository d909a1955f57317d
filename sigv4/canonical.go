package sigv4

import (
	"net/http"
	"sort"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// uriEncode percent-encodes every byte of s outside the unreserved set
// (letters, digits, '-', '.', '_', '~') using uppercase hex digits. When
// encodeSlash is false, '/' passes through so paths keep their segment
// separators.
func uriEncode(s string, encodeSlash bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z',
			c >= 'a' && c <= 'z',
			c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		case c == '/' && !encodeSlash:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xF])
		}
	}
	return b.String()
}

// canonicalPath normalizes and encodes a request path. Dot segments are
// resolved per RFC 3986 before encoding. An empty path canonicalizes to "/".
func canonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	return uriEncode(removeDotSegments(p), false)
}

// removeDotSegments implements the RFC 3986 section 5.2.4 algorithm.
func removeDotSegments(p string) string {
	var out []string
	trailingSlash := false
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			trailingSlash = true
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			trailingSlash = true
		default:
			out = append(out, seg)
			trailingSlash = false
		}
	}
	result := "/" + strings.Join(out, "/")
	if trailingSlash && result != "/" {
		result += "/"
	}
	return result
}

// canonicalQuery sorts and encodes a raw query string. Each pair is split on
// its first '=' (a missing '=' yields an empty value), name and value are
// percent-encoded, and the pairs are ordered by name with ties broken by
// value, byte-wise. An absent query yields the empty string.
func canonicalQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	type parameter struct {
		name  string
		value string
	}
	var parameters []parameter
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		parameters = append(parameters, parameter{
			name:  uriEncode(name, true),
			value: uriEncode(value, true),
		})
	}

	sort.Slice(parameters, func(i, j int) bool {
		if parameters[i].name != parameters[j].name {
			return parameters[i].name < parameters[j].name
		}
		return parameters[i].value < parameters[j].value
	})

	var b strings.Builder
	for i, p := range parameters {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.name)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	return b.String()
}

// canonicalHeaders builds the canonical header block and the signed-headers
// line for a parsed request. Header names are lower-cased and the block is
// sorted by name. Values of a repeated name keep their order of appearance
// and are joined with a single comma after space canonicalization. The Host
// value promoted out of the header map by the parser is restored as a "host"
// header so it is always signed.
func canonicalHeaders(req *http.Request) (headerBlock, signedHeaders string) {
	grouped := make(map[string][]string)
	var names []string
	add := func(name, value string) {
		lower := strings.ToLower(name)
		if _, ok := grouped[lower]; !ok {
			names = append(names, lower)
		}
		grouped[lower] = append(grouped[lower], collapseSpaces(value))
	}

	if req.Host != "" {
		add("host", req.Host)
	}
	for name, values := range req.Header {
		for _, value := range values {
			add(name, value)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(strings.Join(grouped[name], ","))
		b.WriteByte('\n')
	}

	return b.String(), strings.Join(names, ";")
}

// collapseSpaces reduces runs of two or more spaces to a single space and
// trims leading and trailing spaces.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastWasSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
		} else {
			b.WriteByte(c)
			lastWasSpace = false
		}
	}
	return strings.Trim(b.String(), " ")
}
