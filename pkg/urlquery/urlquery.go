// Package urlquery builds query strings that keep parameters in insertion order.
//
// net/url.Values sorts keys on Encode, which breaks indexed parameter lists such
// as part1, qty1, part2 ... and reorders part10 before part2. DigiKey's FastAdd
// cart URL and the logged API URLs are both easier to read and to assert on when
// the order the caller chose is preserved.
package urlquery

import (
	"net/url"
	"strings"
)

type pair struct {
	key   string
	value string
}

// Values is an ordered list of query parameters. The zero value is ready to use.
type Values struct {
	pairs []pair
}

// Add appends key=value. Repeated keys are kept.
func (v *Values) Add(key, value string) {
	v.pairs = append(v.pairs, pair{key: key, value: value})
}

// Len returns the number of parameters.
func (v *Values) Len() int {
	return len(v.pairs)
}

// Encode returns the form-encoded query string (spaces become "+").
func (v *Values) Encode() string {
	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// AppendTo returns base with the encoded query appended. base is returned
// unchanged when there are no parameters.
func (v *Values) AppendTo(base string) string {
	if v.Len() == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + v.Encode()
}
