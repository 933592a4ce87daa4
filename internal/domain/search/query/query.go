// Package query defines the cleaned, serialization-ready projection of the
// filter state. A Request is what goes onto the wire: the URL query string
// of a shareable link and the parameters of a product listing call use the
// exact same encoding.
package query

import (
	"net/url"
	"strings"
)

// ListSeparator joins collection values on the wire.
const ListSeparator = ","

// Request is a cleaned key→value projection. Collection fields are stored
// comma-joined; empty values never appear (they are dropped before the
// Request is built).
type Request map[string]string

// Clone returns a copy of r.
func (r Request) Clone() Request {
	out := make(Request, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Values encodes the request as URL query values.
func (r Request) Values() url.Values {
	v := url.Values{}
	for k, val := range r {
		v.Set(k, val)
	}
	return v
}

// Encode returns the URL-encoded query string.
func (r Request) Encode() string {
	return r.Values().Encode()
}

// FromValues rebuilds a Request from URL query values, keeping only keys
// with a non-empty first value. Round-trips with Values for both scalar
// and comma-joined collection fields.
func FromValues(v url.Values) Request {
	r := Request{}
	for k := range v {
		if val := v.Get(k); val != "" {
			r[k] = val
		}
	}
	return r
}

// JoinList encodes a collection value for the wire.
func JoinList(members []string) string {
	return strings.Join(members, ListSeparator)
}

// SplitList decodes a comma-joined collection value. An empty string
// yields an empty slice, never a one-element slice of "".
func SplitList(v string) []string {
	if v == "" {
		return []string{}
	}
	return strings.Split(v, ListSeparator)
}
