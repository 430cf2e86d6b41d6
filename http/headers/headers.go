package headers

import (
	"net/textproto"

	"github.com/indigo-web/blitz/internal/strutil"
)

// Headers maps header keys to their values. Keys are stored in their canonical form, as
// "Content-Type" for "content-TYPE", so every operation costs a single map access regardless
// of the number of entries. Duplicated keys resolve to the last value set.
//
// Plain map literals are accepted wherever Headers are expected, however their keys must be
// canonical, otherwise they can be found only by their exact spelling.
type Headers map[string]string

func New() Headers {
	return make(Headers)
}

// NewPrealloc returns Headers with space for n entries allocated in advance.
func NewPrealloc(n int) Headers {
	return make(Headers, n)
}

// FromMap copies the map into new Headers, merging case-insensitive duplicates.
func FromMap(m map[string]string) Headers {
	h := make(Headers, len(m))
	for key, value := range m {
		h.Set(key, value)
	}

	return h
}

// Canonical returns the canonical form of the key. Keys containing characters not allowed
// in header names are returned unchanged.
func Canonical(key string) string {
	return textproto.CanonicalMIMEHeaderKey(key)
}

// Set stores the value, overriding any previous one stored under the same key regardless
// of its case.
func (h Headers) Set(key, value string) Headers {
	h[Canonical(key)] = value
	return h
}

// Get returns the value corresponding to the key and a bool, indicating whether the key
// exists.
func (h Headers) Get(key string) (string, bool) {
	if value, found := h[key]; found {
		return value, true
	}

	value, found := h[Canonical(key)]
	return value, found
}

// Value returns the value corresponding to the key. Otherwise, empty string is returned
func (h Headers) Value(key string) string {
	return h.ValueOr(key, "")
}

// ValueOr returns either the value corresponding to the key or custom value, defined
// via the second parameter
func (h Headers) ValueOr(key, or string) string {
	value, found := h.Get(key)
	if !found {
		return or
	}

	return value
}

// Has indicates whether there's an entry of the key
func (h Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Delete removes the key, both in the exact and the canonical spelling.
func (h Headers) Delete(key string) {
	delete(h, key)
	delete(h, Canonical(key))
}

// Param returns a parameter of the header value, e.g. charset of `text/html; charset=utf8`
func (h Headers) Param(key, param string) (string, bool) {
	_, params := strutil.CutHeader(h.Value(key))
	return strutil.Param(params, param)
}
