package http

import (
	"net"

	"github.com/indigo-web/blitz/http/headers"
	"github.com/indigo-web/blitz/http/method"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Request represents HTTP request
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Path is the request target as it was received, without any decoding.
	Path string
	// Headers holds header pairs, the lookup is case-insensitive. Duplicated keys are resolved
	// to the last occurrence.
	Headers headers.Headers
	// Body is nil if the request carried no body.
	Body Body
	// Remote holds the remote address. Please note that this is generally not a good parameter to identify
	// a user, because there might be proxies in the middle. Nil for requests not read from a connection.
	Remote net.Addr
}

func NewRequest(m method.Method, path string, hdrs headers.Headers, body Body) *Request {
	if hdrs == nil {
		hdrs = headers.New()
	}

	return &Request{
		Method:  m,
		Path:    path,
		Headers: hdrs,
		Body:    body,
	}
}

// Header returns a value of the header, or empty string if there's none.
func (r *Request) Header(key string) string {
	return r.Headers.Value(key)
}

// Text returns the body if it is textual.
func (r *Request) Text() (string, bool) {
	text, ok := r.Body.(Text)
	return string(text), ok
}

// Multipart returns the body if it is a decoded multipart/form-data.
func (r *Request) Multipart() (*Multipart, bool) {
	m, ok := r.Body.(*Multipart)
	return m, ok
}

// File returns the body if it is a binary one.
func (r *Request) File() (*File, bool) {
	f, ok := r.Body.(*File)
	return f, ok
}

// JSON unmarshalls the textual body into the model. Bodies of other kinds result in
// status.ErrUnsupportedMediaType, absent body in status.ErrNoBody.
func (r *Request) JSON(model any) error {
	switch body := r.Body.(type) {
	case nil:
		return status.ErrNoBody
	case Text:
		return json.ConfigDefault.Unmarshal(uf.S2B(string(body)), model)
	default:
		return status.ErrUnsupportedMediaType
	}
}
