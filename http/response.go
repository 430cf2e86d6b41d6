package http

import (
	"github.com/indigo-web/blitz/http/headers"
	"github.com/indigo-web/blitz/http/mime"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Response is built by handlers and consumed once by the serializer. Nil Body means
// the response has none, in which case no Content-Length is sent at all. An empty
// non-nil Body is sent with Content-Length: 0.
type Response struct {
	Code    status.Code
	Headers headers.Headers
	Body    []byte
}

// NewResponse returns a new instance of the Response object with no headers and no body.
func NewResponse(code status.Code) *Response {
	return &Response{
		Code: code,
	}
}

// Respond returns an empty 200 OK response.
func Respond() *Response {
	return NewResponse(status.OK)
}

// Status sets the response code.
func (r *Response) Status(code status.Code) *Response {
	r.Code = code
	return r
}

// SetHeaders merges passed headers into the response. Existing keys are overridden.
func (r *Response) SetHeaders(hdrs map[string]string) *Response {
	for key, value := range hdrs {
		r.Header(key, value)
	}

	return r
}

// Header sets the header value. In case it already exists, the value will be overridden.
func (r *Response) Header(key, value string) *Response {
	if r.Headers == nil {
		r.Headers = headers.New()
	}

	r.Headers.Set(key, value)
	return r
}

// ContentType is a shorthand for setting the Content-Type header.
func (r *Response) ContentType(value mime.MIME) *Response {
	return r.Header("Content-Type", value)
}

// String sets the response's body to the passed string. Empty string still results in
// a present body.
func (r *Response) String(body string) *Response {
	if len(body) == 0 {
		return r.Bytes([]byte{})
	}

	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.Body = body
	return r
}

// TryJSON receives a model (must be a pointer to the structure) and returns a new Response
// object and an error
func (r *Response) TryJSON(model any) (*Response, error) {
	data, err := json.ConfigDefault.Marshal(model)
	if err != nil {
		return r, err
	}

	return r.Bytes(data).ContentType(mime.JSON), nil
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error returns the response builder with an error set. The code is taken from status.HTTPError,
// other errors result in 500 Internal Server Error. The error text is used as a body.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	return r.
		Status(status.CodeOf(err)).
		ContentType(mime.Plain).
		String(err.Error())
}
