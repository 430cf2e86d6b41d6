package status

import (
	"errors"
	"fmt"
)

// HTTPError is an error that can be reported to the client as-is: the code becomes the
// response status, the message becomes the response body.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// Lifecycle errors. They are never sent to clients.
var (
	ErrShutdown         = errors.New("shutdown")
	ErrGracefulShutdown = errors.New("graceful shutdown")
)

// Framing errors: the message boundaries in the stream can't be trusted anymore.
var (
	ErrMalformedLength      = NewError(BadRequest, "malformed Content-Length value")
	ErrTruncated            = NewError(BadRequest, "stream ended in the middle of a request")
	ErrHeaderFieldsTooLarge = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrBodyTooLarge         = NewError(RequestEntityTooLarge, "request body is too large")
)

// Parse errors: the message was framed correctly, but its content is invalid.
var (
	ErrUnknownMethod       = NewError(NotImplemented, "unknown method")
	ErrInvalidEncoding     = NewError(BadRequest, "request body is not a valid UTF-8")
	ErrMalformedHeader     = NewError(BadRequest, "malformed header line")
	ErrMalformedStatusLine = NewError(BadRequest, "malformed request line")
	ErrMalformedFormdata   = NewError(BadRequest, "malformed multipart/form-data body")
)

// UnknownMethod returns ErrUnknownMethod annotated with the offending token.
func UnknownMethod(token string) error {
	return fmt.Errorf("%w: %q", ErrUnknownMethod, token)
}

var (
	ErrInternalServerError  = NewError(InternalServerError, "internal server error")
	ErrUnsupportedMediaType = NewError(UnsupportedMediaType, "unsupported media type")
	ErrNoBody               = NewError(BadRequest, "request has no body")
)

// CodeOf returns the code the error must be reported with. Errors not wrapping an
// HTTPError are considered internal ones.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}
