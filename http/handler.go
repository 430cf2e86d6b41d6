package http

// Handler processes a request and returns a response. Handlers are called concurrently
// from all the workers, so they must be safe for concurrent use. Returning nil results
// in an empty 200 OK.
type Handler interface {
	Handle(*Request) *Response
}

// HandlerFunc is an adapter to allow the use of ordinary functions as handlers.
type HandlerFunc func(*Request) *Response

func (f HandlerFunc) Handle(r *Request) *Response {
	return f(r)
}
