package transport

import (
	"github.com/indigo-web/blitz/http"
)

// Transport reads requests from and writes responses into a single connection. It isn't
// safe for concurrent use, as a connection is always served by a single worker.
type Transport interface {
	// Read frames and parses the next request. io.EOF is returned if the peer closed the
	// stream between requests.
	Read() (*http.Request, error)
	// Write serializes and sends the response to the request.
	Write(request *http.Request, response *http.Response) error
}
