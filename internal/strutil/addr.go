package strutil

const (
	defaultHost = "0.0.0.0"
	defaultPort = "0"
)

// NormalizeAddress fills the omitted host of the listening address, so ":8080" binds to all
// the interfaces explicitly. Empty address results in a random port on all the interfaces.
func NormalizeAddress(addr string) string {
	switch {
	case len(addr) == 0:
		return defaultHost + ":" + defaultPort
	case addr[0] == ':':
		return defaultHost + addr
	default:
		return addr
	}
}
