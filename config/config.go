package config

type (
	NETWriteBufferSize struct {
		Default, Maximal int
	}

	HeadersNumber struct {
		Default, Maximal int
	}
)

type (
	NET struct {
		// ReadBufferSize is the size of the buffered reader wrapping every connection. Lines
		// longer than the buffer are still accepted, but cost an extra copy.
		ReadBufferSize int
		// WriteBufferSize is the initial capacity of the per-connection serialization buffer.
		// After writing a response, a buffer grown beyond the Maximal value is dropped and
		// reallocated at Default size, so a single huge response doesn't pin memory forever.
		WriteBufferSize NETWriteBufferSize
	}

	Headers struct {
		// MaxSpace limits the amount of bytes occupied by the request line and headers,
		// including line terminators. Exceeding it results in status.ErrHeaderFieldsTooLarge.
		MaxSpace int
		// Number is responsible for headers map size.
		// Default value is an initial size of allocated headers map.
		// Maximal value is maximum number of headers allowed to be presented. Exceeding it
		// results in status.ErrHeaderFieldsTooLarge as well.
		Number HeadersNumber
	}

	Body struct {
		// MaxSize is the greatest Content-Length value accepted. Requests declaring more are
		// rejected with status.ErrBodyTooLarge before a single body byte is read.
		MaxSize uint64
	}

	Server struct {
		// Name is sent in the Server header of every response, unless the response
		// sets its own.
		Name string
	}
)

// Config holds settings used across the server: worker count, limits and buffer sizes.
//
// Always start from Default() and modify the values you need. A manually initialized
// config with zero fields is filled from defaults by Fill.
type Config struct {
	// Workers is the number of goroutines serving connections. Each of them serves exactly
	// one connection at a time, so this is also the limit of concurrently served clients.
	Workers int
	NET     NET
	Headers Headers
	Body    Body
	Server  Server
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Workers: 4,
		NET: NET{
			ReadBufferSize: 4 * 1024,
			WriteBufferSize: NETWriteBufferSize{
				Default: 2 * 1024,
				Maximal: 64 * 1024,
			},
		},
		Headers: Headers{
			// 64kb of request line and headers is pretty permitting, considering most
			// web-entities limit it to 8-16kb.
			MaxSpace: 64 * 1024,
			Number: HeadersNumber{
				Default: 10,
				Maximal: 50,
			},
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
		},
		Server: Server{
			Name: "blitz",
		},
	}
}

// Fill replaces all zero and negative values of the passed config with defaults. Nil config
// results in Default().
func Fill(cfg *Config) *Config {
	def := Default()
	if cfg == nil {
		return def
	}

	filled := *cfg
	filled.Workers = positive(filled.Workers, def.Workers)
	filled.NET.ReadBufferSize = positive(filled.NET.ReadBufferSize, def.NET.ReadBufferSize)
	filled.NET.WriteBufferSize.Default = positive(filled.NET.WriteBufferSize.Default, def.NET.WriteBufferSize.Default)
	filled.NET.WriteBufferSize.Maximal = positive(filled.NET.WriteBufferSize.Maximal, def.NET.WriteBufferSize.Maximal)
	filled.Headers.MaxSpace = positive(filled.Headers.MaxSpace, def.Headers.MaxSpace)
	filled.Headers.Number.Default = positive(filled.Headers.Number.Default, def.Headers.Number.Default)
	filled.Headers.Number.Maximal = positive(filled.Headers.Number.Maximal, def.Headers.Number.Maximal)

	if filled.Body.MaxSize == 0 {
		filled.Body.MaxSize = def.Body.MaxSize
	}

	if len(filled.Server.Name) == 0 {
		filled.Server.Name = def.Server.Name
	}

	return &filled
}

func positive(value, or int) int {
	if value <= 0 {
		return or
	}

	return value
}
