package http1

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"

	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/blitz/internal/strutil"
	"github.com/indigo-web/utils/buffer"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const contentLength = "Content-Length"

// Framer cuts messages out of a byte stream: the header section up to the first empty line,
// and exactly Content-Length bytes of body after it. Whatever follows stays buffered for the
// next call, so pipelined requests are read one after another from the same Framer.
type Framer struct {
	reader *bufio.Reader
	// head accumulates the header section of the current message, bounded by Headers.MaxSpace.
	head        *buffer.Buffer
	maxBodySize uint64
}

func NewFramer(r io.Reader, cfg *config.Config) *Framer {
	return &Framer{
		reader:      bufio.NewReaderSize(r, cfg.NET.ReadBufferSize),
		head:        buffer.New(min(cfg.NET.ReadBufferSize, cfg.Headers.MaxSpace), cfg.Headers.MaxSpace),
		maxBodySize: cfg.Body.MaxSize,
	}
}

// ReadMessage returns the header section (request line and headers, without the terminating
// empty line) and the body. The body is always a freshly allocated slice, or nil if the
// message has none.
//
// io.EOF is returned only if the stream ended cleanly between messages. If it ends in the
// middle of one, status.ErrTruncated is returned instead.
func (f *Framer) ReadMessage() (head string, body []byte, err error) {
	f.head.Clear()

	var (
		length         uint64
		hasRequestLine bool
	)

	for {
		raw, err := f.readLine()
		if err != nil {
			if err == io.EOF && hasRequestLine {
				err = status.ErrTruncated
			}

			return "", nil, err
		}

		line := trimEOL(raw)
		if len(line) == 0 {
			if !hasRequestLine {
				// empty lines preceding the request line are ignored, however still
				// occupy the space
				f.head.Finish()
				continue
			}

			section := f.head.Finish()
			head = string(section[:len(section)-len(raw)])
			break
		}

		if !hasRequestLine {
			hasRequestLine = true
			continue
		}

		key, value, found := bytes.Cut(line, []byte(":"))
		if found && strcomp.EqualFold(uf.B2S(bytes.TrimSpace(key)), contentLength) {
			if length, err = f.parseContentLength(uf.B2S(value)); err != nil {
				return "", nil, err
			}
		}
	}

	if length == 0 {
		return head, nil, nil
	}

	body = make([]byte, length)
	if _, err = io.ReadFull(f.reader, body); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || err == io.EOF {
			err = status.ErrTruncated
		}

		return "", nil, err
	}

	return head, body, nil
}

// readLine appends the next line to the head buffer and returns it, including the line
// terminator (either CRLF or a bare LF.) The returned slice is valid until the next call.
// io.EOF is returned only if the stream ended exactly at the line beginning.
func (f *Framer) readLine() (raw []byte, err error) {
	begin := f.head.SegmentLength()

	for {
		chunk, err := f.reader.ReadSlice('\n')
		if !f.head.Append(chunk) {
			return nil, status.ErrHeaderFieldsTooLarge
		}

		switch err {
		case nil:
			return f.head.Preview()[begin:], nil
		case bufio.ErrBufferFull:
		case io.EOF:
			if f.head.SegmentLength() > begin {
				return nil, status.ErrTruncated
			}

			return nil, io.EOF
		default:
			return nil, err
		}
	}
}

func (f *Framer) parseContentLength(value string) (uint64, error) {
	length, err := strconv.ParseUint(strutil.StripWS(value), 10, 64)
	if err != nil {
		return 0, status.ErrMalformedLength
	}

	if length > f.maxBodySize {
		return 0, status.ErrBodyTooLarge
	}

	return length, nil
}

func trimEOL(line []byte) []byte {
	line = line[:len(line)-1]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line
}
