package internal

import "strings"

// Stream is a read cursor over a string.
type Stream struct {
	data string
}

func NewStream(data string) Stream {
	return Stream{data}
}

// Index returns the offset of the substring relatively to the current position, or -1.
func (s *Stream) Index(substr string) int {
	return strings.Index(s.data, substr)
}

func (s *Stream) Advance(n int) (leftBehind string) {
	leftBehind, s.data = s.data[:n], s.data[n:]
	return leftBehind
}

// Line returns everything until the next CRLF, consuming the CRLF itself. If there's none,
// the rest of the stream is returned and terminated is false.
func (s *Stream) Line() (line string, terminated bool) {
	crlf := s.Index("\r\n")
	if crlf == -1 {
		return s.Advance(len(s.data)), false
	}

	line = s.Advance(crlf)
	s.Advance(len("\r\n"))

	return line, true
}

func (s *Stream) Empty() bool {
	return len(s.data) == 0
}
