package strutil

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// CutHeader splits the header value into the value itself and its parameters, stripping
// whitespaces around both.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return StripWS(header), ""
	}

	return StripWS(header[:sep]), StripWS(header[sep+1:])
}

func Unquote(str string) string {
	if len(str) > 1 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}

	return str
}

// ContainsFold reports whether substr is within str, ignoring ASCII letter case.
func ContainsFold(str, substr string) bool {
	for i := 0; i+len(substr) <= len(str); i++ {
		if strcomp.EqualFold(str[i:i+len(substr)], substr) {
			return true
		}
	}

	return false
}
