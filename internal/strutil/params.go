package strutil

import (
	"iter"
	"strings"
)

// WalkParams iterates over semicolon-separated key=value pairs, as in
// `form-data; name="file"; filename="my photo.png"`. Keys are returned with whitespaces
// stripped, values are unquoted. Entries without '=' are yielded with an empty value.
// Semicolons inside quoted values don't split the entry.
func WalkParams(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for len(data) > 0 {
			var entry string
			entry, data = cutParam(data)

			key, value, _ := strings.Cut(entry, "=")
			key = StripWS(key)
			if len(key) == 0 {
				continue
			}

			if !yield(key, Unquote(StripWS(value))) {
				return
			}
		}
	}
}

// Param returns the value of the first parameter with the given name.
func Param(data, name string) (value string, found bool) {
	for key, value := range WalkParams(data) {
		if key == name {
			return value, true
		}
	}

	return "", false
}

func cutParam(data string) (entry, rest string) {
	quoted := false

	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return data[:i], data[i+1:]
			}
		}
	}

	return data, ""
}
