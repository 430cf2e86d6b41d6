package http1

import (
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/blitz/config"
	"github.com/indigo-web/blitz/http"
	"github.com/indigo-web/blitz/http/headers"
	"github.com/indigo-web/blitz/http/method"
	"github.com/indigo-web/blitz/http/mime"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/blitz/internal/formdata"
	"github.com/indigo-web/utils/uf"
)

const (
	contentType    = "Content-Type"
	headerKVSep    = ": "
	requestLineMin = 2
)

// Parser builds requests out of the messages cut by the Framer.
type Parser struct {
	headers config.Headers
}

func NewParser(cfg *config.Config) *Parser {
	return &Parser{
		headers: cfg.Headers,
	}
}

// Parse builds a request out of the header section and the body, as returned by the
// Framer. The body is classified by the Content-Type header, see mime.Classify. The
// passed body is retained by the request (text bodies included), so it must not be
// modified afterwards.
func (p *Parser) Parse(head string, body []byte) (*http.Request, error) {
	requestLine, rest := nextLine(head)

	tokens := strings.Fields(requestLine)
	if len(tokens) < requestLineMin {
		return nil, status.ErrMalformedStatusLine
	}

	m := method.Parse(tokens[0])
	if m == method.Unknown {
		return nil, status.UnknownMethod(tokens[0])
	}

	hdrs := headers.NewPrealloc(p.headers.Number.Default)

	for count := 0; len(rest) > 0; {
		var line string
		line, rest = nextLine(rest)
		if len(line) == 0 {
			continue
		}

		if count++; count > p.headers.Number.Maximal {
			return nil, status.ErrHeaderFieldsTooLarge
		}

		sep := strings.Index(line, headerKVSep)
		if sep == -1 {
			return nil, status.ErrMalformedHeader
		}

		hdrs.Set(line[:sep], line[sep+len(headerKVSep):])
	}

	requestBody, err := parseBody(hdrs, body)
	if err != nil {
		return nil, err
	}

	return http.NewRequest(m, tokens[1], hdrs, requestBody), nil
}

func parseBody(hdrs headers.Headers, body []byte) (http.Body, error) {
	contentTypeValue := hdrs.Value(contentType)

	switch mime.Classify(contentTypeValue) {
	case mime.KindMultipart:
		// the boundary isn't needed anymore, as the body is already decoded
		hdrs.Set(contentType, mime.Multipart)
		if len(body) == 0 {
			return nil, nil
		}

		fields, files, err := formdata.Decode(body)
		if err != nil {
			return nil, err
		}

		return &http.Multipart{
			Fields: fields,
			Files:  files,
		}, nil
	case mime.KindFile:
		if len(body) == 0 {
			return nil, nil
		}

		return &http.File{
			Extension: mime.Extension(contentTypeValue),
			Content:   body,
		}, nil
	default:
		if len(body) == 0 {
			return nil, nil
		}

		if !utf8.Valid(body) {
			return nil, status.ErrInvalidEncoding
		}

		return http.Text(uf.B2S(body)), nil
	}
}

// nextLine cuts the first line, stripping its terminator (either LF or CRLF.)
func nextLine(text string) (line, rest string) {
	line, rest, _ = strings.Cut(text, "\n")
	return strings.TrimSuffix(line, "\r"), rest
}
