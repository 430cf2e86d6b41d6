package formdata

import (
	"strings"

	"github.com/indigo-web/blitz/http/form"
	"github.com/indigo-web/blitz/http/status"
	"github.com/indigo-web/blitz/internal/formdata/internal"
	"github.com/indigo-web/blitz/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const (
	contentDisposition = "Content-Disposition"
	contentType        = "Content-Type"
	formData           = "form-data"
	// partEnd separates a part's content from the following boundary line.
	partEnd = "\r\n--"
)

type header struct {
	Name, Filename, ContentType string
	IsFile                      bool
}

// Decode parses a multipart/form-data body without knowing its boundary token: every line
// starting with a dash is considered a boundary. The first boundary line met is remembered,
// so the closing delimiter (the same line suffixed by "--") ends the decoding and the epilogue
// is ignored.
//
// Text parts are terminated by the first CRLF, file parts by a CRLF immediately followed by
// two dashes. Returned values and file contents share the memory with the body, which
// therefore must not be modified afterwards. Empty collections are always nil.
func Decode(body []byte) (fields form.Fields, files form.Files, err error) {
	var delimiter string
	s := internal.NewStream(uf.B2S(body))

	for !s.Empty() {
		line, _ := s.Line()

		switch {
		case len(line) == 0:
			continue
		case line[0] == '-':
			if len(delimiter) == 0 {
				delimiter = line
			} else if len(line) == len(delimiter)+2 && strings.HasPrefix(line, delimiter) &&
				strings.HasSuffix(line, "--") {
				return fields, files, nil
			}

			continue
		}

		hdr, ok := parseHeaders(&s, line)
		if !ok {
			return nil, nil, status.ErrMalformedFormdata
		}

		if hdr.IsFile {
			end := s.Index(partEnd)
			if end == -1 {
				return nil, nil, status.ErrMalformedFormdata
			}

			content := s.Advance(end)
			s.Advance(len("\r\n"))
			files = append(files, form.File{
				Name:        hdr.Name,
				Filename:    hdr.Filename,
				ContentType: hdr.ContentType,
				Content:     uf.S2B(content),
			})

			continue
		}

		value, terminated := s.Line()
		if !terminated {
			return nil, nil, status.ErrMalformedFormdata
		}

		fields = append(fields, form.Field{
			Name:  hdr.Name,
			Value: value,
		})
	}

	return fields, files, nil
}

// parseHeaders processes the disposition line of a part and consumes the rest of part
// headers up to the blank separator line.
func parseHeaders(s *internal.Stream, disposition string) (hdr header, ok bool) {
	hdr, ok = parseDisposition(disposition)
	if !ok {
		return hdr, false
	}

	for {
		line, terminated := s.Line()
		if !terminated {
			return hdr, false
		}

		if len(line) == 0 {
			return hdr, true
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return hdr, false
		}

		if strcomp.EqualFold(strutil.StripWS(key), contentType) {
			hdr.ContentType, _ = strutil.CutHeader(value)
		}
	}
}

func parseDisposition(line string) (hdr header, ok bool) {
	key, value, found := strings.Cut(line, ":")
	if !found || !strcomp.EqualFold(strutil.StripWS(key), contentDisposition) {
		return hdr, false
	}

	disposition, params := strutil.CutHeader(value)
	if !strcomp.EqualFold(disposition, formData) {
		return hdr, false
	}

	hdr.Name, found = strutil.Param(params, "name")
	if !found || len(hdr.Name) == 0 {
		return hdr, false
	}

	hdr.Filename, hdr.IsFile = strutil.Param(params, "filename")

	return hdr, true
}
