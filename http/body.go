package http

import (
	"github.com/indigo-web/blitz/http/form"
	"github.com/indigo-web/blitz/http/mime"
)

// Body is a classified request body. It is one of Text, *Multipart or *File. A request
// without body (or with a zero-length one) has nil Body.
type Body interface {
	Kind() mime.Kind
}

// Text is a UTF-8 validated body of textual content types, including application/json
// and text/xml.
type Text string

func (Text) Kind() mime.Kind {
	return mime.KindText
}

// Multipart is a decoded multipart/form-data body. Any of the collections is nil if no
// entries of that kind were present.
type Multipart struct {
	Fields form.Fields
	Files  form.Files
}

func (*Multipart) Kind() mime.Kind {
	return mime.KindMultipart
}

// File is an opaque binary body of application/*, image/*, audio/* or video/* content types.
// Extension is the media subtype, e.g. "png" for image/png.
type File struct {
	Extension string
	Content   []byte
}

func (*File) Kind() mime.Kind {
	return mime.KindFile
}
