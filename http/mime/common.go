package mime

import (
	"strings"

	"github.com/indigo-web/blitz/internal/strutil"
)

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	XML         MIME = "text/xml"
	JSON        MIME = "application/json"
	PDF         MIME = "application/pdf"
	Multipart   MIME = "multipart/form-data"
	PNG         MIME = "image/png"
	JPEG        MIME = "image/jpeg"
	MPEG        MIME = "audio/mpeg"
	MP4         MIME = "video/mp4"
)

// Kind is a class of request body, determined by its MIME.
type Kind uint8

const (
	KindText Kind = iota
	KindMultipart
	KindFile
)

// fileFamilies are MIME prefixes of bodies, which are transferred as opaque binary data.
var fileFamilies = []string{"application/", "image/", "audio/", "video/"}

// Classify determines the kind of body by the Content-Type value. Matching is substring-based
// and case-insensitive, so parameters and surrounding whitespaces don't matter. Multipart is
// checked first, then the textual application/json and text/xml, and only then the rest of
// application/* and binary families.
func Classify(contentType string) Kind {
	switch {
	case strutil.ContainsFold(contentType, Multipart):
		return KindMultipart
	case strutil.ContainsFold(contentType, JSON), strutil.ContainsFold(contentType, XML):
		return KindText
	}

	for _, family := range fileFamilies {
		if strutil.ContainsFold(contentType, family) {
			return KindFile
		}
	}

	return KindText
}

// Extension returns the subtype of the media type, e.g. "png" for "image/png; q=1".
func Extension(contentType string) string {
	media, _ := strutil.CutHeader(contentType)
	_, subtype, found := strings.Cut(media, "/")
	if !found {
		return ""
	}

	return subtype
}
