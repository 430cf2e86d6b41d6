package form

import "iter"

// Field is a plain text entry of a multipart/form-data body.
type Field struct {
	Name  string
	Value string
}

// File is an entry of a multipart/form-data body, declared with a filename attribute.
// ContentType is empty, if the part didn't declare any.
type File struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// Fields is an ordered collection of text entries. The order is the one in which the
// entries were encountered in the body. Empty collection is always nil.
type Fields []Field

// Value returns the value of the first field matching the name.
func (f Fields) Value(name string) (string, bool) {
	for field := range f.Named(name) {
		return field.Value, true
	}

	return "", false
}

// Named returns an iterator over all fields matching the name.
func (f Fields) Named(name string) iter.Seq[Field] {
	return func(yield func(Field) bool) {
		for _, entry := range f {
			if entry.Name == name {
				if !yield(entry) {
					break
				}
			}
		}
	}
}

// Files is an ordered collection of file entries. Empty collection is always nil.
type Files []File

// Named returns the first file uploaded under the name.
func (f Files) Named(name string) (File, bool) {
	for _, entry := range f {
		if entry.Name == name {
			return entry, true
		}
	}

	return File{}, false
}

// Filename returns the first file matching the filename.
func (f Files) Filename(filename string) (File, bool) {
	for _, entry := range f {
		if entry.Filename == filename {
			return entry, true
		}
	}

	return File{}, false
}
