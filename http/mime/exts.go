package mime

import "strings"

// Extension is the default set of supported file extensions.
var Extension = map[string]MIME{
	".js":   JavaScript,
	".txt":  Plain,
	".html": HTML,
	".css":  CSS,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".png":  PNG,
	".ico":  ICO,
}

// Table maps lowercase file extensions (including the leading dot) to their MIME types.
type Table map[string]MIME

// NewTable returns a copy of the default extensions merged with extra entries. Keys of
// extra entries are lowercased and get a leading dot if it's missing.
func NewTable(extra map[string]MIME) Table {
	table := make(Table, len(Extension)+len(extra))
	for ext, mime := range Extension {
		table[ext] = mime
	}

	for ext, mime := range extra {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		table[ext] = mime
	}

	return table
}

// Lookup returns the MIME type for the extension and whether it's supported. Unsupported
// extensions result in the Fallback.
func (t Table) Lookup(ext string) (MIME, bool) {
	mime, found := t[ext]
	if !found {
		return Fallback, false
	}

	return mime, true
}
