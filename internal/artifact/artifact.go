package artifact

import (
	"strings"

	"github.com/Soham407/TapCard/internal/device"
)

const (
	// Extension is appended to card names to form file names and object keys.
	Extension = ".vcf"
	// MIMEType is the vCard content type used for inline delivery.
	MIMEType = "text/vcard"
	// DownloadSuffix is appended to the card name to form the display
	// filename of a forced download.
	DownloadSuffix = "_Contact.vcf"
)

// Request describes one card request: the card name from the route (or
// the configured default) and the delivery category classified from the
// client identifier. It lives for exactly one request.
type Request struct {
	Name     string
	Category device.Category
}

// SourceKind discriminates the two fetchable source forms.
type SourceKind string

const (
	// SourceLocal — Path points at a file on local disk.
	SourceLocal SourceKind = "local"
	// SourceRemote — URL is directly fetchable over HTTP. Presigned URLs
	// are short-lived, so a Source must never be cached or reused across
	// requests.
	SourceRemote SourceKind = "remote"
)

// Source is a resolved, fetchable location for one card.
type Source struct {
	Kind SourceKind
	Path string
	URL  string
}

// ValidName reports whether name is acceptable as a card name. Names are
// used verbatim to build file paths and object keys, so anything that
// could escape the configured directory or bucket prefix is rejected:
// path separators, parent-directory sequences, leading dots, and any
// character outside ASCII letters, digits, '.', '_' and '-'.
func ValidName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
