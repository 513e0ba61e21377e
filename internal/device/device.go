package device

import "strings"

// Category represents the delivery mode chosen for a request.
type Category string

const (
	// CategoryInlineView — the client opens the card directly, so it is
	// served with the vCard content type and no disposition header.
	CategoryInlineView Category = "inline_view"
	// CategoryForceDownload — the client is instructed to save the card
	// as a file via a Content-Disposition attachment header.
	CategoryForceDownload Category = "force_download"
)

// inlineMarker is the case-sensitive substring that marks an
// inline-capable client.
const inlineMarker = "iPhone"

// IsInline reports whether the category delivers the card for direct
// viewing rather than as a download.
func (c Category) IsInline() bool {
	return c == CategoryInlineView
}

// Classify maps a client identifier (the User-Agent header value) to a
// delivery category. The check is a plain unanchored substring match and
// is not a security boundary: any identifier containing "iPhone",
// spoofed or not, gets inline delivery. Empty identifiers force download.
func Classify(clientIdentifier string) Category {
	if strings.Contains(clientIdentifier, inlineMarker) {
		return CategoryInlineView
	}
	return CategoryForceDownload
}
