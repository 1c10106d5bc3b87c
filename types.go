package inkwell

// PageMeta carries per-page OpenGraph and SEO metadata. The metadata
// resolver produces Title and Description; handlers fill in the rest.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
