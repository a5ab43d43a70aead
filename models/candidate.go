package models

// SourceTag identifies which discovery source produced a candidate or asset.
type SourceTag string

const (
	SourceLinkTag        SourceTag = "link-tag"
	SourceManifest       SourceTag = "manifest"
	SourceStaticFallback SourceTag = "static-fallback"
	SourceExternalAPI    SourceTag = "external-fallback"
	SourceOGMeta         SourceTag = "og-meta"
	SourceTwitterMeta    SourceTag = "twitter-meta"
	SourceStructuredData SourceTag = "structured-data"
	SourceReadability    SourceTag = "readability-hint"
	SourceCallerDefault  SourceTag = "caller-default"
	SourceCachedDefault  SourceTag = "static-fallback-default"
)

// IsFallbackSource reports whether an asset produced from this source must be
// flagged as a fallback result. Static root-path guesses (/favicon.ico) are
// still considered primary discovery, not fallback.
func (s SourceTag) IsFallbackSource() bool {
	switch s {
	case SourceExternalAPI, SourceCallerDefault, SourceCachedDefault:
		return true
	}
	return false
}

// Candidate is a scored, not-yet-fetched reference to a possible asset.
// Immutable once created; lives for a single request.
type Candidate struct {
	URL        string    // absolute URL or data URI
	Width      int       // declared width, 0 if unknown
	Height     int       // declared height, 0 if unknown
	FormatHint string    // declared format, e.g. "image/png" or "png"
	Source     SourceTag
	Score      int
}

// ResolvedAsset is the terminal artifact: validated bytes plus their
// determined format and provenance.
type ResolvedAsset struct {
	Bytes      []byte
	Format     string // normalized short code: png/jpg/webp/gif/svg/ico
	Source     SourceTag
	OriginURL  string
	Score      int // score of the winning candidate
	IsFallback bool
}
