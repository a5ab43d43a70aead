package extract

import "strings"

// ResolveRef normalizes a raw asset reference against the page's base origin.
//
// Bare relative paths are treated as origin-root-relative, not resolved
// against the directory of the source page. Known limitation: a reference
// like "img/icon.png" on /blog/post becomes {origin}/img/icon.png.
func ResolveRef(ref, baseOrigin string) string {
	ref = strings.TrimSpace(ref)
	base := strings.TrimSuffix(baseOrigin, "/")

	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "data:"):
		return ref
	case strings.Contains(ref, "://"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	case strings.HasPrefix(ref, "/"):
		return base + ref
	default:
		return base + "/" + ref
	}
}
