package extract

import (
	"path"
	"strings"

	"github.com/dtnitsch/page-visuals/models"
)

// Scoring is deterministic and additive: base 50 plus bonuses, no upper
// clamp. The constants encode a fixed preference order (native declarations
// over third-party card declarations over generic structured data, larger
// over smaller, lossless and modern formats over lossy and legacy).

const baseScore = 50

// IconScore scores a favicon-domain candidate from its declared dimensions,
// normalized format and the rel attribute it was found under.
func IconScore(width, height int, format, rel string) int {
	score := baseScore

	if format == "svg" {
		score += 100
	} else {
		switch format {
		case "png":
			score += 20
		case "webp":
			score += 15
		case "gif":
			score += 10
		case "ico":
			score += 5
		}
	}

	size := width
	if height > size {
		size = height
	}
	switch {
	case size >= 512:
		score += 90
	case size >= 256:
		score += 80
	case size >= 192:
		score += 70
	case size >= 128:
		score += 60
	case size >= 64:
		score += 50
	case size >= 32:
		score += 40
	}

	if strings.Contains(rel, "apple-touch-icon") {
		score += 10
	}
	if strings.Contains(rel, "mask-icon") {
		score -= 10
	}

	return score
}

// SocialScore scores a social-preview candidate. The source bonus ranks
// og:image above twitter:image above schema.org structured data.
func SocialScore(source models.SourceTag, width, height int, format string) int {
	score := baseScore

	switch source {
	case models.SourceOGMeta:
		score += 100
	case models.SourceTwitterMeta:
		score += 80
	case models.SourceStructuredData:
		score += 60
	}

	if width > 0 && height > 0 {
		area := width * height
		switch {
		case area >= 1200*630:
			score += 90
		case area >= 800*600:
			score += 80
		case area >= 600*400:
			score += 70
		case area >= 400*300:
			score += 60
		case area >= 300*200:
			score += 50
		}
	} else if width > 0 || height > 0 {
		dim := width
		if height > dim {
			dim = height
		}
		switch {
		case dim >= 1200:
			score += 70
		case dim >= 800:
			score += 60
		case dim >= 600:
			score += 50
		}
	}

	switch format {
	case "webp":
		score += 25
	case "png":
		score += 20
	case "jpg":
		score += 15
	}

	return score
}

// NormalizeFormat reduces a declared format or MIME type to a short code
// (png/jpg/webp/gif/svg/ico). Unrecognized input returns "".
func NormalizeFormat(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ""
	}
	if i := strings.Index(hint, ";"); i >= 0 {
		hint = strings.TrimSpace(hint[:i])
	}
	hint = strings.TrimPrefix(hint, "image/")

	switch hint {
	case "png", "apng":
		return "png"
	case "jpg", "jpeg", "pjpeg":
		return "jpg"
	case "webp":
		return "webp"
	case "gif":
		return "gif"
	case "svg", "svg+xml":
		return "svg"
	case "ico", "x-icon", "vnd.microsoft.icon":
		return "ico"
	}
	return ""
}

// FormatFromRef infers a format from a reference: the MIME prefix of a data
// URI, otherwise the URL's file extension.
func FormatFromRef(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		rest := strings.TrimPrefix(ref, "data:")
		if i := strings.IndexAny(rest, ";,"); i >= 0 {
			rest = rest[:i]
		}
		return NormalizeFormat(rest)
	}

	ref, _, _ = strings.Cut(ref, "?")
	ext := strings.TrimPrefix(path.Ext(ref), ".")
	return NormalizeFormat(ext)
}
