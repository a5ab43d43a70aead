package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/page-visuals/models"
)

var sizesRe = regexp.MustCompile(`(\d+)[xX](\d+)`)

// ParseSizes extracts the first WxH pair from a sizes attribute
// (e.g. "32x32" or "16x16 32x32"). Returns zeros when absent.
func ParseSizes(attr string) (width, height int) {
	m := sizesRe.FindStringSubmatch(attr)
	if m == nil {
		return 0, 0
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	return width, height
}

// IconsFromLinks scans every link element whose rel contains "icon" and
// emits one scored candidate per tag.
func IconsFromLinks(pc *models.PageContext) []models.Candidate {
	var out []models.Candidate

	pc.Doc.Find("link[rel]").Each(func(_ int, s *goquery.Selection) {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		if !strings.Contains(rel, "icon") {
			return
		}
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}

		ref := ResolveRef(href, pc.BaseOrigin)
		width, height := ParseSizes(s.AttrOr("sizes", ""))

		format := NormalizeFormat(s.AttrOr("type", ""))
		if format == "" {
			format = FormatFromRef(ref)
		}

		out = append(out, models.Candidate{
			URL:        ref,
			Width:      width,
			Height:     height,
			FormatHint: format,
			Source:     models.SourceLinkTag,
			Score:      IconScore(width, height, format, rel),
		})
	})

	return out
}

// StaticFallbackIcons emits the two fixed root-path guesses regardless of
// markup content. Fixed low scores keep them as a safety net that is still
// tried before the external fallback tier.
func StaticFallbackIcons(baseOrigin string) []models.Candidate {
	base := strings.TrimSuffix(baseOrigin, "/")
	return []models.Candidate{
		{
			URL:        base + "/favicon.ico",
			FormatHint: "ico",
			Source:     models.SourceStaticFallback,
			Score:      15,
		},
		{
			URL:        base + "/apple-touch-icon.png",
			FormatHint: "png",
			Source:     models.SourceStaticFallback,
			Score:      10,
		},
	}
}
