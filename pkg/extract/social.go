package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/page-visuals/models"
)

// SocialFromMeta collects OpenGraph and Twitter card image candidates.
//
// All og:image, og:image:url and og:image:secure_url values are collected in
// document order. Sibling og:image:width/height/type tags are associated with
// the first collected image only: the OG format has no way to say which image
// a width or height belongs to when several og:image tags exist. Documented
// limitation of the source format, preserved deliberately.
func SocialFromMeta(pc *models.PageContext) []models.Candidate {
	var (
		urls       []string
		firstW     int
		firstH     int
		firstType  string
		twitterURL string
	)

	pc.Doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("property", "")
		if key == "" {
			key = s.AttrOr("name", "")
		}
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}

		switch strings.ToLower(key) {
		case "og:image", "og:image:url", "og:image:secure_url":
			urls = append(urls, ResolveRef(content, pc.BaseOrigin))
		case "og:image:width":
			if n, err := strconv.Atoi(content); err == nil && n > 0 {
				firstW = n
			}
		case "og:image:height":
			if n, err := strconv.Atoi(content); err == nil && n > 0 {
				firstH = n
			}
		case "og:image:type":
			firstType = NormalizeFormat(content)
		case "twitter:image", "twitter:image:src":
			if twitterURL == "" {
				twitterURL = ResolveRef(content, pc.BaseOrigin)
			}
		}
	})

	var out []models.Candidate
	for i, ref := range urls {
		width, height := 0, 0
		format := FormatFromRef(ref)
		if i == 0 {
			width, height = firstW, firstH
			if firstType != "" {
				format = firstType
			}
		}
		out = append(out, models.Candidate{
			URL:        ref,
			Width:      width,
			Height:     height,
			FormatHint: format,
			Source:     models.SourceOGMeta,
			Score:      SocialScore(models.SourceOGMeta, width, height, format),
		})
	}

	if twitterURL != "" {
		format := FormatFromRef(twitterURL)
		out = append(out, models.Candidate{
			URL:        twitterURL,
			FormatHint: format,
			Source:     models.SourceTwitterMeta,
			Score:      SocialScore(models.SourceTwitterMeta, 0, 0, format),
		})
	}

	return out
}
