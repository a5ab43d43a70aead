// Package metadata pulls descriptive page metadata from parsed markup.
package metadata

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/dtnitsch/page-visuals/models"
)

// Extract resolves title, description and site name with fixed priority
// chains; for each field the first non-empty markup location wins. No network
// access and no failure mode beyond absent fields.
func Extract(pc *models.PageContext) models.PageMetadata {
	meta := models.PageMetadata{}

	meta.Title = firstOf(pc.Doc,
		metaLookup{"og:title"},
		metaLookup{"twitter:title"},
	)
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(pc.Doc.Find("title").First().Text())
	}

	meta.Description = firstOf(pc.Doc,
		metaLookup{"og:description"},
		metaLookup{"twitter:description"},
		metaLookup{"description"},
	)

	meta.SiteName = firstOf(pc.Doc, metaLookup{"og:site_name"})

	return meta
}

// Hints are extra asset references surfaced while enriching metadata.
type Hints struct {
	Favicon string
	Image   string
}

// Enrich fills the supplemental fields (author, published time, language)
// using readability and language detection, and returns any asset hints
// readability surfaced. The core priority chains above are never overridden.
func Enrich(pc *models.PageContext, meta *models.PageMetadata) Hints {
	var hints Hints

	html, err := pc.Doc.Html()
	if err == nil {
		if pageURL, perr := url.Parse(pc.FinalURL); perr == nil {
			parser := readability.NewParser()
			article, rerr := parser.Parse(strings.NewReader(html), pageURL)
			if rerr == nil {
				meta.Author = strings.TrimSpace(article.Byline)
				if article.PublishedTime != nil {
					meta.PublishedTime = article.PublishedTime.Format("2006-01-02")
				}
				if meta.Description == "" {
					meta.Description = strings.TrimSpace(article.Excerpt)
				}
				hints.Favicon = article.Favicon
				hints.Image = article.Image
			}
		}
	}

	sample := languageSample(pc, meta)
	if code, confidence := DetectLanguage(sample); code != "" {
		meta.Language = code
		meta.LanguageConfidence = confidence
	}

	return hints
}

// languageSample builds a bounded text sample; body text dominates but the
// title and description help on sparse pages.
func languageSample(pc *models.PageContext, meta *models.PageMetadata) string {
	var b strings.Builder
	b.WriteString(meta.Title)
	b.WriteString(" ")
	b.WriteString(meta.Description)
	b.WriteString(" ")
	b.WriteString(pc.Doc.Find("body").Text())

	const maxSample = 2000
	sample := strings.Join(strings.Fields(b.String()), " ")
	if len(sample) > maxSample {
		sample = sample[:maxSample]
	}
	return sample
}

type metaLookup struct {
	key string
}

// firstOf returns the first non-empty content attribute among the lookups.
// Both property= (OpenGraph) and name= (Twitter, generic) attributes match.
func firstOf(doc *goquery.Document, lookups ...metaLookup) string {
	for _, l := range lookups {
		content := metaContent(doc, l.key)
		if content != "" {
			return content
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, key string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		k := s.AttrOr("property", "")
		if k == "" {
			k = s.AttrOr("name", "")
		}
		if !strings.EqualFold(k, key) {
			return true
		}
		content = strings.TrimSpace(s.AttrOr("content", ""))
		return content == ""
	})
	return content
}
