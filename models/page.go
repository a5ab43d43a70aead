package models

import "github.com/PuerkitoBio/goquery"

// PageContext carries the per-request view of a fetched page. It is created
// once by the fetcher and shared read-only by every extractor, so parallel
// test runs (and parallel asset resolution) never contend on it.
type PageContext struct {
	FinalURL   string            // post-redirect URL
	BaseOrigin string            // scheme://host of FinalURL, for relative refs
	Doc        *goquery.Document // parsed markup, read-only
}

// PageMetadata holds the descriptive metadata extracted from a page.
// All fields are optional; absent values stay empty.
type PageMetadata struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SiteName    string `json:"site_name,omitempty" yaml:"site_name,omitempty"`

	// Enrichment beyond the core priority chains.
	Author             string  `json:"author,omitempty" yaml:"author,omitempty"`
	PublishedTime      string  `json:"published_time,omitempty" yaml:"published_time,omitempty"`
	Language           string  `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
}
