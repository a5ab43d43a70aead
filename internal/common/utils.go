package common

import (
	"net/url"
	"regexp"
	"strings"
)

// markdownLinkPattern extracts the URL from a pasted markdown link:
// "[text](https://example.com)" -> "https://example.com"
var markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

// SanitizeURL performs basic cleanup on URLs to handle common copy-paste
// issues: edge whitespace, trailing punctuation, markdown artifacts.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// Trailing punctuation from copy-paste: "https://example.com," etc.
	trailingChars := []string{",", ".", ")", "}", "]", "\"", "'", ">", ";"}
	for _, char := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, char)
	}
	leadingChars := []string{"(", "[", "<", "\"", "'"}
	for _, char := range leadingChars {
		cleaned = strings.TrimPrefix(cleaned, char)
	}

	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs cleans every URL and splits them into usable and
// invalid sets. Scheme-less input ("example.com") is accepted; the engine
// prefixes https:// itself.
func SanitizeAndValidateURLs(urls []string) ([]string, []string) {
	sanitized := make([]string, 0, len(urls))
	var invalidURLs []string

	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)

		if cleaned == "" || strings.Contains(cleaned, " ") {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		probe := cleaned
		if !strings.Contains(probe, "://") {
			probe = "https://" + probe
		}

		parsed, err := url.Parse(probe)
		if err != nil || parsed.Host == "" {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			invalidURLs = append(invalidURLs, rawURL)
			continue
		}

		sanitized = append(sanitized, cleaned)
	}

	return sanitized, invalidURLs
}
