package metadata

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/page-visuals/models"
)

func newPageContext(t *testing.T, html string) *models.PageContext {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse test HTML: %v", err)
	}
	return &models.PageContext{
		FinalURL:   "https://example.com/page",
		BaseOrigin: "https://example.com",
		Doc:        doc,
	}
}

func TestExtract_PriorityChains(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		want     models.PageMetadata
	}{
		{
			name: "og wins over twitter and title tag",
			html: `<html><head>
				<title>Tag Title</title>
				<meta property="og:title" content="OG Title">
				<meta name="twitter:title" content="Twitter Title">
				<meta property="og:description" content="OG Desc">
				<meta name="description" content="Meta Desc">
				<meta property="og:site_name" content="Example Site">
			</head><body></body></html>`,
			want: models.PageMetadata{
				Title:       "OG Title",
				Description: "OG Desc",
				SiteName:    "Example Site",
			},
		},
		{
			name: "twitter fills in when og absent",
			html: `<html><head>
				<title>Tag Title</title>
				<meta name="twitter:title" content="Twitter Title">
				<meta name="twitter:description" content="Twitter Desc">
			</head><body></body></html>`,
			want: models.PageMetadata{
				Title:       "Twitter Title",
				Description: "Twitter Desc",
			},
		},
		{
			name: "title tag and description meta as last resort",
			html: `<html><head>
				<title>  Tag Title  </title>
				<meta name="description" content="Meta Desc">
			</head><body></body></html>`,
			want: models.PageMetadata{
				Title:       "Tag Title",
				Description: "Meta Desc",
			},
		},
		{
			name: "empty og content falls through",
			html: `<html><head>
				<meta property="og:title" content="">
				<meta name="twitter:title" content="Twitter Title">
			</head><body></body></html>`,
			want: models.PageMetadata{
				Title: "Twitter Title",
			},
		},
		{
			name: "bare page yields empty fields",
			html: `<html><head></head><body></body></html>`,
			want: models.PageMetadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(newPageContext(t, tt.html))
			if got.Title != tt.want.Title {
				t.Errorf("Title = %q, want %q", got.Title, tt.want.Title)
			}
			if got.Description != tt.want.Description {
				t.Errorf("Description = %q, want %q", got.Description, tt.want.Description)
			}
			if got.SiteName != tt.want.SiteName {
				t.Errorf("SiteName = %q, want %q", got.SiteName, tt.want.SiteName)
			}
		})
	}
}

func TestEnrich_LanguageDetection(t *testing.T) {
	html := `<html><head><title>Die Entdeckung</title></head><body>
		<p>Dies ist ein langer deutscher Beispieltext, der genug Inhalt liefert,
		damit die Spracherkennung zuverlässig arbeiten kann. Die Katze sitzt auf
		dem Dach und schaut in den Garten hinunter.</p>
	</body></html>`

	pc := newPageContext(t, html)
	meta := Extract(pc)
	Enrich(pc, &meta)

	if meta.Language != "de" {
		t.Errorf("Language = %q, want de", meta.Language)
	}
	if meta.LanguageConfidence <= 0 {
		t.Errorf("LanguageConfidence = %f, want > 0", meta.LanguageConfidence)
	}
}

func TestEnrich_KeepsCoreFields(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="OG Title">
		<meta property="og:description" content="OG Desc">
	</head><body><p>This is plain English content for the detector to chew on,
	long enough that the language comes out unambiguous.</p></body></html>`

	pc := newPageContext(t, html)
	meta := Extract(pc)
	Enrich(pc, &meta)

	if meta.Title != "OG Title" {
		t.Errorf("Enrich changed Title to %q", meta.Title)
	}
	if meta.Description != "OG Desc" {
		t.Errorf("Enrich changed Description to %q", meta.Description)
	}
}

func TestEnrich_ReadabilityFields(t *testing.T) {
	html := `<html><head>
		<meta name="author" content="Jane Roe">
		<title>A Field Guide</title>
	</head><body><article>
		<p>` + strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20) + `</p>
		<p>` + strings.Repeat("A second paragraph keeps the article well above any minimum content bar. ", 10) + `</p>
	</article></body></html>`

	pc := newPageContext(t, html)
	meta := Extract(pc)
	Enrich(pc, &meta)

	if meta.Author != "Jane Roe" {
		t.Errorf("Author = %q, want Jane Roe from the author meta tag", meta.Author)
	}
}

func TestLanguageSample_Bounded(t *testing.T) {
	long := strings.Repeat("word ", 1000)
	pc := newPageContext(t, "<html><body><p>"+long+"</p></body></html>")
	meta := models.PageMetadata{}

	sample := languageSample(pc, &meta)
	if len(sample) > 2000 {
		t.Errorf("language sample length = %d, want <= 2000", len(sample))
	}
}

func TestDetectLanguage_Empty(t *testing.T) {
	code, confidence := DetectLanguage("")
	if code != "" || confidence != 0 {
		t.Errorf("DetectLanguage(\"\") = (%q, %f), want empty", code, confidence)
	}
}
