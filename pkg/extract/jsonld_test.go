package extract

import (
	"testing"

	"github.com/dtnitsch/page-visuals/models"
)

func TestImagesFromStructuredData(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		wantURLs []string
	}{
		{
			name: "string image",
			html: `<script type="application/ld+json">
				{"@type": "Article", "image": "https://example.com/a.jpg"}
			</script>`,
			wantURLs: []string{"https://example.com/a.jpg"},
		},
		{
			name: "object image with dimensions",
			html: `<script type="application/ld+json">
				{"@type": "Article", "image": {"url": "/b.png", "width": 800, "height": 600}}
			</script>`,
			wantURLs: []string{"https://example.com/b.png"},
		},
		{
			name: "array of mixed refs",
			html: `<script type="application/ld+json">
				{"image": ["https://example.com/c.jpg", {"url": "/d.webp"}]}
			</script>`,
			wantURLs: []string{"https://example.com/c.jpg", "https://example.com/d.webp"},
		},
		{
			name: "top-level array of objects",
			html: `<script type="application/ld+json">
				[{"image": "/e.png"}, {"@type": "Organization"}]
			</script>`,
			wantURLs: []string{"https://example.com/e.png"},
		},
		{
			name: "malformed block skipped, good block survives",
			html: `<script type="application/ld+json">{not json</script>
				<script type="application/ld+json">{"image": "/f.jpg"}</script>`,
			wantURLs: []string{"https://example.com/f.jpg"},
		},
		{
			name:     "no structured data",
			html:     `<p>hello</p>`,
			wantURLs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := newPageContext(t, "<html><head>"+tt.html+"</head><body></body></html>")
			got := ImagesFromStructuredData(pc)

			if len(got) != len(tt.wantURLs) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.wantURLs))
			}
			for i, want := range tt.wantURLs {
				if got[i].URL != want {
					t.Errorf("candidate %d URL = %q, want %q", i, got[i].URL, want)
				}
				if got[i].Source != models.SourceStructuredData {
					t.Errorf("candidate %d source = %q", i, got[i].Source)
				}
			}
		})
	}
}

func TestImagesFromStructuredData_Dimensions(t *testing.T) {
	// Numeric strings appear in the wild alongside plain numbers.
	html := `<html><head><script type="application/ld+json">
		{"image": {"url": "/g.jpg", "width": "1200", "height": 630}}
	</script></head><body></body></html>`

	got := ImagesFromStructuredData(newPageContext(t, html))
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Width != 1200 || got[0].Height != 630 {
		t.Errorf("dimensions = %dx%d, want 1200x630", got[0].Width, got[0].Height)
	}

	want := SocialScore(models.SourceStructuredData, 1200, 630, "jpg")
	if got[0].Score != want {
		t.Errorf("score = %d, want %d", got[0].Score, want)
	}
}
