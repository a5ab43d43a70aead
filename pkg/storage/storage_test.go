package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/page-visuals/models"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "host only",
			url:  "https://example.com",
			want: "example_com",
		},
		{
			name: "host with path avoids collisions",
			url:  "https://github.com/urfave/cli",
			want: "github_com-urfave-cli",
		},
		{
			name: "path dots become underscores",
			url:  "https://example.com/page.html",
			want: "example_com-page_html",
		},
		{
			name: "unparseable input degrades gracefully",
			url:  "not a url/with slash",
			want: "not a url_with slash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeName(tt.url); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSaveAsset(t *testing.T) {
	dir := t.TempDir()
	s := &Storage{}

	asset := &models.ResolvedAsset{
		Bytes:  []byte{0x89, 'P', 'N', 'G'},
		Format: "png",
		Source: models.SourceLinkTag,
	}

	path, err := s.SaveAsset(dir, "https://example.com/blog/post", "icon", asset)
	if err != nil {
		t.Fatalf("SaveAsset() error = %v", err)
	}

	want := filepath.Join(dir, "example_com-blog-post-icon.png")
	if path != want {
		t.Errorf("SaveAsset() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written asset: %v", err)
	}
	if string(data) != string(asset.Bytes) {
		t.Errorf("written bytes = %v, want %v", data, asset.Bytes)
	}
}

func TestSaveAsset_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "assets")
	s := &Storage{}

	asset := &models.ResolvedAsset{Bytes: []byte{0x00}, Format: "ico"}
	path, err := s.SaveAsset(dir, "https://example.com", "icon", asset)
	if err != nil {
		t.Fatalf("SaveAsset() error = %v", err)
	}
	if !s.HasFile(path) {
		t.Errorf("SaveAsset() did not create %q", path)
	}
}
