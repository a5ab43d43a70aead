package resolver

import (
	"bytes"
	"testing"
)

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "png",
			data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A},
			want: "png",
		},
		{
			name: "jpeg",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0},
			want: "jpg",
		},
		{
			name: "webp",
			data: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "),
			want: "webp",
		},
		{
			name: "gif",
			data: []byte("GIF89a"),
			want: "gif",
		},
		{
			name: "ico",
			data: []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00},
			want: "ico",
		},
		{
			name: "bare svg",
			data: []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
			want: "svg",
		},
		{
			name: "svg with xml prolog",
			data: []byte(`<?xml version="1.0"?><svg></svg>`),
			want: "svg",
		},
		{
			name: "svg with leading whitespace",
			data: []byte("\n  <svg></svg>"),
			want: "svg",
		},
		{
			name: "xml that is not svg",
			data: []byte(`<?xml version="1.0"?><rss></rss>`),
			want: "",
		},
		{
			name: "html error page",
			data: []byte(`<!DOCTYPE html><html><body>404</body></html>`),
			want: "",
		},
		{
			name: "empty",
			data: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffFormat(tt.data); got != tt.want {
				t.Errorf("SniffFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		wantData []byte
		wantMime string
		wantErr  bool
	}{
		{
			name:     "base64 payload",
			ref:      "data:image/png;base64,iVBORw==",
			wantData: []byte{0x89, 0x50, 0x4E, 0x47},
			wantMime: "image/png",
		},
		{
			name:     "base64 payload without padding",
			ref:      "data:image/png;base64,iVBORw",
			wantData: []byte{0x89, 0x50, 0x4E, 0x47},
			wantMime: "image/png",
		},
		{
			name:     "percent-encoded svg",
			ref:      "data:image/svg+xml,%3Csvg%3E%3C/svg%3E",
			wantData: []byte("<svg></svg>"),
			wantMime: "image/svg+xml",
		},
		{
			name:    "not a data URI",
			ref:     "https://example.com/icon.png",
			wantErr: true,
		},
		{
			name:    "missing payload separator",
			ref:     "data:image/png;base64",
			wantErr: true,
		},
		{
			name:    "invalid base64",
			ref:     "data:image/png;base64,!!!!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mime, err := DecodeDataURI(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeDataURI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !bytes.Equal(data, tt.wantData) {
				t.Errorf("payload = %v, want %v", data, tt.wantData)
			}
			if mime != tt.wantMime {
				t.Errorf("mime = %q, want %q", mime, tt.wantMime)
			}
		})
	}
}
