package extract

import "testing"

func TestResolveRef(t *testing.T) {
	const origin = "https://example.com"

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{
			name: "absolute URL passes through",
			ref:  "https://cdn.example.com/icon.png",
			want: "https://cdn.example.com/icon.png",
		},
		{
			name: "data URI passes through",
			ref:  "data:image/png;base64,AAAA",
			want: "data:image/png;base64,AAAA",
		},
		{
			name: "protocol-relative gets https",
			ref:  "//cdn.example.com/icon.png",
			want: "https://cdn.example.com/icon.png",
		},
		{
			name: "root-relative joins the origin",
			ref:  "/assets/icon.png",
			want: "https://example.com/assets/icon.png",
		},
		{
			name: "bare relative is treated as origin-root-relative",
			ref:  "img/icon.png",
			want: "https://example.com/img/icon.png",
		},
		{
			name: "surrounding whitespace is stripped",
			ref:  "  /icon.png  ",
			want: "https://example.com/icon.png",
		},
		{
			name: "empty stays empty",
			ref:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRef(tt.ref, origin); got != tt.want {
				t.Errorf("ResolveRef(%q, %q) = %q, want %q", tt.ref, origin, got, tt.want)
			}
		})
	}
}

func TestResolveRef_TrailingSlashOrigin(t *testing.T) {
	got := ResolveRef("/icon.png", "https://example.com/")
	want := "https://example.com/icon.png"
	if got != want {
		t.Errorf("ResolveRef with trailing-slash origin = %q, want %q", got, want)
	}
}
