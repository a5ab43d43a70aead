package resolver

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// SniffFormat determines the image format from leading bytes. Returns "" when
// no known container matches; declared hints are only consulted after that.
func SniffFormat(b []byte) string {
	switch {
	case len(b) >= 4 && bytes.Equal(b[:4], []byte{0x89, 'P', 'N', 'G'}):
		return "png"
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8:
		return "jpg"
	case len(b) >= 12 && bytes.Equal(b[:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return "webp"
	case len(b) >= 4 && bytes.Equal(b[:4], []byte("GIF8")):
		return "gif"
	case len(b) >= 4 && bytes.Equal(b[:4], []byte{0x00, 0x00, 0x01, 0x00}):
		return "ico"
	case looksLikeSVG(b):
		return "svg"
	}
	return ""
}

// looksLikeSVG text-sniffs the payload; SVG has no magic bytes.
func looksLikeSVG(b []byte) bool {
	head := b
	if len(head) > 512 {
		head = head[:512]
	}
	s := strings.ToLower(strings.TrimSpace(string(head)))
	if strings.HasPrefix(s, "<svg") {
		return true
	}
	return (strings.HasPrefix(s, "<?xml") || strings.HasPrefix(s, "<!doctype svg")) &&
		strings.Contains(s, "<svg")
}

// DecodeDataURI decodes a data: reference into its payload bytes and the
// declared MIME type. Both base64 and percent-encoded payloads are handled.
func DecodeDataURI(ref string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(ref, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}

	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", fmt.Errorf("malformed data URI: no payload separator")
	}

	isBase64 := false
	mime := ""
	for i, part := range strings.Split(meta, ";") {
		if part == "base64" {
			isBase64 = true
		} else if i == 0 {
			mime = part
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some emitters strip the padding.
			data, err = base64.RawStdEncoding.DecodeString(payload)
			if err != nil {
				return nil, "", fmt.Errorf("failed to decode base64 payload: %w", err)
			}
		}
		return data, mime, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return []byte(decoded), mime, nil
}
