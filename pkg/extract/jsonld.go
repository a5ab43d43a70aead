package extract

import (
	"encoding/json"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/page-visuals/models"
)

// ImagesFromStructuredData parses every <script type="application/ld+json">
// block and emits one candidate per image reference found. A malformed block
// is skipped; one bad block must not abort extraction of the others.
func ImagesFromStructuredData(pc *models.PageContext) []models.Candidate {
	var out []models.Candidate

	pc.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var parsed any
		if err := json.Unmarshal([]byte(s.Text()), &parsed); err != nil {
			return
		}

		for _, obj := range ldObjects(parsed) {
			image, ok := obj["image"]
			if !ok {
				continue
			}
			for _, ref := range imageRefs(image) {
				resolved := ResolveRef(ref.url, pc.BaseOrigin)
				if resolved == "" {
					continue
				}
				format := FormatFromRef(resolved)
				out = append(out, models.Candidate{
					URL:        resolved,
					Width:      ref.width,
					Height:     ref.height,
					FormatHint: format,
					Source:     models.SourceStructuredData,
					Score:      SocialScore(models.SourceStructuredData, ref.width, ref.height, format),
				})
			}
		}
	})

	return out
}

// ldObjects flattens a JSON-LD document (single object or array) into its
// top-level objects.
func ldObjects(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}
	case []any:
		var out []map[string]any
		for _, item := range t {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

type ldImageRef struct {
	url           string
	width, height int
}

// imageRefs interprets a JSON-LD image property: a string, an object with
// url/width/height, or an array of either.
func imageRefs(v any) []ldImageRef {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []ldImageRef{{url: t}}
	case map[string]any:
		u, _ := t["url"].(string)
		if u == "" {
			return nil
		}
		return []ldImageRef{{
			url:    u,
			width:  ldInt(t["width"]),
			height: ldInt(t["height"]),
		}}
	case []any:
		var out []ldImageRef
		for _, item := range t {
			out = append(out, imageRefs(item)...)
		}
		return out
	}
	return nil
}

// ldInt reads a JSON-LD dimension, which appears both as a number and as a
// numeric string in the wild.
func ldInt(v any) int {
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(t); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
