// Package storage writes resolved assets and run artifacts to disk.
package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/page-visuals/models"
)

type Storage struct{}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %s", err)
		}
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %s", err)
	}
	return nil
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %s", err)
	}
	return data, nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil || !os.IsNotExist(err)
}

// SaveAsset writes an asset's bytes under dir with a filesystem-friendly name
// derived from the page URL, the asset kind and the determined format.
// Returns the written path.
func (s *Storage) SaveAsset(dir, pageURL, kind string, asset *models.ResolvedAsset) (string, error) {
	name := fmt.Sprintf("%s-%s.%s", SafeName(pageURL), kind, asset.Format)
	path := filepath.Join(dir, name)
	if err := s.SaveFile(path, asset.Bytes); err != nil {
		return "", err
	}
	return path, nil
}

// SafeName converts a URL into a collision-resistant file name stem.
func SafeName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		stem := strings.ReplaceAll(rawURL, "https://", "")
		stem = strings.ReplaceAll(stem, "http://", "")
		return strings.ReplaceAll(stem, "/", "_")
	}

	host := strings.ReplaceAll(parsed.Host, ".", "_")

	path := strings.Trim(parsed.Path, "/")
	path = strings.ReplaceAll(path, "/", "-")
	path = strings.ReplaceAll(path, ".", "_")

	if path != "" {
		return host + "-" + path
	}
	return host
}
