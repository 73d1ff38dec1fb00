package util

import (
	"errors"
	"strings"
)

// ErrBadFileName is returned for empty names and traversal attempts.
var ErrBadFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators in an uploaded file name so the
// result is safe to embed in a storage key. Names containing ".." are
// rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrBadFileName
	}
	clean := strings.TrimSpace(name)
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "\\", "_")
	if clean == "" {
		return "", ErrBadFileName
	}
	return clean, nil
}
