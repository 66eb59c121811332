package utils

import (
	"path/filepath"
	"strings"
)

var allowedMimeTypes = map[string]bool{
	"text/plain":      true,
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// zip passes the filter but no extractor handles it, so such files are
	// skipped later. Kept for compatibility with the first prototype.
	"application/zip": true,
}

var allowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".docx": true,
}

// IsAllowedUpload mirrors the upload filter of the original frontend
// contract: a file passes when either its declared MIME type or its
// lowercase extension is on the allow-list.
func IsAllowedUpload(filename, mimeType string) bool {
	if mt, _, _ := strings.Cut(mimeType, ";"); allowedMimeTypes[strings.TrimSpace(strings.ToLower(mt))] {
		return true
	}
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}
