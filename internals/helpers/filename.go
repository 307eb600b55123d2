package helper

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	pathHostileChars    = regexp.MustCompile(`[\\/:*?"<>|]`)
	collapseSpaces      = regexp.MustCompile(`\s+`)
)

// GenerateUniqueFilename builds a collision-free stored name, preserving a
// sanitized extension of the original upload.
func GenerateUniqueFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != "" && len(ext) > 10 {
		ext = ""
	}
	ext = unsafeFilenameChars.ReplaceAllString(ext, "")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return uuid.NewString() + ext
}

// SafeArchiveName strips path-hostile characters from user-facing strings
// used as zip entry names, and caps the length.
func SafeArchiveName(s string) string {
	s = pathHostileChars.ReplaceAllString(s, "_")
	s = collapseSpaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > 80 {
		s = s[:80]
	}
	return s
}
