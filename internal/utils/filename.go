package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// SanitizeFilename strips characters that are invalid in filenames or unsafe
// to echo back in a download path, normalizes whitespace, and caps length so
// a timestamp prefix still fits under common filesystem limits.
func SanitizeFilename(filename string) string {
	// Remove invalid filename characters
	filename = invalidFilenameChars.ReplaceAllString(filename, "")

	// Replace newlines/tabs with spaces
	filename = whitespaceChars.ReplaceAllString(filename, " ")

	// Collapse multiple spaces
	filename = multipleSpaces.ReplaceAllString(filename, " ")

	// Trim whitespace and drop leading dots so nothing can hide as a dotfile
	filename = strings.TrimSpace(filename)
	filename = strings.TrimLeft(filename, ".")

	// Spaces become underscores for URL-friendly relative paths
	filename = strings.ReplaceAll(filename, " ", "_")

	// Limit length (most filesystems support 255, leave room for the prefix)
	if len(filename) > 200 {
		filename = strings.TrimRight(filename[:200], "_")
	}

	// Ensure it's not empty
	if filename == "" {
		filename = "file"
	}

	return filename
}
