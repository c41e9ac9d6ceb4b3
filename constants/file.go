package constants

import "strings"

// FileTypes holds the allowed values for the format column in extract_job.
var FileTypes = []string{"TXT"}

// AllowedExtensions holds the default allowed file extensions for OCR text ingestion.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"text": {},
	"ocr":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
