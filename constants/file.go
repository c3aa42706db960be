package constants

import "strings"

// DefaultImageMIME is assumed when a photo's data-URL header cannot be parsed.
const DefaultImageMIME = "image/jpeg"

// AllowedExtensions holds the default allowed file extensions for photo upload.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
}

// MIMEByExtension maps an upload extension to its inline-data MIME type.
var MIMEByExtension = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
