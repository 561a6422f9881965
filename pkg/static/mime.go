package static

import (
	"path/filepath"
	"strings"
)

// defaultContentType is used for extensions not in the table.
const defaultContentType = "application/octet-stream"

// mimeTypes maps lower-case file extensions to content types. The table
// is fixed at build time; it is not fed from the host's mime database so
// the server behaves the same on every platform.
var mimeTypes = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".js":    "application/javascript",
	".mjs":   "application/javascript",
	".json":  "application/json",
	".txt":   "text/plain",
	".md":    "text/plain",
	".csv":   "text/csv",
	".xml":   "application/xml",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".webp":  "image/webp",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".wasm":  "application/wasm",
	".zip":   "application/zip",
	".gz":    "application/gzip",
}

// contentTypeFor returns the content type for a file path based on its
// extension.
func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := mimeTypes[ext]; ok {
		return ct
	}
	return defaultContentType
}
