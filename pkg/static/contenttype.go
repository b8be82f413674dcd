package static

import (
	"mime"
	"path"
	"strings"

	"github.com/samber/lo"
)

// DefaultContentType is used when no mapping exists for an extension.
const DefaultContentType = "application/octet-stream"

// builtinTypes takes precedence over the system MIME database so the
// common web types do not depend on the host's mime.types files.
var builtinTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".json": "application/json",
	".map":  "application/json",
	".txt":  "text/plain; charset=utf-8",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".ico":  "image/x-icon",
	".webp": "image/webp",
	".wasm": "application/wasm",
	".woff": "font/woff",
}

// ContentTypes maps file names to media types.
type ContentTypes struct {
	types map[string]string
}

// NewContentTypes returns a mapping of the built-in types merged with
// overrides. Override keys are file extensions with or without the leading dot.
func NewContentTypes(overrides map[string]string) *ContentTypes {
	normalized := lo.MapKeys(overrides, func(_ string, ext string) string {
		return normalizeExt(ext)
	})

	return &ContentTypes{types: lo.Assign(builtinTypes, normalized)}
}

// Lookup returns the media type for name, falling back to the system MIME
// database and then DefaultContentType.
func (c *ContentTypes) Lookup(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return DefaultContentType
	}

	if t, ok := c.types[ext]; ok {
		return t
	}

	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}

	return DefaultContentType
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
