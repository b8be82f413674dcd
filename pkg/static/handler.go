// Package static serves files from a confined directory tree.
package static

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/samber/lo"
)

var allowedMethods = []string{http.MethodGet, http.MethodHead}

// Handler serves GET and HEAD requests from a file system, rewriting "/" to
// the default document when one is configured.
type Handler struct {
	fsys            fs.FS
	files           http.Handler
	defaultDocument string
	types           *ContentTypes
	logger          *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithDefaultDocument sets the file served for "/".
func WithDefaultDocument(name string) Option {
	return func(h *Handler) {
		h.defaultDocument = strings.TrimPrefix(name, "/")
	}
}

// WithContentTypes replaces the extension to media type mapping.
func WithContentTypes(types *ContentTypes) Option {
	return func(h *Handler) {
		h.types = types
	}
}

// WithLogger sets the logger used for rejected requests.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler returns a Handler serving fsys.
func NewHandler(fsys fs.FS, opts ...Option) *Handler {
	h := &Handler{
		fsys:   fsys,
		files:  http.FileServerFS(fsys),
		types:  NewContentTypes(nil),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// DefaultDocument returns the configured default document, or "".
func (h *Handler) DefaultDocument() string {
	return h.defaultDocument
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !lo.Contains(allowedMethods, r.Method) {
		w.Header().Set("Allow", strings.Join(allowedMethods, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.handleGet(w, r)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	name, rewritten, err := h.resolve(r.URL.Path)
	if err != nil {
		h.logger.WarnContext(r.Context(), "request rejected",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	// Directory requests are left to the file server so index.html and
	// listings get their own content type.
	if !strings.HasSuffix(name, "/") {
		w.Header().Set("Content-Type", h.types.Lookup(name))
	}

	if rewritten {
		// ServeFileFS does not apply the index.html redirect for "/".
		http.ServeFileFS(w, r, h.fsys, name)
		return
	}

	h.files.ServeHTTP(w, r)
}

// resolve maps a request path to the name to serve and reports whether the
// default document rewrite applied.
func (h *Handler) resolve(urlPath string) (string, bool, error) {
	if lo.Contains(strings.Split(urlPath, "/"), "..") {
		return "", false, ErrPathEscape
	}

	if h.defaultDocument != "" && urlPath == "/" {
		return path.Clean("/" + h.defaultDocument), true, nil
	}

	return urlPath, false, nil
}
