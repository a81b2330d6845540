package http

import (
	"bytes"
	_ "embed"
	"errors"
	"net/http"
	"strings"
	"time"

	"hostprobe/internal/shared/filestorages"
)

const indexFile = "index.html"

//go:embed www/index.html
var landingPage []byte

type staticHandler struct {
	storage filestorages.FileStorage
}

func NewStaticHandler(storage filestorages.FileStorage) AppHttpHandler {
	return &staticHandler{storage: storage}
}

// Handle serves files from the static root. The root path falls back to the
// built-in landing page when the root has no index.html.
func (h *staticHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += indexFile
	}

	file, err := h.storage.Open(r.Context(), key)
	switch {
	case err == nil:
	case errors.Is(err, filestorages.ErrFileNotFound) && key == indexFile:
		http.ServeContent(w, r, indexFile, time.Time{}, bytes.NewReader(landingPage))
		return nil
	case errors.Is(err, filestorages.ErrFileNotFound), errors.Is(err, filestorages.ErrInvalidKey):
		return errNotFound(err)
	default:
		return errInternalStaticReadFailed(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return errInternalStaticReadFailed(err)
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
	return nil
}
