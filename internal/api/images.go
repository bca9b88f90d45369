package api

import (
	"fmt"
	stdhtml "html"
	"io"
	"net/http"
	"strings"

	"github.com/ogrim/mimir/internal/editor"
)

// maxImageBytes bounds an uploaded image. Images are embedded into article
// content as data URLs, so the snapshot grows by roughly 4/3 of this per
// image.
const maxImageBytes = 10 << 20 // 10 MB

// ImageHandler turns uploaded image files into embeddable markup. Nothing is
// written to disk: the image lives inside the article content and travels
// with the snapshot.
type ImageHandler struct{}

// NewImageHandler creates an ImageHandler.
func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// Upload handles POST /api/images (multipart/form-data, field "file",
// optional field "caption").
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		writeJSON(w, http.StatusBadRequest, errorBody("file is not an image"))
		return
	}

	caption := r.FormValue("caption")
	if caption == "" {
		caption = header.Filename
	}

	dataURL := editor.DataURL(mimeType, data)
	cap := stdhtml.EscapeString(caption)
	markup := fmt.Sprintf(`<figure><img src="%s" alt="%s"/><figcaption>%s</figcaption></figure>`,
		dataURL, cap, cap)

	writeJSON(w, http.StatusCreated, ImageResponse{
		Filename: header.Filename,
		Size:     int64(len(data)),
		DataURL:  dataURL,
		Markup:   markup,
	})
}
