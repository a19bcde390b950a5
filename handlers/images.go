// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"

	"github.com/mkoehler/immo-inspect/middleware"
	"github.com/mkoehler/immo-inspect/models"
)

const maxUploadSize = 10 << 20 // 10 MiB

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// allowedImageType reports whether a declared Content-Type is in the
// jpeg/png/webp whitelist, ignoring any media-type parameters.
func allowedImageType(ct string) bool {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return allowedImageTypes[strings.ToLower(strings.TrimSpace(ct))]
}

// ImageHandler manages per-object inspection photos on an afero
// filesystem rooted at the upload directory.
type ImageHandler struct {
	fs afero.Fs
}

func NewImageHandler(fs afero.Fs) *ImageHandler {
	return &ImageHandler{fs: fs}
}

// Upload handles POST /api/objects/{objectId}/images
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	if !validObjectID(objectID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid object id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large (max %s)", humanize.IBytes(maxUploadSize)))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Only jpeg, png and webp images are allowed")
		return
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !allowedImageType(ct) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Only jpeg, png and webp images are allowed")
		return
	}

	filename := ulid.Make().String() + ext
	dir := objectID

	if err := h.fs.MkdirAll(dir, 0o755); err != nil {
		slog.Error("failed to create upload directory", "dir", dir, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	dst, err := h.fs.Create(path.Join(dir, filename))
	if err != nil {
		slog.Error("failed to create image file", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		slog.Error("failed to write image file", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	slog.Info("image uploaded", "object_id", objectID, "filename", filename, "size", size)

	middleware.JSONResponse(w, http.StatusCreated, models.UploadImageResponse{
		Success:  true,
		Filename: filename,
		URL:      "/uploads/" + objectID + "/" + filename,
		Size:     size,
	})
}

// List handles GET /api/objects/{objectId}/images
func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	if !validObjectID(objectID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid object id")
		return
	}

	entries, err := afero.ReadDir(h.fs, objectID)
	if err != nil {
		if os.IsNotExist(err) {
			// No uploads yet for this object
			middleware.JSONResponse(w, http.StatusOK, models.ImageListResponse{Images: []models.ImageInfo{}})
			return
		}
		slog.Error("failed to list images", "object_id", objectID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list images")
		return
	}

	images := make([]models.ImageInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := allowedImageExts[strings.ToLower(filepath.Ext(e.Name()))]; !ok {
			continue
		}
		images = append(images, models.ImageInfo{
			Filename: e.Name(),
			URL:      "/uploads/" + objectID + "/" + e.Name(),
			Size:     e.Size(),
			Modified: e.ModTime().UTC(),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.ImageListResponse{Images: images})
}

// Delete handles DELETE /api/objects/{objectId}/images/{filename}
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")
	filename := r.PathValue("filename")
	if !validObjectID(objectID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid object id")
		return
	}
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid filename")
		return
	}

	p := path.Join(objectID, filename)
	if _, err := h.fs.Stat(p); err != nil {
		if os.IsNotExist(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Image not found")
			return
		}
		slog.Error("failed to stat image", "path", p, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	if err := h.fs.Remove(p); err != nil {
		slog.Error("failed to delete image", "path", p, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}

	slog.Info("image deleted", "object_id", objectID, "filename", filename)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// validObjectID guards the upload path components against traversal.
func validObjectID(id string) bool {
	if id == "" || id != filepath.Base(id) {
		return false
	}
	return !strings.ContainsAny(id, "/\\") && id != "." && id != ".."
}
