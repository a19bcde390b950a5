// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mkoehler/immo-inspect/data"
	"github.com/mkoehler/immo-inspect/middleware"
)

// ObjectHandler serves the built-in property object fixtures.
type ObjectHandler struct{}

func NewObjectHandler() *ObjectHandler {
	return &ObjectHandler{}
}

// List handles GET /api/objects
func (h *ObjectHandler) List(w http.ResponseWriter, r *http.Request) {
	objects, err := data.Objects()
	if err != nil {
		slog.Error("failed to load objects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load objects")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, objects)
}

// Get handles GET /api/objects/{objectId}
func (h *ObjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	objectID := r.PathValue("objectId")

	objects, err := data.Objects()
	if err != nil {
		slog.Error("failed to load objects", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load objects")
		return
	}
	obj, ok := data.FindObject(objects, objectID)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Object not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, obj)
}
