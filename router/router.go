// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/spf13/afero"

	"github.com/mkoehler/immo-inspect/handlers"
	"github.com/mkoehler/immo-inspect/middleware"
	"github.com/mkoehler/immo-inspect/models"
)

func NewRouter(db *sql.DB, uploadFS afero.Fs) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	storageHandler := handlers.NewStorageHandler(db)
	imageHandler := handlers.NewImageHandler(uploadFS)
	objectHandler := handlers.NewObjectHandler()

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC(),
		})
	})

	// Answer store (remote storage mode backend)
	mux.HandleFunc("GET /api/ovm-storage/{user}/{objectId}", middleware.WithLogging(storageHandler.GetRecord))
	mux.HandleFunc("PUT /api/ovm-storage/{user}/{objectId}", middleware.WithLogging(storageHandler.PutRecord))
	mux.HandleFunc("DELETE /api/ovm-storage/{user}/{objectId}", middleware.WithLogging(storageHandler.DeleteRecord))

	// Property objects
	mux.HandleFunc("GET /api/objects", middleware.WithLogging(objectHandler.List))
	mux.HandleFunc("GET /api/objects/{objectId}", middleware.WithLogging(objectHandler.Get))

	// Inspection photos
	mux.HandleFunc("POST /api/objects/{objectId}/images", middleware.WithLogging(imageHandler.Upload))
	mux.HandleFunc("GET /api/objects/{objectId}/images", middleware.WithLogging(imageHandler.List))
	mux.HandleFunc("DELETE /api/objects/{objectId}/images/{filename}", middleware.WithLogging(imageHandler.Delete))

	// Uploaded files, served directly from the upload filesystem
	httpFS := afero.NewHttpFs(uploadFS)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(httpFS.Dir("."))))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("immo-inspect API v1"))
	})

	return mux
}
