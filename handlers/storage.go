// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mkoehler/immo-inspect/middleware"
	"github.com/mkoehler/immo-inspect/models"
	"github.com/mkoehler/immo-inspect/user"
)

// StorageHandler serves the answer-store API consumed by the remote
// storage provider.
type StorageHandler struct {
	db *sql.DB
}

func NewStorageHandler(db *sql.DB) *StorageHandler {
	return &StorageHandler{db: db}
}

// GetRecord handles GET /api/ovm-storage/{user}/{objectId}
func (h *StorageHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	userSlug := r.PathValue("user")
	objectID := r.PathValue("objectId")
	if !user.ValidSlug(userSlug) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid user")
		return
	}

	var payload string
	err := h.db.QueryRow(`
		SELECT payload FROM answer_record
		WHERE user_slug = $1 AND object_id = $2
	`, userSlug, objectID).Scan(&payload)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No record found")
		return
	}
	if err != nil {
		slog.Error("failed to query answer record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(payload))
}

// PutRecord handles PUT /api/ovm-storage/{user}/{objectId}
func (h *StorageHandler) PutRecord(w http.ResponseWriter, r *http.Request) {
	userSlug := r.PathValue("user")
	objectID := r.PathValue("objectId")
	if !user.ValidSlug(userSlug) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid user")
		return
	}

	var rec models.AnswerRecord
	if err := middleware.ParseJSONBody(r, &rec); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Structural validation at the storage boundary
	if rec.SchemaVersion == "" || rec.ObjectID == "" || rec.Answers == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "record missing required fields")
		return
	}
	if rec.ObjectID != objectID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "objectId does not match path")
		return
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		slog.Error("failed to encode answer record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save record")
		return
	}

	// Last write wins, no version check
	_, err = h.db.Exec(`
		INSERT INTO answer_record (user_slug, object_id, schema_version, last_modified, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_slug, object_id) DO UPDATE SET
			schema_version = excluded.schema_version,
			last_modified = excluded.last_modified,
			payload = excluded.payload
	`, userSlug, objectID, rec.SchemaVersion, rec.LastModified, string(payload))

	if err != nil {
		slog.Error("failed to save answer record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save record")
		return
	}

	slog.Info("answer record saved", "user", userSlug, "object_id", objectID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteRecord handles DELETE /api/ovm-storage/{user}/{objectId}
// Deleting an absent record succeeds; the operation is idempotent.
func (h *StorageHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userSlug := r.PathValue("user")
	objectID := r.PathValue("objectId")
	if !user.ValidSlug(userSlug) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid user")
		return
	}

	_, err := h.db.Exec(`
		DELETE FROM answer_record
		WHERE user_slug = $1 AND object_id = $2
	`, userSlug, objectID)

	if err != nil {
		slog.Error("failed to delete answer record", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete record")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
