// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/mkoehler/immo-inspect/db"
	"github.com/mkoehler/immo-inspect/models"
)

var dbSeq atomic.Int64

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database, so tests stay independent.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupUploadFS returns an empty in-memory filesystem for upload tests.
func SetupUploadFS(t *testing.T) afero.Fs {
	t.Helper()
	return afero.NewMemMapFs()
}

// SeedAnswerRecord inserts an answer record row for the given user and object.
func SeedAnswerRecord(t *testing.T, conn *sql.DB, userSlug string, rec models.AnswerRecord) {
	t.Helper()

	payload, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Failed to encode answer record: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO answer_record (user_slug, object_id, schema_version, last_modified, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_slug, object_id) DO UPDATE SET
			schema_version = excluded.schema_version,
			last_modified = excluded.last_modified,
			payload = excluded.payload
	`, userSlug, rec.ObjectID, rec.SchemaVersion, rec.LastModified, string(payload))
	if err != nil {
		t.Fatalf("Failed to seed answer record: %v", err)
	}
}

// TestRecord builds a minimal valid answer record for the given object.
func TestRecord(objectID string) models.AnswerRecord {
	return models.AnswerRecord{
		SchemaVersion: models.SchemaVersion,
		ObjectID:      objectID,
		LastModified:  time.Now().UTC().Truncate(time.Second),
		Answers: map[string]models.AnswerValue{
			"OVM-5": {Answer: models.AnswerYes},
		},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeImageRequest creates a multipart upload request with a single file
// under the "image" form field.
func MakeImageRequest(t *testing.T, path, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("Failed to create multipart part: %v", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		t.Fatalf("Failed to write multipart content: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
