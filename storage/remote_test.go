// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkoehler/immo-inspect/models"
)

func TestRemoteLoadSuccess(t *testing.T) {
	rec := testRecord("OBJ123")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/ovm-storage/robin/OBJ123" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(rec)
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, NewLocalProvider(openTestKV(t)))

	loaded, err := p.Load(context.Background(), "robin", "OBJ123")
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil || loaded.ObjectID != "OBJ123" {
		t.Errorf("got %+v", loaded)
	}
}

func TestRemoteLoad404IsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	// Seed local with a record; a 404 from the server is authoritative
	// absence and must NOT fall back to it.
	local := NewLocalProvider(openTestKV(t))
	local.Save(context.Background(), "robin", "OBJ123", testRecord("OBJ123"))

	p := NewRemoteProvider(srv.URL, local)
	rec, err := p.Load(context.Background(), "robin", "OBJ123")
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Errorf("404 must mean absent, got %+v", rec)
	}
}

func TestRemoteLoadFailureFallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	local := NewLocalProvider(openTestKV(t))
	local.Save(context.Background(), "robin", "OBJ123", testRecord("OBJ123"))

	p := NewRemoteProvider(srv.URL, local)
	rec, err := p.Load(context.Background(), "robin", "OBJ123")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.ObjectID != "OBJ123" {
		t.Errorf("expected local fallback record, got %+v", rec)
	}
}

func TestRemoteLoadUnreachableFallsBackToLocal(t *testing.T) {
	local := NewLocalProvider(openTestKV(t))
	local.Save(context.Background(), "robin", "OBJ123", testRecord("OBJ123"))

	// Nothing listens here
	p := NewRemoteProvider("http://127.0.0.1:1", local)
	rec, err := p.Load(context.Background(), "robin", "OBJ123")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Error("expected local fallback record")
	}
}

func TestRemoteLoadMalformedBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answers":{}}`)) // missing required fields
	}))
	defer srv.Close()

	local := NewLocalProvider(openTestKV(t))
	local.Save(context.Background(), "robin", "OBJ123", testRecord("OBJ123"))

	p := NewRemoteProvider(srv.URL, local)
	rec, err := p.Load(context.Background(), "robin", "OBJ123")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Error("structurally invalid remote body must fall back to local")
	}
}

func TestRemoteSaveMirrorsLocal(t *testing.T) {
	var gotPut bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			gotPut = true
			var rec models.AnswerRecord
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				t.Errorf("bad PUT body: %v", err)
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	local := NewLocalProvider(openTestKV(t))
	p := NewRemoteProvider(srv.URL, local)
	ctx := context.Background()

	if err := p.Save(ctx, "robin", "OBJ123", testRecord("OBJ123")); err != nil {
		t.Fatal(err)
	}
	if !gotPut {
		t.Error("expected a PUT to the server")
	}

	// Mirrored into local as backup
	if rec, _ := local.Load(ctx, "robin", "OBJ123"); rec == nil {
		t.Error("successful remote save must mirror into local")
	}
}

func TestRemoteSaveFailureKeepsLocalCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	local := NewLocalProvider(openTestKV(t))
	p := NewRemoteProvider(srv.URL, local)
	ctx := context.Background()

	err := p.Save(ctx, "robin", "OBJ123", testRecord("OBJ123"))
	if err == nil {
		t.Fatal("expected failure to be surfaced")
	}

	// But the data is safe locally
	rec, loadErr := local.Load(ctx, "robin", "OBJ123")
	if loadErr != nil || rec == nil {
		t.Errorf("expected local backup after failed remote save, got (%v, %v)", rec, loadErr)
	}
}

func TestRemoteClearBestEffort(t *testing.T) {
	var gotDelete bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			gotDelete = true
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	local := NewLocalProvider(openTestKV(t))
	p := NewRemoteProvider(srv.URL, local)
	ctx := context.Background()

	local.Save(ctx, "robin", "OBJ123", testRecord("OBJ123"))

	// Remote delete fails, but Clear must still succeed and clear local
	if err := p.Clear(ctx, "robin", "OBJ123"); err != nil {
		t.Fatalf("clear must swallow remote errors: %v", err)
	}
	if !gotDelete {
		t.Error("expected a DELETE attempt")
	}
	if rec, _ := local.Load(ctx, "robin", "OBJ123"); rec != nil {
		t.Error("local record must be cleared")
	}
}

func TestNewProviderSelection(t *testing.T) {
	store := openTestKV(t)

	if _, ok := NewProvider(ModeLocal, "", store).(*LocalProvider); !ok {
		t.Error("mode local must yield LocalProvider")
	}
	if _, ok := NewProvider(ModeRemote, "http://example.test", store).(*RemoteProvider); !ok {
		t.Error("mode remote must yield RemoteProvider")
	}
	// Unknown mode defaults to local
	if _, ok := NewProvider("", "", store).(*LocalProvider); !ok {
		t.Error("empty mode must default to LocalProvider")
	}
}
