// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mkoehler/immo-inspect/models"
)

// remoteTimeout bounds every remote storage call.
const remoteTimeout = 5 * time.Second

// RemoteProvider stores answer records on the server and mirrors every
// write into the local provider. Availability over strict consistency: the
// source of truth is the server if reachable, else the local mirror. A
// local-only write is never reconciled back to the server once it becomes
// reachable again; Remote is a best-effort mirror, nothing more.
type RemoteProvider struct {
	baseURL string
	client  *http.Client
	local   *LocalProvider
}

func NewRemoteProvider(baseURL string, local *LocalProvider) *RemoteProvider {
	return &RemoteProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: remoteTimeout},
		local:   local,
	}
}

func (p *RemoteProvider) recordURL(user, objectID string) string {
	return fmt.Sprintf("%s/api/ovm-storage/%s/%s",
		p.baseURL, url.PathEscape(user), url.PathEscape(objectID))
}

// Load fetches the record from the server. A 404 is authoritative absence.
// Any other failure (non-2xx, timeout, network error, malformed body)
// falls back to the local provider transparently.
func (p *RemoteProvider) Load(ctx context.Context, user, objectID string) (*models.AnswerRecord, error) {
	rec, err := p.fetch(ctx, user, objectID)
	if err != nil {
		slog.Warn("remote load failed, falling back to local", "object_id", objectID, "error", err)
		return p.local.Load(ctx, user, objectID)
	}
	return rec, nil
}

func (p *RemoteProvider) fetch(ctx context.Context, user, objectID string) (*models.AnswerRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.recordURL(user, objectID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote returned HTTP %d", resp.StatusCode)
	}

	var rec models.AnswerRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode remote record: %w", err)
	}
	if !validRecord(&rec) {
		return nil, fmt.Errorf("remote record failed structural validation")
	}

	return &rec, nil
}

// Save writes to the server first. On success the record is also mirrored
// locally as a backup. On failure the record is still written locally and
// the error is surfaced so the UI can show a degraded-save indicator; no
// data is lost either way.
func (p *RemoteProvider) Save(ctx context.Context, user, objectID string, rec models.AnswerRecord) error {
	if err := p.put(ctx, user, objectID, rec); err != nil {
		slog.Warn("remote save failed, keeping local copy", "object_id", objectID, "error", err)
		if localErr := p.local.Save(ctx, user, objectID, rec); localErr != nil {
			slog.Error("local backup save failed", "object_id", objectID, "error", localErr)
		}
		return fmt.Errorf("remote save failed (backed up locally): %w", err)
	}

	if err := p.local.Save(ctx, user, objectID, rec); err != nil {
		slog.Warn("local mirror save failed", "object_id", objectID, "error", err)
	}
	return nil
}

func (p *RemoteProvider) put(ctx context.Context, user, objectID string, rec models.AnswerRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode answer record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.recordURL(user, objectID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("remote returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// MigrateAll runs the local legacy-key migration; legacy records only ever
// exist in the local store.
func (p *RemoteProvider) MigrateAll(user string) {
	p.local.MigrateAll(user)
}

// Clear deletes on the server best-effort (errors logged, not surfaced)
// and always clears the local mirror.
func (p *RemoteProvider) Clear(ctx context.Context, user, objectID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, p.recordURL(user, objectID), nil)
	if err == nil {
		resp, doErr := p.client.Do(req)
		if doErr != nil {
			slog.Warn("remote clear failed", "object_id", objectID, "error", doErr)
		} else {
			resp.Body.Close()
		}
	}

	return p.local.Clear(ctx, user, objectID)
}
