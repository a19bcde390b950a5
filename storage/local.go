// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkoehler/immo-inspect/kv"
	"github.com/mkoehler/immo-inspect/models"
)

const keyPrefix = "immo-inspect"

// StorageKey derives the user-scoped store key. Different schema versions
// or users never collide.
func StorageKey(user, objectID string) string {
	return fmt.Sprintf("%s:%s:%s:ovm:%s", keyPrefix, models.SchemaVersion, user, objectID)
}

// LegacyKey is the pre-user-scoping key scheme, kept only for migration.
func LegacyKey(objectID string) string {
	return fmt.Sprintf("%s:ovm:%s:%s", keyPrefix, models.SchemaVersion, objectID)
}

// LocalProvider persists answer records in the client-scoped key-value
// store.
type LocalProvider struct {
	store *kv.Store
}

func NewLocalProvider(store *kv.Store) *LocalProvider {
	return &LocalProvider{store: store}
}

// Load returns the saved record for (user, objectID), or nil when absent.
// Malformed stored data is discarded (logged, treated as absent) rather
// than surfaced: a checklist opening on garbage is worse than one opening
// empty.
func (p *LocalProvider) Load(ctx context.Context, user, objectID string) (*models.AnswerRecord, error) {
	raw, ok, err := p.store.Get(StorageKey(user, objectID))
	if err != nil {
		slog.Error("local load failed", "object_id", objectID, "error", err)
		return nil, nil
	}
	if !ok {
		return nil, nil
	}

	var rec models.AnswerRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		slog.Warn("discarding malformed answer record", "object_id", objectID, "error", err)
		return nil, nil
	}
	if !validRecord(&rec) {
		slog.Warn("discarding structurally invalid answer record", "object_id", objectID)
		return nil, nil
	}

	return &rec, nil
}

// Save persists the full record, overwriting any prior value.
func (p *LocalProvider) Save(ctx context.Context, user, objectID string, rec models.AnswerRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode answer record: %w", err)
	}
	if err := p.store.Set(StorageKey(user, objectID), string(raw)); err != nil {
		return fmt.Errorf("failed to save answer record: %w", err)
	}
	return nil
}

// Clear removes any persisted record. Clearing an absent record is fine.
func (p *LocalProvider) Clear(ctx context.Context, user, objectID string) error {
	return p.store.Delete(StorageKey(user, objectID))
}

// ListLegacyKeys enumerates keys written under the old, non-user-scoped
// scheme.
func (p *LocalProvider) ListLegacyKeys() ([]string, error) {
	return p.store.ListPrefix(keyPrefix + ":ovm:")
}

// Migrate rewrites one legacy entry under the user-scoped key and deletes
// the legacy entry. Best-effort: failures are logged and swallowed, and a
// second call for an already-migrated key is a no-op. Losing a stale
// legacy record is less harmful than blocking the caller.
func (p *LocalProvider) Migrate(legacyKey, user string) {
	version, objectID, ok := parseLegacyKey(legacyKey)
	if !ok {
		slog.Warn("skipping unrecognized legacy key", "key", legacyKey)
		return
	}

	raw, found, err := p.store.Get(legacyKey)
	if err != nil {
		slog.Warn("legacy migration read failed", "key", legacyKey, "error", err)
		return
	}
	if !found {
		return
	}

	newKey := fmt.Sprintf("%s:%s:%s:ovm:%s", keyPrefix, version, user, objectID)
	if err := p.store.Set(newKey, raw); err != nil {
		slog.Warn("legacy migration write failed", "key", legacyKey, "error", err)
		return
	}
	if err := p.store.Delete(legacyKey); err != nil {
		slog.Warn("legacy migration cleanup failed", "key", legacyKey, "error", err)
		return
	}

	slog.Info("migrated legacy answer record", "from", legacyKey, "to", newKey)
}

// MigrateAll runs the one-time legacy migration for user over every legacy
// key still present.
func (p *LocalProvider) MigrateAll(user string) {
	keys, err := p.ListLegacyKeys()
	if err != nil {
		slog.Warn("legacy key enumeration failed", "error", err)
		return
	}
	for _, key := range keys {
		p.Migrate(key, user)
	}
}

// parseLegacyKey splits "immo-inspect:ovm:{version}:{objectID}".
func parseLegacyKey(key string) (version, objectID string, ok bool) {
	rest, found := strings.CutPrefix(key, keyPrefix+":ovm:")
	if !found {
		return "", "", false
	}
	version, objectID, found = strings.Cut(rest, ":")
	if !found || version == "" || objectID == "" {
		return "", "", false
	}
	return version, objectID, true
}
