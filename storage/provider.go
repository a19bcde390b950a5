// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"log/slog"

	"github.com/mkoehler/immo-inspect/kv"
	"github.com/mkoehler/immo-inspect/models"
)

// Storage mode constants (cliparse.ClientConfig.StorageMode)
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Provider persists answer records keyed by (user, object). Load returns
// (nil, nil) when nothing has been saved yet; absence is never an error.
// Save overwrites whole records (last write wins). Clear is idempotent.
type Provider interface {
	Load(ctx context.Context, user, objectID string) (*models.AnswerRecord, error)
	Save(ctx context.Context, user, objectID string, rec models.AnswerRecord) error
	Clear(ctx context.Context, user, objectID string) error
}

// NewProvider selects the provider variant once at startup. Remote wraps
// the local provider as durability fallback and mirror.
func NewProvider(mode, remoteBaseURL string, store *kv.Store) Provider {
	local := NewLocalProvider(store)

	if mode == ModeRemote {
		slog.Info("answer storage: remote provider enabled", "base_url", remoteBaseURL)
		return NewRemoteProvider(remoteBaseURL, local)
	}

	slog.Info("answer storage: local provider enabled")
	return local
}

// validRecord is the structural check applied at the storage boundary.
// Anything that fails it is treated as absent rather than surfaced.
func validRecord(rec *models.AnswerRecord) bool {
	return rec.SchemaVersion != "" && rec.ObjectID != "" && rec.Answers != nil
}
