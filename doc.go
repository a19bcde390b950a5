// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the immo-inspect API server.

immo-inspect is a property inspection tool built around the Magdeburg
Mietspiegel 2024 checklist. Inspectors answer a per-object checklist;
answers are persisted per (user, object) with debounced autosaving to a
local store, a remote answer store, or both.

# Starting the Server

The server runs on SQLite out of the box:

	go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

# Configuration

Settings come from CLI flags, environment variables, or a .env file:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:immo-inspect.db)
  - UPLOAD_DIR (-u): Directory for inspection photos (default: uploads)

# Client

cmd/inspect is the terminal client: it edits a checklist through the
session/storage/autosave pipeline, against the local state database or
the answer-store API (STORAGE_MODE, REMOTE_BASE_URL, STATE_PATH).

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (answer store, images, objects)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Checklist and wire types
  - db: Schema creation for SQLite and PostgreSQL
  - cliparse: Configuration parsing

The checklist client lives in library packages usable without the
server:

  - checklist: Embedded checklist template, answer codec, merge
  - storage: Local and remote answer persistence with fallback
  - autosave: Debounced save scheduling with status reporting
  - session: Ties template, storage, and autosave together per object
  - kv: SQLite-backed key-value store used by local storage
  - user: Inspector display-name validation and slugs

See package documentation for each component.
*/
package main
