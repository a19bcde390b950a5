// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage persists answer records keyed by (user, object).

# Provider Contract

Both variants implement Provider:

	rec, err := provider.Load(ctx, user, objectID)   // nil, nil when absent
	err = provider.Save(ctx, user, objectID, rec)    // last write wins
	err = provider.Clear(ctx, user, objectID)        // idempotent

Absence is a normal return, never an error. Stored blobs failing the
structural check (schemaVersion, objectId, answers) are discarded and
treated as absent.

# Local Variant

LocalProvider writes to the client-scoped kv store under

	immo-inspect:{schemaVersion}:{user}:ovm:{objectID}

so schema versions and users never collide. It also carries the one-time
legacy migration for keys written under the old scheme

	immo-inspect:ovm:{schemaVersion}:{objectID}

via ListLegacyKeys and Migrate. Migration is best-effort: failures are
logged and swallowed.

# Remote Variant

RemoteProvider wraps LocalProvider and talks to the answer-store API with
a fixed 5 second timeout:

	GET    /api/ovm-storage/{user}/{objectID}  → record or 404
	PUT    /api/ovm-storage/{user}/{objectID}  → 2xx on success
	DELETE /api/ovm-storage/{user}/{objectID}  → best-effort

Reads fall back to Local on any failure (a 404 counts as authoritative
absence, not failure). Writes go local either way; a failed remote write
is surfaced to the caller even though the data is safe locally. There is
no reconciliation pass when the server becomes reachable again.

# Selection

NewProvider picks the variant once at startup from configuration; the
choice is never per-call.
*/
package storage
