// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the immo-inspect API.

# Handler Types

Each handler is a struct with its dependencies injected through a
constructor:

  - StorageHandler: Answer-record persistence for the remote storage mode
  - ImageHandler: Inspection photo upload, listing, and deletion
  - ObjectHandler: Built-in property object fixtures

Handlers are created via constructor functions:

	storageHandler := handlers.NewStorageHandler(db)
	imageHandler := handlers.NewImageHandler(uploadFS)

# Answer Store

The answer-store endpoints back the remote storage provider. One record
exists per (user, object); writes are last-write-wins with no version
check:

	GET    /api/ovm-storage/{user}/{objectId} → GetRecord (404 when absent)
	PUT    /api/ovm-storage/{user}/{objectId} → PutRecord (upsert)
	DELETE /api/ovm-storage/{user}/{objectId} → DeleteRecord (idempotent)

# Images

Photos are stored per object on an afero filesystem rooted at the
upload directory. Uploads are capped at 10 MiB and restricted to jpeg,
png, and webp:

	POST   /api/objects/{objectId}/images            → Upload
	GET    /api/objects/{objectId}/images            → List
	DELETE /api/objects/{objectId}/images/{filename} → Delete

Stored filenames are ULIDs, so listing sorts by upload time.

# Objects

Property objects are embedded fixtures served read-only:

	GET /api/objects            → List
	GET /api/objects/{objectId} → Get
*/
package handlers
