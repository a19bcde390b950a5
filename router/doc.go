// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the immo-inspect API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, uploadFS)

# Endpoints

Health:

	GET /api/health

Answer store (backend for the remote storage mode):

	GET    /api/ovm-storage/{user}/{objectId} - Fetch answer record
	PUT    /api/ovm-storage/{user}/{objectId} - Upsert answer record
	DELETE /api/ovm-storage/{user}/{objectId} - Delete answer record

Property objects:

	GET /api/objects            - List fixtures
	GET /api/objects/{objectId} - Single object

Inspection photos:

	POST   /api/objects/{objectId}/images            - Upload (multipart, field "image")
	GET    /api/objects/{objectId}/images            - List
	DELETE /api/objects/{objectId}/images/{filename} - Delete
	GET    /uploads/{objectId}/{filename}            - Serve stored file

# Handler Initialization

The router creates handler instances with dependency injection:

	storageHandler := handlers.NewStorageHandler(db)
	imageHandler := handlers.NewImageHandler(uploadFS)
	objectHandler := handlers.NewObjectHandler()

Uploaded files are served straight from the afero filesystem the image
handler writes to, so tests can run the whole surface against an
in-memory filesystem.
*/
package router
