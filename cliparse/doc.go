// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration
for both binaries.

# Server Configuration

ParseFlags returns a Config struct with the API server settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv); CLI
flags take precedence over environment variables.

Config fields and their flags:

	-p  Port: Server listen port (default: 3001, env PORT)
	-d  DatabaseURL: Connection string (default: file:immo-inspect.db, env DATABASE_URL)
	-t  DatabaseType: sqlite or postgres (default: sqlite, env DATABASE_TYPE)
	-u  UploadDir: Image upload directory (default: uploads, env UPLOAD_DIR)

# Client Configuration

ParseClientFlags returns a ClientConfig for the inspect binary plus the
remaining positional arguments (the command):

	cfg, args, err := cliparse.ParseClientFlags(os.Args[1:])

ClientConfig fields and their flags:

	-user  User: Inspector display name (required, 2-50 chars)
	-o     ObjectID: Property object id (required)
	-m     StorageMode: local or remote (default: local, env STORAGE_MODE)
	-r     RemoteBaseURL: Answer-store base URL (required for remote, env REMOTE_BASE_URL)
	-s     StatePath: Local state database path (default: immo-inspect-state.db, env STATE_PATH)
*/
package cliparse
