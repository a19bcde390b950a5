// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation for the
server-side answer store.

# Drivers

Open selects the driver by configured type:

	conn, err := db.Open(db.TypeSQLite, "file:immo-inspect.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite (the default) uses the pure-Go modernc driver; Postgres uses lib/pq.
The schema sticks to portable SQL so both work unchanged.

# Schema

One table, answer_record, keyed by (user_slug, object_id), holding the
record JSON as TEXT plus denormalized schema_version and last_modified
columns. CreateSchema is idempotent.
*/
package db
