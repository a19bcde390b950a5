// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request and response types shared across
the immo-inspect packages.

# Domain Types

  - ChecklistItem: one checklist entry, a tagged union discriminated by
    AnswerKind ("choice" or "input")
  - AnswerValue: one persisted answer (value XOR answer)
  - AnswerRecord: the sparse per-(user, object) answer set
  - PropertyObject: a real-estate unit with base data and checklist
  - SaveStatus: idle | saving | saved | error

# Invariants

Item IDs are stable across sessions; they join the template, the live
editing state and persisted answers. AnswerRecord is sparse: an unanswered
item has no entry at all, never an entry with empty fields.

# Response Types

Types for JSON responses of the HTTP surface:

  - HealthResponse: status, timestamp
  - UploadImageResponse: success, imageUrl, filename
  - ImageListResponse: images ([{filename, url}])
  - SuccessResponse: success
  - ErrorResponse: error, message
*/
package models
