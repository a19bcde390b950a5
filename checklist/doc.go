// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package checklist implements the answer codec and the checklist template.

# Answer Codec

The codec is a pure, order-independent projection between the live
checklist state and the sparse persisted answers map:

	answers := checklist.ExtractAnswers(items)
	items := checklist.MergeAnswers(template, savedRecord)

ExtractAnswers emits an entry only for items that carry a meaningful
answer. MergeAnswers overlays saved answers onto a template copy and
ignores entries whose shape no longer matches the item variant, which
covers templates that changed an item kind between schema versions.

The round trip is idempotent for well-formed records:

	ExtractAnswers(MergeAnswers(T, R)) == R.Answers ∩ T

# Template

The Mietspiegel Magdeburg 2024 checklist ships embedded:

	items, err := checklist.Template()

Each call returns an independent copy with the base-data fields (OVM-1 to
OVM-4) already filtered out. GroupBySection prepares items for sectioned
rendering and ValidateLivingArea enforces the 20–200 m² validity range of
the rent index.
*/
package checklist
