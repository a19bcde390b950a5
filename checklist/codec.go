// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checklist

import (
	"time"

	"github.com/mkoehler/immo-inspect/models"
)

// ExtractAnswers projects the live checklist state into the sparse answers
// map. An item contributes an entry only when it carries a meaningful
// answer: choice items with a selection, input items with a non-nil,
// non-empty value. Absence means "unanswered".
func ExtractAnswers(items []models.ChecklistItem) map[string]models.AnswerValue {
	answers := make(map[string]models.AnswerValue)

	for _, item := range items {
		switch item.AnswerKind {
		case models.KindChoice:
			if item.Answer != "" {
				answers[item.ID] = models.AnswerValue{Answer: item.Answer}
			}
		case models.KindInput:
			if item.Value != nil && item.Value != "" {
				answers[item.ID] = models.AnswerValue{Value: item.Value}
			}
		}
	}

	return answers
}

// MergeAnswers overlays a saved record onto a checklist template. Order,
// length and all non-answer fields of the template are preserved. Entries
// whose shape does not match the item's variant (template changed between
// schema versions) are ignored. A nil record yields a copy of the template.
// Neither input is mutated.
func MergeAnswers(template []models.ChecklistItem, rec *models.AnswerRecord) []models.ChecklistItem {
	merged := make([]models.ChecklistItem, len(template))
	copy(merged, template)

	if rec == nil || rec.Answers == nil {
		return merged
	}

	for i := range merged {
		saved, ok := rec.Answers[merged[i].ID]
		if !ok {
			continue
		}

		switch {
		case merged[i].AnswerKind == models.KindChoice && saved.Answer != "":
			merged[i].Answer = saved.Answer
		case merged[i].AnswerKind == models.KindInput && saved.Value != nil:
			merged[i].Value = saved.Value
		}
	}

	return merged
}

// NewAnswerRecord builds a fresh record for persistence from the current
// checklist state. Records are always derived whole, never mutated
// incrementally.
func NewAnswerRecord(objectID string, items []models.ChecklistItem) models.AnswerRecord {
	return models.AnswerRecord{
		SchemaVersion: models.SchemaVersion,
		ObjectID:      objectID,
		LastModified:  time.Now().UTC(),
		Answers:       ExtractAnswers(items),
	}
}
