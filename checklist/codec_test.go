// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checklist

import (
	"reflect"
	"testing"
	"time"

	"github.com/mkoehler/immo-inspect/models"
)

func testTemplate() []models.ChecklistItem {
	return []models.ChecklistItem{
		{
			ID:         "A",
			Section:    "II. Bad und WC",
			Title:      "Bad mit Fenster",
			AnswerKind: models.KindChoice,
			Options:    models.ChoiceOptions,
		},
		{
			ID:          "B",
			Section:     "IV. Wohnung",
			Title:       "Wohnfläche",
			AnswerKind:  models.KindInput,
			ValueFormat: models.FormatNumber,
			Unit:        "m²",
		},
		{
			ID:          "C",
			Section:     "V. Gebäude",
			Title:       "Zustand Treppenhaus",
			AnswerKind:  models.KindInput,
			ValueFormat: models.FormatText,
			Hint:        "Kurze Einschätzung.",
		},
	}
}

func TestExtractAnswersSparse(t *testing.T) {
	items := testTemplate()
	items[0].Answer = models.AnswerYes
	// B stays unanswered, C has an empty string (counts as unanswered)
	items[2].Value = ""

	answers := ExtractAnswers(items)

	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d: %v", len(answers), answers)
	}
	if answers["A"].Answer != models.AnswerYes {
		t.Errorf("expected A=yes, got %+v", answers["A"])
	}
}

func TestExtractAnswersInputValues(t *testing.T) {
	items := testTemplate()
	items[1].Value = float64(72.5)
	items[2].Value = "renoviert 2021"

	answers := ExtractAnswers(items)

	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if answers["B"].Value != float64(72.5) {
		t.Errorf("expected B=72.5, got %+v", answers["B"])
	}
	if answers["C"].Value != "renoviert 2021" {
		t.Errorf("expected C text value, got %+v", answers["C"])
	}
}

func TestExtractAnswersZeroIsAnAnswer(t *testing.T) {
	items := testTemplate()
	items[1].Value = float64(0)

	answers := ExtractAnswers(items)

	if _, ok := answers["B"]; !ok {
		t.Error("numeric zero should be extracted as an answer")
	}
}

func TestMergeAnswersNilRecordIsIdentity(t *testing.T) {
	template := testTemplate()

	merged := MergeAnswers(template, nil)

	if !reflect.DeepEqual(merged, template) {
		t.Errorf("merge with nil record should equal template\ngot:  %+v\nwant: %+v", merged, template)
	}
}

func TestMergeAnswersOverlay(t *testing.T) {
	template := testTemplate()
	rec := &models.AnswerRecord{
		SchemaVersion: models.SchemaVersion,
		ObjectID:      "OBJ123",
		LastModified:  time.Now(),
		Answers: map[string]models.AnswerValue{
			"A": {Answer: models.AnswerYes},
		},
	}

	merged := MergeAnswers(template, rec)

	if len(merged) != len(template) {
		t.Fatalf("merge changed length: got %d, want %d", len(merged), len(template))
	}
	if merged[0].Answer != models.AnswerYes {
		t.Errorf("expected A answer yes, got %q", merged[0].Answer)
	}
	if merged[1].Value != nil {
		t.Errorf("B should remain unanswered, got %v", merged[1].Value)
	}
	// Non-answer fields untouched
	if merged[0].Title != template[0].Title || merged[1].Unit != template[1].Unit {
		t.Error("merge must preserve non-answer fields")
	}
}

func TestMergeAnswersDoesNotMutateInputs(t *testing.T) {
	template := testTemplate()
	rec := &models.AnswerRecord{
		Answers: map[string]models.AnswerValue{
			"A": {Answer: models.AnswerNo},
			"B": {Value: float64(55)},
		},
	}

	_ = MergeAnswers(template, rec)

	if template[0].Answer != "" || template[1].Value != nil {
		t.Error("MergeAnswers mutated the template")
	}
	if rec.Answers["A"].Answer != models.AnswerNo {
		t.Error("MergeAnswers mutated the record")
	}
}

func TestMergeAnswersShapeMismatchIgnored(t *testing.T) {
	template := testTemplate()
	rec := &models.AnswerRecord{
		Answers: map[string]models.AnswerValue{
			// A is a choice item but the record stores an input shape
			"A": {Value: float64(3)},
			// B is an input item but the record stores a choice shape
			"B": {Answer: models.AnswerYes},
			// unknown id
			"Z": {Answer: models.AnswerNo},
		},
	}

	merged := MergeAnswers(template, rec)

	if merged[0].Answer != "" {
		t.Errorf("choice item must ignore input-shaped entry, got %q", merged[0].Answer)
	}
	if merged[1].Value != nil {
		t.Errorf("input item must ignore choice-shaped entry, got %v", merged[1].Value)
	}
	if len(merged) != len(template) {
		t.Errorf("unknown ids must not change length")
	}
}

func TestExtractMergeRoundTrip(t *testing.T) {
	template := testTemplate()
	rec := &models.AnswerRecord{
		Answers: map[string]models.AnswerValue{
			"A": {Answer: models.AnswerNotObserved},
			"B": {Value: float64(88)},
			"Z": {Answer: models.AnswerYes}, // id not in template, dropped
		},
	}

	got := ExtractAnswers(MergeAnswers(template, rec))

	want := map[string]models.AnswerValue{
		"A": {Answer: models.AnswerNotObserved},
		"B": {Value: float64(88)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\ngot:  %v\nwant: %v", got, want)
	}
}

func TestMergeConcreteScenario(t *testing.T) {
	// Template [choice A, input B], record only answers A.
	template := []models.ChecklistItem{
		{ID: "A", AnswerKind: models.KindChoice, Options: models.ChoiceOptions},
		{ID: "B", AnswerKind: models.KindInput, ValueFormat: models.FormatNumber, Unit: "m²"},
	}
	rec := &models.AnswerRecord{
		Answers: map[string]models.AnswerValue{
			"A": {Answer: models.AnswerYes},
		},
	}

	merged := MergeAnswers(template, rec)

	if merged[0].Answer != models.AnswerYes {
		t.Errorf("A: got %q, want yes", merged[0].Answer)
	}
	if merged[1].Value != nil {
		t.Errorf("B: got %v, want unset", merged[1].Value)
	}
}

func TestNewAnswerRecord(t *testing.T) {
	items := testTemplate()
	items[0].Answer = models.AnswerNo

	before := time.Now().UTC()
	rec := NewAnswerRecord("OBJ123", items)
	after := time.Now().UTC()

	if rec.SchemaVersion != models.SchemaVersion {
		t.Errorf("schema version: got %q", rec.SchemaVersion)
	}
	if rec.ObjectID != "OBJ123" {
		t.Errorf("object id: got %q", rec.ObjectID)
	}
	if rec.LastModified.Before(before) || rec.LastModified.After(after) {
		t.Errorf("lastModified %v not in [%v, %v]", rec.LastModified, before, after)
	}
	if len(rec.Answers) != 1 || rec.Answers["A"].Answer != models.AnswerNo {
		t.Errorf("answers: got %v", rec.Answers)
	}
}
