package models

import "time"

// SchemaVersion pins answer records to the Mietspiegel Magdeburg 2024
// checklist revision. Records written under a different version live under
// different storage keys and never collide.
const SchemaVersion = "ms-2024.1"

// Answer kind constants (ChecklistItem.AnswerKind)
const (
	KindChoice = "choice"
	KindInput  = "input"
)

// Value format constants (ChecklistItem.ValueFormat, input items only)
const (
	FormatNumber = "number"
	FormatText   = "text"
)

// Choice answer literals
const (
	AnswerYes         = "yes"
	AnswerNo          = "no"
	AnswerNotObserved = "not observed"
)

// ChoiceOptions is the fixed option set for every choice item.
var ChoiceOptions = []string{AnswerYes, AnswerNo, AnswerNotObserved}

// SaveStatus is the visible state of a debounced save pipeline.
type SaveStatus string

// SaveStatus values owned by the autosave controller
const (
	StatusIdle   SaveStatus = "idle"
	StatusSaving SaveStatus = "saving"
	StatusSaved  SaveStatus = "saved"
	StatusError  SaveStatus = "error"
)

// ChecklistItem is one entry of an inspection checklist. The union is
// discriminated by AnswerKind: choice items carry Options/Answer, input
// items carry ValueFormat/Value/Unit. ID is the stable join key between
// template, live state and persisted answers and is never regenerated.
type ChecklistItem struct {
	ID         string `json:"id"`
	Section    string `json:"section"`
	Title      string `json:"title"`
	AnswerKind string `json:"answerKind"`
	Hint       string `json:"hint,omitempty"`

	// choice variant
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`

	// input variant; Value is a number, a string, or nil (unanswered)
	ValueFormat string `json:"valueFormat,omitempty"`
	Value       any    `json:"value,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// AnswerValue is one persisted answer. Exactly one of Value/Answer is set:
// Value for input items, Answer for choice items.
type AnswerValue struct {
	Value  any    `json:"value,omitempty"`
	Answer string `json:"answer,omitempty"`
}

// AnswerRecord is the persisted, sparse answer set for one (user, object)
// pair. A record is derived fresh from the live checklist on every save;
// absence of an item id means "unanswered".
type AnswerRecord struct {
	SchemaVersion string                 `json:"schemaVersion"`
	ObjectID      string                 `json:"objectId"`
	LastModified  time.Time              `json:"lastModified"`
	Answers       map[string]AnswerValue `json:"answers"`
}

// PropertyObject is one real-estate unit with its base data and checklist.
// Base-data strings stay raw as exported from the portfolio sheet (they
// include units, e.g. "482,31 €").
type PropertyObject struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	BaseRent       *string         `json:"baseRent"`
	AverageRent    *string         `json:"averageRent"`
	TargetRent     *string         `json:"targetRent"`
	YearBuilt      *string         `json:"yearBuilt"`
	ListedBuilding *string         `json:"listedBuilding"`
	Modernization  *string         `json:"modernization"`
	HeatingType    *string         `json:"heatingType"`
	EnergySource   *string         `json:"energySource"`
	EnergyClass    *string         `json:"energyClass"`
	ParkingRent    *string         `json:"parkingRent"`
	Checklist      []ChecklistItem `json:"checklist,omitempty"`
}

// ChecklistGroup bundles the items of one section for rendering.
type ChecklistGroup struct {
	Section string          `json:"section"`
	Items   []ChecklistItem `json:"items"`
}

// Response types

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type UploadImageResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"imageUrl"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type ImageInfo struct {
	Filename string    `json:"filename"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type ImageListResponse struct {
	Images []ImageInfo `json:"images"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
