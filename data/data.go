// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package data ships the bundled Magdeburg object portfolio and its
// normalization step: every object leaves Objects with an independent,
// base-field-free checklist attached.
package data

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mkoehler/immo-inspect/checklist"
	"github.com/mkoehler/immo-inspect/models"
)

//go:embed objekte_magdeburg.json
var objectsJSON []byte

// Objects returns the object list with checklists normalized: objects
// without one get a fresh template copy, existing checklists lose their
// base-data fields. Each call returns independent copies.
func Objects() ([]models.PropertyObject, error) {
	var objects []models.PropertyObject
	if err := json.Unmarshal(objectsJSON, &objects); err != nil {
		return nil, fmt.Errorf("failed to decode object fixtures: %w", err)
	}

	for i := range objects {
		if len(objects[i].Checklist) == 0 {
			tpl, err := checklist.Template()
			if err != nil {
				return nil, err
			}
			objects[i].Checklist = tpl
		} else {
			objects[i].Checklist = checklist.FilterBaseFields(objects[i].Checklist)
		}
	}

	return objects, nil
}

// FindObject looks an object up by its stable id.
func FindObject(objects []models.PropertyObject, id string) (*models.PropertyObject, bool) {
	for i := range objects {
		if objects[i].ID == id {
			return &objects[i], true
		}
	}
	return nil, false
}
