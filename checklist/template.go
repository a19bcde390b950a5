// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package checklist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mkoehler/immo-inspect/models"
)

//go:embed mietspiegel_checkliste_magdeburg_2024.json
var templateJSON []byte

// Base-data item IDs stripped from every checklist. Living area, address,
// construction year and listed-building status are already part of the
// object base data and must not be asked twice.
var baseFieldIDs = map[string]bool{
	"OVM-1": true,
	"OVM-2": true,
	"OVM-3": true,
	"OVM-4": true,
}

// Template returns a fresh copy of the Mietspiegel checklist template with
// base-data fields removed. Every call decodes anew so callers can never
// share or corrupt template state.
func Template() ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	if err := json.Unmarshal(templateJSON, &items); err != nil {
		return nil, fmt.Errorf("failed to decode checklist template: %w", err)
	}
	return FilterBaseFields(items), nil
}

// FilterBaseFields removes the base-data items (OVM-1 to OVM-4) from a
// checklist, preserving the order of the rest.
func FilterBaseFields(items []models.ChecklistItem) []models.ChecklistItem {
	filtered := make([]models.ChecklistItem, 0, len(items))
	for _, item := range items {
		if !baseFieldIDs[item.ID] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// GroupBySection groups items by their section, sections ordered by first
// appearance.
func GroupBySection(items []models.ChecklistItem) []models.ChecklistGroup {
	var groups []models.ChecklistGroup
	index := make(map[string]int)

	for _, item := range items {
		i, ok := index[item.Section]
		if !ok {
			i = len(groups)
			index[item.Section] = i
			groups = append(groups, models.ChecklistGroup{Section: item.Section})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// ValidateLivingArea checks a living-area input against the validity range
// of the Magdeburg rent index (20 to 200 m²). The living-area field is part
// of an object's base data, which is fixture-backed here, so this is for
// UI layers that let inspectors enter base data themselves.
func ValidateLivingArea(area float64) error {
	if math.IsNaN(area) {
		return fmt.Errorf("living area must be a number")
	}
	if area < 20 || area > 200 {
		return fmt.Errorf("living area must be between 20 and 200 m² (rent index validity)")
	}
	return nil
}
