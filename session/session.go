// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/mkoehler/immo-inspect/autosave"
	"github.com/mkoehler/immo-inspect/checklist"
	"github.com/mkoehler/immo-inspect/models"
	"github.com/mkoehler/immo-inspect/storage"
	"github.com/mkoehler/immo-inspect/user"
)

// Options configures a session; the zero value uses the reference autosave
// timings.
type Options struct {
	Autosave autosave.Options
}

// legacyMigrator is implemented by providers that carry the one-time
// legacy-key migration.
type legacyMigrator interface {
	MigrateAll(user string)
}

// Session is one checklist editing session for a (user, object) pair. It
// owns the live item state and the autosave controller; both are discarded
// on Close. Construct with Open, never directly.
type Session struct {
	userSlug string
	objectID string
	provider storage.Provider
	ctrl     *autosave.Controller

	mu       sync.Mutex
	template []models.ChecklistItem
	items    []models.ChecklistItem
}

// Open starts an editing session: runs the best-effort legacy migration,
// loads any saved record and merges it onto the template. Load failures
// are treated as absence; an editing session must never fail just because
// old answers are unreadable.
func Open(ctx context.Context, provider storage.Provider, userSlug, objectID string, template []models.ChecklistItem, opts Options) (*Session, error) {
	if !user.ValidSlug(userSlug) {
		return nil, fmt.Errorf("invalid user slug %q", userSlug)
	}
	if objectID == "" {
		return nil, fmt.Errorf("object id is required")
	}

	if m, ok := provider.(legacyMigrator); ok {
		m.MigrateAll(userSlug)
	}

	rec, err := provider.Load(ctx, userSlug, objectID)
	if err != nil {
		slog.Warn("failed to load saved answers, starting empty", "object_id", objectID, "error", err)
		rec = nil
	}

	s := &Session{
		userSlug: userSlug,
		objectID: objectID,
		provider: provider,
		template: template,
		items:    checklist.MergeAnswers(template, rec),
	}

	s.ctrl = autosave.New(func(ctx context.Context, rec models.AnswerRecord) error {
		return provider.Save(ctx, userSlug, objectID, rec)
	}, opts.Autosave)

	return s, nil
}

// SetChoice records the answer of a choice item and schedules a save.
// Validation failures are synchronous and never touch the save pipeline.
func (s *Session) SetChoice(itemID, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.findLocked(itemID, models.KindChoice)
	if err != nil {
		return err
	}
	if !slices.Contains(s.items[i].Options, answer) {
		return fmt.Errorf("answer %q is not an option of item %s", answer, itemID)
	}

	s.items[i].Answer = answer
	s.scheduleLocked()
	return nil
}

// SetValue records the value of an input item and schedules a save. For
// number-format items the value must be numeric (or a numeric string);
// nil or an empty string clears the answer.
func (s *Session) SetValue(itemID string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.findLocked(itemID, models.KindInput)
	if err != nil {
		return err
	}

	if value == nil || value == "" {
		s.items[i].Value = nil
		s.scheduleLocked()
		return nil
	}

	if s.items[i].ValueFormat == models.FormatNumber {
		n, err := toNumber(value)
		if err != nil {
			return fmt.Errorf("item %s expects a number: %w", itemID, err)
		}
		value = n
	}

	s.items[i].Value = value
	s.scheduleLocked()
	return nil
}

// Items returns a snapshot of the live checklist state.
func (s *Session) Items() []models.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.ChecklistItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// Status reports the autosave state and, when in error, a short reason.
func (s *Session) Status() (models.SaveStatus, string) {
	return s.ctrl.Status()
}

// Clear removes the persisted record and resets the live state to the
// template.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.provider.Clear(ctx, s.userSlug, s.objectID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = checklist.MergeAnswers(s.template, nil)
	return nil
}

// Close ends the session and tears down the autosave controller; nothing
// writes afterwards.
func (s *Session) Close() {
	s.ctrl.Close()
}

// scheduleLocked derives a fresh record from the current state and hands
// it to the controller. Callers hold s.mu.
func (s *Session) scheduleLocked() {
	s.ctrl.Schedule(checklist.NewAnswerRecord(s.objectID, s.items))
}

func (s *Session) findLocked(itemID, wantKind string) (int, error) {
	for i := range s.items {
		if s.items[i].ID == itemID {
			if s.items[i].AnswerKind != wantKind {
				return 0, fmt.Errorf("item %s is a %s item, not %s", itemID, s.items[i].AnswerKind, wantKind)
			}
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown checklist item %s", itemID)
}

func toNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}
