// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package autosave provides the debounced save controller behind the
checklist editor's save indicator.

# State Machine

	idle → saving → saved → idle
	              ↘ error → idle

Schedule flips the status to "saving" immediately and arms the quiet
period (500 ms by default). Repeated calls inside the window reset the
timer, so a burst of edits produces exactly one write carrying the last
payload. After a successful write the "saved" state shows for 2 s; after a
failed one the "error" state (with a short reason) shows for 5 s; both
auto-revert to idle.

# Usage

	ctrl := autosave.New(func(ctx context.Context, rec models.AnswerRecord) error {
		return provider.Save(ctx, user, objectID, rec)
	}, autosave.Options{})
	defer ctrl.Close()

	ctrl.Schedule(record)            // on every edit
	status, reason := ctrl.Status()  // for the indicator

Close discards pending timers; nothing writes after teardown.
*/
package autosave
