// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session ties the checklist codec, the storage provider and the
autosave controller into one editing session.

Opening a session loads whatever was saved for the (user, object) pair and
merges it onto the template; every edit updates the live state, derives a
fresh answer record and schedules a debounced save:

	sess, err := session.Open(ctx, provider, "robin", "OBJ123", template, session.Options{})
	defer sess.Close()

	err = sess.SetChoice("OVM-5", models.AnswerYes)
	err = sess.SetValue("OVM-12", 3)
	status, reason := sess.Status()

Edit validation (unknown item, wrong variant, non-numeric input for a
number field) is synchronous and never reaches the save pipeline. The
session is explicit per-user, per-object state passed in at construction;
there is no process-wide singleton.
*/
package session
