// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// The inspect binary edits a property checklist from the terminal. It
// drives the same session/storage/autosave pipeline the SPA uses: answers
// land in the local state database or, in remote mode, on the answer-store
// API with local fallback.
//
// Usage:
//
//	inspect -user "Anna Schmidt" -o OBJ-101 [show]
//	inspect -user "Anna Schmidt" -o OBJ-101 set OVM-11 "Fernwärme"
//	inspect -user "Anna Schmidt" -o OBJ-101 answer OVM-5 yes
//	inspect -user "Anna Schmidt" -o OBJ-101 clear
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mkoehler/immo-inspect/checklist"
	"github.com/mkoehler/immo-inspect/cliparse"
	"github.com/mkoehler/immo-inspect/kv"
	"github.com/mkoehler/immo-inspect/models"
	"github.com/mkoehler/immo-inspect/session"
	"github.com/mkoehler/immo-inspect/storage"
	"github.com/mkoehler/immo-inspect/user"
)

func main() {
	cfg, args, err := cliparse.ParseClientFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	store, err := kv.Open(cfg.StatePath)
	if err != nil {
		slog.Error("state database open failed", "path", cfg.StatePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	provider := storage.NewProvider(cfg.StorageMode, cfg.RemoteBaseURL, store)

	template, err := checklist.Template()
	if err != nil {
		slog.Error("checklist template load failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	sess, err := session.Open(ctx, provider, user.Slugify(cfg.User), cfg.ObjectID, template, session.Options{})
	if err != nil {
		slog.Error("session open failed", "error", err)
		os.Exit(1)
	}
	defer sess.Close()

	command := "show"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "show":
		showChecklist(sess)

	case "answer":
		// answer <itemID> <yes|no|not observed>
		if len(args) < 3 {
			slog.Error("usage: answer <itemID> <choice>")
			os.Exit(1)
		}
		if err := sess.SetChoice(args[1], strings.Join(args[2:], " ")); err != nil {
			slog.Error("answer rejected", "error", err)
			os.Exit(1)
		}
		waitForSave(sess)

	case "set":
		// set <itemID> <value>
		if len(args) != 3 {
			slog.Error("usage: set <itemID> <value>")
			os.Exit(1)
		}
		if err := sess.SetValue(args[1], args[2]); err != nil {
			slog.Error("value rejected", "error", err)
			os.Exit(1)
		}
		waitForSave(sess)

	case "clear":
		if err := sess.Clear(ctx); err != nil {
			slog.Error("clear failed", "error", err)
			os.Exit(1)
		}
		fmt.Println("answers cleared")

	default:
		slog.Error("unknown command", "command", command)
		os.Exit(1)
	}
}

// showChecklist prints the live checklist grouped by section.
func showChecklist(sess *session.Session) {
	for _, group := range checklist.GroupBySection(sess.Items()) {
		fmt.Println(group.Section)
		for _, item := range group.Items {
			fmt.Printf("  %-8s %-40s %s\n", item.ID, item.Title, formatAnswer(item))
		}
	}
}

func formatAnswer(item models.ChecklistItem) string {
	switch item.AnswerKind {
	case models.KindChoice:
		if item.Answer == "" {
			return "-"
		}
		return item.Answer
	case models.KindInput:
		if item.Value == nil {
			return "-"
		}
		if item.Unit != "" {
			return fmt.Sprintf("%v %s", item.Value, item.Unit)
		}
		return fmt.Sprintf("%v", item.Value)
	}
	return "-"
}

// waitForSave blocks until the debounced save lands (or fails). The quiet
// period plus one round trip is well under the timeout.
func waitForSave(sess *session.Session) {
	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		status, errMsg := sess.Status()
		switch status {
		case models.StatusSaved:
			fmt.Println("saved")
			return
		case models.StatusError:
			slog.Error("save failed", "error", errMsg)
			os.Exit(1)
		}
		time.Sleep(50 * time.Millisecond)
	}
	slog.Error("save timed out")
	os.Exit(1)
}
