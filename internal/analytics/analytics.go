// Package analytics is the fire-and-forget reporting collaborator. It
// subscribes to the store event bus and forwards user actions to the
// structured log; the stores never depend on its success.
package analytics

import (
	"github.com/osolodkova/tracker/internal/logger"
	"github.com/osolodkova/tracker/internal/store"
)

// Attach subscribes the reporter to the event bus and returns its
// unsubscribe function.
func Attach(events *store.Events) func() {
	return events.Subscribe(func(e store.Event) {
		logger.Debug("User action", "kind", string(e.Kind), "action", e.Action)
	})
}
