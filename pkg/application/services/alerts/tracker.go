package alerts

import (
	"sync"

	"github.com/vsinha/liftplan/pkg/application/dto"
)

// Tracker remembers the alerts of the previous digest so repeated runs can report changes
type Tracker struct {
	mu       sync.Mutex
	previous map[string]dto.Alert
	order    []string
}

// NewTracker creates a tracker with no previous digest
func NewTracker() *Tracker {
	return &Tracker{previous: make(map[string]dto.Alert)}
}

// Diff returns the alerts that are new since the last digest, and the ones that dropped out.
// An alert whose severity changed counts as raised again.
func (t *Tracker) Diff(digest *dto.AlertDigest) (raised, cleared []dto.Alert) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := make(map[string]dto.Alert, len(digest.Alerts))
	for _, a := range digest.Alerts {
		current[a.Event.ID] = a
		if prev, ok := t.previous[a.Event.ID]; !ok || prev.Severity != a.Severity {
			raised = append(raised, a)
		}
	}

	for _, a := range t.order {
		if _, ok := current[a]; !ok {
			cleared = append(cleared, t.previous[a])
		}
	}

	t.previous = current
	t.order = t.order[:0]
	for _, a := range digest.Alerts {
		t.order = append(t.order, a.Event.ID)
	}
	return raised, cleared
}
