package events

import (
	"time"

	"github.com/vsinha/liftplan/pkg/application/dto"
	"github.com/vsinha/liftplan/pkg/domain/entities"
)

// DigestStream is the stream the digest watcher appends to
const DigestStream = "digest"

const (
	DigestBuiltEvent  = "digest.built"
	AlertRaisedEvent  = "alert.raised"
	AlertClearedEvent = "alert.cleared"
)

// DigestEventTypes lists every event type the digest watcher emits
var DigestEventTypes = []string{DigestBuiltEvent, AlertRaisedEvent, AlertClearedEvent}

type DigestBuilt struct {
	GeneratedAt time.Time                 `json:"generated_at"`
	Counts      map[entities.Severity]int `json:"counts"`
	Alerts      int                       `json:"alerts"`
}

type AlertRaised struct {
	Alert dto.Alert `json:"alert"`
}

type AlertCleared struct {
	Alert dto.Alert `json:"alert"`
}
