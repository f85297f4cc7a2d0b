package kot

import (
	"errors"
	"fmt"
	"time"

	"pos-backend/internal/models"
)

// ErrInvalidTransition is returned when a ticket is asked to move backward
// or to the state it is already in.
var ErrInvalidTransition = errors.New("invalid KOT transition")

// stageRank orders the pipeline pending -> accepted -> preparing -> ready -> served.
var stageRank = map[models.KOTStatus]int{
	models.KOTStatusPending:   0,
	models.KOTStatusAccepted:  1,
	models.KOTStatusPreparing: 2,
	models.KOTStatusReady:     3,
	models.KOTStatusServed:    4,
}

// CanAdvance reports whether a ticket in state from may move to target.
// Only strictly forward moves are allowed. Skipping stages is permitted:
// the kitchen may plate a ticket it never marked "preparing", and the
// skipped stage timestamps simply stay null.
func CanAdvance(from, to models.KOTStatus) bool {
	fromRank, ok := stageRank[from]
	if !ok {
		return false
	}
	toRank, ok := stageRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Advance moves the ticket to target and stamps the matching stage
// timestamp. Timestamps already set are never cleared; there is no un-accept.
func Advance(k *models.KOT, target models.KOTStatus, now time.Time) error {
	if !CanAdvance(k.Status, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, k.Status, target)
	}

	k.Status = target
	switch target {
	case models.KOTStatusAccepted:
		k.AcceptedAt = &now
	case models.KOTStatusPreparing:
		k.PreparingAt = &now
	case models.KOTStatusReady:
		k.ReadyAt = &now
	case models.KOTStatusServed:
		k.ServedAt = &now
	}
	return nil
}

// ElapsedMinutes returns whole minutes between since and now, or nil when
// the stage has not been reached yet. Display-only; nothing is persisted.
func ElapsedMinutes(since *time.Time, now time.Time) *int {
	if since == nil {
		return nil
	}
	minutes := int(now.Sub(*since) / time.Minute)
	return &minutes
}
