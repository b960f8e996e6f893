package services

import (
	"time"
)

// DueState is the result of classifying a scheduled date against a
// reference instant.
type DueState int

const (
	DueNone DueState = iota
	DueUpcoming
	DueOverdue
)

func (d DueState) String() string {
	switch d {
	case DueUpcoming:
		return "upcoming"
	case DueOverdue:
		return "overdue"
	default:
		return "none"
	}
}

// ClassifyDueDate labels a source record's scheduled date relative to now.
// Terminal records are always DueNone. The upcoming window is inclusive on
// both ends: scheduled == now and scheduled == now + window both classify
// as upcoming; only a strictly past date is overdue.
func ClassifyDueDate(scheduled time.Time, terminal bool, now time.Time, window time.Duration) DueState {
	if terminal {
		return DueNone
	}

	diff := scheduled.Sub(now)
	if diff >= 0 && diff <= window {
		return DueUpcoming
	}
	if scheduled.Before(now) {
		return DueOverdue
	}
	return DueNone
}
