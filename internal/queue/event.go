// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// RecordChangedQueue is the durable queue carrying RecordChangedEvent.
const RecordChangedQueue = "listview.record.changed"

// RecordChangedEvent is published after every successful store mutation.
// RecordID is zero for a bulk replace.
type RecordChangedEvent struct {
	EventID    string `json:"event_id"`
	Entity     string `json:"entity"`
	Op         string `json:"op"`
	RecordID   int    `json:"record_id"`
	Revision   uint64 `json:"revision"`
	OccurredAt string `json:"occurred_at"`
}

// NewRecordChangedEvent stamps a fresh event id and the current UTC time.
func NewRecordChangedEvent(entity, op string, recordID int, revision uint64) RecordChangedEvent {
	return RecordChangedEvent{
		EventID:    uuid.NewString(),
		Entity:     entity,
		Op:         op,
		RecordID:   recordID,
		Revision:   revision,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
