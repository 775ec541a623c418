package realtime

import (
	"encoding/json"
	"fmt"
)

// EventType describes the kind of row change carried by a ChangeEvent.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Validate reports whether the event type is one of the known kinds.
func (t EventType) Validate() error {
	switch t {
	case EventInsert, EventUpdate, EventDelete:
		return nil
	}
	return fmt.Errorf("unknown event type: %q", t)
}

// ChangeEvent is a single row-change notification for a table.
// New carries the row after the change (INSERT/UPDATE), Old the row before
// it (UPDATE/DELETE). Both are raw JSON so subscribers decide how to decode.
type ChangeEvent struct {
	EventType EventType       `json:"event_type"`
	Table     string          `json:"table"`
	New       json.RawMessage `json:"new,omitempty"`
	Old       json.RawMessage `json:"old,omitempty"`
}

// Validate checks the event is publishable.
func (e *ChangeEvent) Validate() error {
	if err := e.EventType.Validate(); err != nil {
		return err
	}
	if e.Table == "" {
		return fmt.Errorf("event table cannot be empty")
	}
	if e.EventType == EventDelete {
		if len(e.Old) == 0 {
			return fmt.Errorf("DELETE event requires an old record")
		}
		return nil
	}
	if len(e.New) == 0 {
		return fmt.Errorf("%s event requires a new record", e.EventType)
	}
	return nil
}

// Record returns the payload that identifies the affected row:
// the new record, or the old one for DELETE events.
func (e *ChangeEvent) Record() json.RawMessage {
	if e.EventType == EventDelete {
		return e.Old
	}
	return e.New
}

// Filter narrows a subscription to rows whose column equals a value,
// e.g. {Column: "customer_id", Value: currentUserID}.
type Filter struct {
	Column string
	Value  string
}

// Matches reports whether the event's affected row satisfies the filter.
// Events whose payload cannot be decoded do not match.
func (f Filter) Matches(e *ChangeEvent) bool {
	var record map[string]any
	if err := json.Unmarshal(e.Record(), &record); err != nil {
		return false
	}
	v, ok := record[f.Column]
	if !ok {
		return false
	}
	return fmt.Sprint(v) == f.Value
}

// eventsChannel returns the pub/sub channel name for a table.
func eventsChannel(table string) string {
	return "marketplace:" + table + ":events"
}
