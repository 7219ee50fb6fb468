package domain

import "time"

// FieldChange records one field whose value actually changed during a
// successful mutation.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// AuditRecord is produced once per successful mutation. It lists every field
// that changed, the actor and the time the change was committed.
type AuditRecord struct {
	At      time.Time     `json:"at"`
	ActorID string        `json:"actorID"`
	Changes []FieldChange `json:"changes"`
}
