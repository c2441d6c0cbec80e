package storage

import (
	"encoding/json"
	"time"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/domain"
)

// Kind distinguishes what an archived operation record holds.
type Kind string

const (
	KindDemoras         Kind = "demoras"
	KindAcontecimientos Kind = "acontecimientos"
)

// OperationRecord is one submitted operation as archived for per-user
// reporting and export. Payload carries the full serialized aggregate
// exactly as it was sent to the collector.
type OperationRecord struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	UserName    string          `json:"userName"`
	Kind        Kind            `json:"kind"`
	Variant     string          `json:"variant"`
	FechaInicio string          `json:"fechaInicio"`
	SubmittedAt time.Time       `json:"submittedAt"`
	Payload     json.RawMessage `json:"payload"`
}

// FromDraft converts a validated draft into its archive record.
func FromDraft(d *domain.Draft) (*OperationRecord, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}

	return &OperationRecord{
		ID:          d.ID,
		UserID:      d.UserID,
		UserName:    d.UserName,
		Kind:        KindDemoras,
		Variant:     d.Variant,
		FechaInicio: d.FechaInicio,
		SubmittedAt: time.Now(),
		Payload:     payload,
	}, nil
}

// FromEventLog converts a submitted acontecimientos log into its
// archive record. Event logs have no id of their own; one is assigned
// by the caller.
func FromEventLog(id string, l *domain.EventLog) (*OperationRecord, error) {
	payload, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}

	return &OperationRecord{
		ID:          id,
		UserID:      l.UserID,
		UserName:    l.UserName,
		Kind:        KindAcontecimientos,
		FechaInicio: l.FechaInicio,
		SubmittedAt: time.Now(),
		Payload:     payload,
	}, nil
}
