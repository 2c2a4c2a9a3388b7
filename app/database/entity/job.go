package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"backend/insurance-platform/app/database/constant/job"
)

type JobPayload map[string]interface{}

func (p JobPayload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JobPayload: %w", err)
	}
	return string(data), nil
}

func (p *JobPayload) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return fmt.Errorf("cannot scan %T into JobPayload", value)
	}
	if len(bytes) == 0 {
		*p = make(JobPayload)
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// Decode converts the payload into a typed struct through its JSON form.
func (p JobPayload) Decode(out any) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// NewJobPayload converts a typed payload into a JobPayload.
func NewJobPayload(in any) (JobPayload, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	payload := JobPayload{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID          string       `bun:"id,pk,type:varchar(64)" json:"id"`
	Type        job.Type     `bun:"type,notnull" json:"type"`
	Priority    job.Priority `bun:"priority,type:integer,notnull" json:"priority"`
	Payload     JobPayload   `bun:"payload,type:jsonb" json:"payload"`
	Attempts    int          `bun:"attempts,notnull,default:0" json:"attempts"`
	MaxAttempts int          `bun:"max_attempts,notnull,default:3" json:"max_attempts"`
	// Identifier of the message that produced the job, used to drop redeliveries.
	ExternalID  *string    `bun:"external_id,unique" json:"external_id,omitempty"`
	Status      job.Status `bun:"status,notnull,default:'pending'" json:"status"`
	Error       string     `bun:"error" json:"error,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   *time.Time `bun:"updated_at" json:"updated_at"`
	ScheduledAt *time.Time `bun:"scheduled_at,nullzero" json:"scheduled_at,omitempty"`
	StartedAt   *time.Time `bun:"started_at,nullzero" json:"started_at,omitempty"`
	CompletedAt *time.Time `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
	DeletedAt   *time.Time `bun:"deleted_at,soft_delete" json:"deleted_at,omitempty"`
}

func (j Job) Alias() string {
	return "j"
}

// CanRetry reports whether another attempt is allowed after the current one failed.
func (j Job) CanRetry() bool {
	return j.Attempts < j.MaxAttempts
}
