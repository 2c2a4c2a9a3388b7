package job

import (
	"database/sql/driver"
	"fmt"
)

// Priority picks the redis queue a job waits in. Settlements coming off SQS
// run high, reviews and notifications normal.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

var priorityNames = [...]string{"low", "normal", "high", "critical"}

// Priorities is ordered from most to least urgent, the order workers drain queues in.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow}

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

func (p Priority) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return priorityNames[p]
}

// Scan stores NULL as PriorityNormal and rejects values outside the known range.
func (p *Priority) Scan(value any) error {
	var n int64
	switch v := value.(type) {
	case nil:
		*p = PriorityNormal
		return nil
	case int64:
		n = v
	case int:
		n = int64(v)
	default:
		return fmt.Errorf("cannot scan job priority from %T", value)
	}

	if !Priority(n).Valid() {
		return fmt.Errorf("job priority %d out of range", n)
	}
	*p = Priority(n)
	return nil
}

func (p Priority) Value() (driver.Value, error) {
	return int64(p), nil
}
