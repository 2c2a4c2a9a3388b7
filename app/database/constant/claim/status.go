package claim

import (
	"database/sql/driver"
	"fmt"
)

// Status is the lifecycle position of a claim.
type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Approved   Status = "approved"
	Rejected   Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible from s.
func (s Status) IsTerminal() bool {
	return s == Approved || s == Rejected
}

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(v)
	default:
		return fmt.Errorf("cannot scan ClaimStatus from %T", value)
	}
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
