package payment

import (
	"database/sql/driver"
	"fmt"
)

// Status of a recorded payment.
type Status string

const (
	Completed Status = "completed"
	Pending   Status = "pending"
	Failed    Status = "failed"
)

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(v)
	default:
		return fmt.Errorf("cannot scan PaymentStatus from %T", value)
	}
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
