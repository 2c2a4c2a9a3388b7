package policy

import (
	"database/sql/driver"
	"fmt"
)

type Status string

const (
	Active    Status = "active"
	Expired   Status = "expired"
	Cancelled Status = "cancelled"
)

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(v)
	default:
		return fmt.Errorf("cannot scan PolicyStatus from %T", value)
	}
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
