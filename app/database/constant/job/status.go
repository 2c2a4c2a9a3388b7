package job

import (
	"database/sql/driver"
	"fmt"
)

type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Completed  Status = "completed"
	Failed     Status = "failed"
	Retrying   Status = "retrying"
)

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(v)
	default:
		return fmt.Errorf("cannot scan JobStatus from %T", value)
	}
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
