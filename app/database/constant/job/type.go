package job

import (
	"database/sql/driver"
	"fmt"
)

type Type string

const (
	ReviewClaim       Type = "review_claim"
	SettleClaim       Type = "settle_claim"
	NotifyClaimStatus Type = "notify_claim_status"
)

func (s Type) String() string {
	return string(s)
}

func (s *Type) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = Type(v)
	case []byte:
		*s = Type(v)
	default:
		return fmt.Errorf("cannot scan JobType from %T", value)
	}
	return nil
}

func (s Type) Value() (driver.Value, error) {
	return string(s), nil
}
