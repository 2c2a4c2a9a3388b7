package claim

import (
	"database/sql/driver"
	"fmt"
)

// Type is the kind of incident a claim is filed for.
type Type string

const (
	Medical  Type = "medical"
	Accident Type = "accident"
	Baggage  Type = "baggage"
	Theft    Type = "theft"
	Other    Type = "other"
)

// Types lists every claim type accepted on claim creation.
var Types = []Type{Medical, Accident, Baggage, Theft, Other}

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t is one of the accepted claim types.
func (t Type) IsValid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

func (t *Type) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = Type(v)
	case []byte:
		*t = Type(v)
	default:
		return fmt.Errorf("cannot scan ClaimType from %T", value)
	}
	return nil
}

func (t Type) Value() (driver.Value, error) {
	return string(t), nil
}
