package policy

import (
	"database/sql/driver"
	"fmt"
)

// Type is the insurance line a product, policy or quote belongs to.
type Type string

const (
	Health Type = "health"
	Auto   Type = "auto"
	Travel Type = "travel"
	Life   Type = "life"
	Home   Type = "home"
)

var Types = []Type{Health, Auto, Travel, Life, Home}

func (t Type) String() string {
	return string(t)
}

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
		return fmt.Errorf("cannot scan PolicyType from %T", value)
	}
	return nil
}

func (t Type) Value() (driver.Value, error) {
	return string(t), nil
}
