package payment

import (
	"database/sql/driver"
	"fmt"
)

// MethodType is the instrument kind of a saved payment method.
type MethodType string

const (
	Card       MethodType = "card"
	UPI        MethodType = "upi"
	NetBanking MethodType = "netbanking"
)

func (m MethodType) String() string {
	return string(m)
}

func (m *MethodType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*m = MethodType(v)
	case []byte:
		*m = MethodType(v)
	default:
		return fmt.Errorf("cannot scan PaymentMethodType from %T", value)
	}
	return nil
}

func (m MethodType) Value() (driver.Value, error) {
	return string(m), nil
}
