package currency

import (
	"github.com/shopspring/decimal"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// Format renders an amount with the currency symbol and two decimals.
func (c Currency) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + c.Symbol + amount.StringFixed(2)
}

// INR is the currency premiums, claims and payments are denominated in.
var INR = Currency{Code: "INR", Symbol: "₹"}

func GetDefault() Currency {
	return INR
}
