package currency_test

import (
	"testing"

	"backend/insurance-platform/app/pkg/currency"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	inr := currency.GetDefault()

	assert.Equal(t, "INR", inr.Code)
	assert.Equal(t, "₹8999.00", inr.Format(decimal.NewFromInt(8999)))
	assert.Equal(t, "₹12.50", inr.Format(decimal.RequireFromString("12.5")))
	assert.Equal(t, "-₹3.00", inr.Format(decimal.NewFromInt(-3)))
	assert.Equal(t, "₹0.00", inr.Format(decimal.Zero))
}
