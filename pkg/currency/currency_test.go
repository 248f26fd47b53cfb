package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-tracker/pkg/currency"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$22.00", currency.Format(decimal.NewFromInt(22), "USD"))
	assert.Equal(t, "$1,234.57", currency.Format(decimal.RequireFromString("1234.567"), "usd"))
	assert.Equal(t, "$0.00", currency.Format(decimal.Zero, ""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "EUR", currency.Normalize(" eur "))
	assert.Equal(t, currency.DefaultCode, currency.Normalize("XXX-no-existe"))
}
