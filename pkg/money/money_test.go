package money

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat_ComaDecimalYSimbolo(t *testing.T) {
	got := Format(decimal.RequireFromString("1234.5"))
	assert.True(t, strings.HasSuffix(got, ",50 ₽"), got)
	assert.NotContains(t, got, ".")
}

func TestAmount_Cero(t *testing.T) {
	assert.Equal(t, "0,00", Amount(decimal.Zero))
}
