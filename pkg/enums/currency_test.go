package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	got, err := ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, CurrencyEUR, got)

	_, err = ParseCurrency("BTC")
	assert.Error(t, err)

	_, err = ParseCurrency("")
	assert.Error(t, err)
}

func TestCurrencyIsValid(t *testing.T) {
	assert.True(t, CurrencyUSD.IsValid())
	assert.False(t, Currency("usd").IsValid())
}
