package money_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/techsolutions/storefront/internal/money"
)

func TestParseCLP(t *testing.T) {
	cases := []struct {
		text string
		want money.Money
	}{
		{"$199/mes", 199},
		{"$1.299.990", 1299990},
		{"$89.990", 89990},
		{"$5.000", 5000},
		{"1299990", 1299990},
		{"$1,299,990", 1299990},
		{" $449.990 ", 449990},
	}
	for _, tc := range cases {
		got, err := money.ParseCLP(tc.text)
		require.NoError(t, err, "text %q", tc.text)
		require.Equal(t, tc.want, got, "text %q", tc.text)
	}
}

func TestParseCLPRejectsMalformed(t *testing.T) {
	for _, text := range []string{"", "   ", "$", "gratis", "$abc", "$-100", "$19.99USD"} {
		_, err := money.ParseCLP(text)
		require.Error(t, err, "text %q", text)
	}
}

func TestIsRecurring(t *testing.T) {
	require.True(t, money.IsRecurring("$199/mes"))
	require.True(t, money.IsRecurring("  $349/MES "))
	require.False(t, money.IsRecurring("$1.299.990"))
}

func TestFormatCLP(t *testing.T) {
	require.Equal(t, "$1.299.990", money.FormatCLP(1299990, false))
	require.Equal(t, "$199/mes", money.FormatCLP(199, true))
	require.Equal(t, "$0", money.FormatCLP(0, false))
	require.Equal(t, "$5.000", money.FormatCLP(5000, false))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, amount := range []money.Money{0, 1, 999, 1000, 89990, 1299990} {
		parsed, err := money.ParseCLP(money.FormatCLP(amount, false))
		require.NoError(t, err)
		require.Equal(t, amount, parsed)
	}
}
