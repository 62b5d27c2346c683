package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javedfarm/dairybook/internal/money"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "123.45", money.Format(12345))
	assert.Equal(t, "0.05", money.Format(5))
	assert.Equal(t, "-123.45", money.Format(-12345))
	assert.Equal(t, "₹123.45", money.FormatRupees(12345))
	assert.Equal(t, "-₹123.45", money.FormatRupees(-12345))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"123.45", 12345},
		{"123", 12300},
		{"₹123.45", 12345},
		{" 60.5 ", 6050},
		{"-10", -1000},
	}

	for _, tc := range cases {
		got, err := money.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := money.Parse("")
	assert.Error(t, err)

	_, err = money.Parse("abc")
	assert.Error(t, err)
}
