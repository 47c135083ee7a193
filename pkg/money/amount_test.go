package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldguard-app/backend/pkg/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     int64
		wantErr  bool
	}{
		{name: "plain integer", input: "100", want: 10000},
		{name: "two decimals", input: "100.50", want: 10050},
		{name: "one decimal", input: "0.5", want: 50},
		{name: "comma separator", input: "100,50", want: 10050},
		{name: "leading dot", input: ".75", want: 75},
		{name: "zero", input: "0", want: 0},
		{name: "surrounding whitespace", input: " 12.34 ", want: 1234},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-10", wantErr: true},
		{name: "three decimals", input: "1.005", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two separators", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Centavos())
		})
	}
}

func TestAmount_String(t *testing.T) {
	tests := []struct {
		centavos int64
		want     string
	}{
		{10050, "100.50"},
		{50, "0.50"},
		{5, "0.05"},
		{0, "0.00"},
		{-5050, "-50.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, money.FromCentavos(tt.centavos).String())
		})
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	deposit, err := money.Parse("100.50")
	require.NoError(t, err)
	withdrawal, err := money.Parse("50.00")
	require.NoError(t, err)

	net := withdrawal.Sub(deposit)
	assert.Equal(t, "-50.50", net.String())
	assert.False(t, net.IsPositive())
	assert.True(t, deposit.Add(withdrawal).IsPositive())
}

func TestAmount_JSONRoundTrip(t *testing.T) {
	tests := []string{"100.50", "0.00", "-50.50"}

	for _, want := range tests {
		t.Run(want, func(t *testing.T) {
			var a money.Amount
			data, err := json.Marshal(mustAmount(t, want))
			require.NoError(t, err)
			assert.Equal(t, `"`+want+`"`, string(data))

			require.NoError(t, json.Unmarshal(data, &a))
			assert.Equal(t, want, a.String())
		})
	}
}

func TestAmount_UnmarshalRejectsNumbers(t *testing.T) {
	var a money.Amount
	err := json.Unmarshal([]byte(`100.5`), &a)
	require.Error(t, err)
}

func mustAmount(t *testing.T, s string) money.Amount {
	t.Helper()
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	a, err := money.Parse(s)
	require.NoError(t, err)
	if neg {
		return money.Zero.Sub(a)
	}
	return a
}
