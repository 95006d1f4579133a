package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOperators_InitialAndApply(t *testing.T) {
	tests := []struct {
		name        string
		op          string
		incoming    decimal.Decimal
		current     decimal.Decimal
		next        decimal.Decimal
		wantInitial decimal.Decimal
		wantApply   decimal.Decimal
	}{
		{
			name:        "count",
			op:          OpCount,
			incoming:    decimal.NewFromInt(123),
			current:     decimal.NewFromInt(9),
			next:        decimal.NewFromInt(456),
			wantInitial: decimal.NewFromInt(1),
			wantApply:   decimal.NewFromInt(10),
		},
		{
			name:        "sum",
			op:          OpSum,
			incoming:    decimal.NewFromInt(3),
			current:     decimal.NewFromInt(9),
			next:        decimal.RequireFromString("4.5"),
			wantInitial: decimal.NewFromInt(3),
			wantApply:   decimal.RequireFromString("13.5"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg, ok := Operators[tc.op]
			require.True(t, ok)
			require.True(t, tc.wantInitial.Equal(agg.Initial(tc.incoming)))
			require.True(t, tc.wantApply.Equal(agg.Apply(tc.current, tc.next)))
		})
	}
}

func TestValidOperator(t *testing.T) {
	require.True(t, ValidOperator(OpCount))
	require.True(t, ValidOperator(OpSum))
	require.False(t, ValidOperator("avg"))
	require.False(t, ValidOperator(""))
}

func TestFold(t *testing.T) {
	values := []decimal.Decimal{decimal.NewFromInt(50), decimal.NewFromInt(30), decimal.RequireFromString("0.5")}

	require.True(t, decimal.NewFromInt(3).Equal(Fold(OpCount, values)))
	require.True(t, decimal.RequireFromString("80.5").Equal(Fold(OpSum, values)))
	require.True(t, decimal.Zero.Equal(Fold(OpSum, nil)))
	require.True(t, decimal.Zero.Equal(Fold(OpCount, nil)))
	require.True(t, decimal.Zero.Equal(Fold("avg", values)))
}
