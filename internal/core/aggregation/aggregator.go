package aggregation

import (
	"github.com/shopspring/decimal"
)

// Aggregator defines the reduce semantics of an aggregation operator.
type Aggregator interface {
	// Initial returns the aggregate value after the very first value for a key.
	// count → 1; sum → the incoming value itself.
	Initial(incoming decimal.Decimal) decimal.Decimal

	// Apply folds an incoming value into an existing aggregate.
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

// Supported aggregation operators.
const (
	OpCount = "count"
	OpSum   = "sum"
)

// Operators is the registry of all supported aggregation operators.
var Operators = map[string]Aggregator{
	OpCount: countAgg{},
	OpSum:   sumAgg{},
}

// ValidOperator reports whether op is a registered aggregation operator.
func ValidOperator(op string) bool {
	_, ok := Operators[op]
	return ok
}

// Fold reduces values with the operator registered under op.
// An empty input folds to zero.
func Fold(op string, values []decimal.Decimal) decimal.Decimal {
	agg, ok := Operators[op]
	if !ok || len(values) == 0 {
		return decimal.Zero
	}
	acc := agg.Initial(values[0])
	for _, v := range values[1:] {
		acc = agg.Apply(acc, v)
	}
	return acc
}

// countAgg increments by 1 per value. The incoming value is ignored.
type countAgg struct{}

func (countAgg) Initial(_ decimal.Decimal) decimal.Decimal    { return decimal.NewFromInt(1) }
func (countAgg) Apply(cur, _ decimal.Decimal) decimal.Decimal { return cur.Add(decimal.NewFromInt(1)) }

// sumAgg accumulates the sum of incoming values.
type sumAgg struct{}

func (sumAgg) Initial(v decimal.Decimal) decimal.Decimal      { return v }
func (sumAgg) Apply(cur, inc decimal.Decimal) decimal.Decimal { return cur.Add(inc) }
