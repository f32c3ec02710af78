package domain

import "fmt"

// Cents is a currency amount in minor units. Ledger amounts are signed;
// balances and rates are non-negative by invariant.
type Cents int64

const millisPerHour = 60 * 60 * 1000

// CostFor computes the charge for occupying a resource with the given hourly
// rate over the interval. Fractional hours round half-up to the cent.
func CostFor(rate Cents, iv Interval) Cents {
	ms := iv.Duration().Milliseconds()
	if ms <= 0 || rate <= 0 {
		return 0
	}
	return Cents((ms*int64(rate) + millisPerHour/2) / millisPerHour)
}

// String formats the amount in major units, e.g. 1550 -> "15.50".
func (c Cents) String() string {
	sign := ""
	value := int64(c)
	if value < 0 {
		sign = "-"
		value = -value
	}
	return fmt.Sprintf("%s%d.%02d", sign, value/100, value%100)
}
