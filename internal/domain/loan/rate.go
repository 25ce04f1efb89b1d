package loan

import "github.com/shopspring/decimal"

var (
	ratePersonal = decimal.RequireFromString("12.50")
	rateHome     = decimal.RequireFromString("8.75")
	rateCar      = decimal.RequireFromString("10.25")
	rateFallback = decimal.RequireFromString("15.00")
)

// DefaultRateFor returns the annual interest rate (percent) assigned when the
// applicant does not supply one.
func DefaultRateFor(t Type) decimal.Decimal {
	switch t {
	case TypePersonal:
		return ratePersonal
	case TypeHome:
		return rateHome
	case TypeCar:
		return rateCar
	default:
		return rateFallback
	}
}
