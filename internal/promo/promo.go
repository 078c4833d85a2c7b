// Package promo holds the static promo-code table used by the
// checkout page.  Codes are matched case-insensitively.  The table is
// intentionally hardcoded; promo management is outside the scope of
// this service.
package promo

import "strings"

// DiscountType distinguishes percentage discounts from fixed amounts.
type DiscountType string

const (
	// Percent discounts reduce the price by DiscountValue percent.
	Percent DiscountType = "PERCENT"
	// Flat discounts subtract DiscountValue from the price.
	Flat DiscountType = "FLAT"
)

// Discount describes a validated promo code.
type Discount struct {
	Code          string       `json:"code"`
	DiscountValue float64      `json:"discountValue"`
	DiscountType  DiscountType `json:"discountType"`
	Message       string       `json:"message"`
}

var table = map[string]Discount{
	"SAVE10": {
		Code:          "SAVE10",
		DiscountValue: 10,
		DiscountType:  Percent,
		Message:       "10% off applied!",
	},
	"FLAT100": {
		Code:          "FLAT100",
		DiscountValue: 100,
		DiscountType:  Flat,
		Message:       "$100 fixed discount applied!",
	},
}

// Validate looks up a promo code.  The boolean reports whether the
// code exists; unknown or empty codes return false.
func Validate(code string) (Discount, bool) {
	d, ok := table[strings.ToUpper(strings.TrimSpace(code))]
	return d, ok
}
