package models

// SideRule maps a raw position amount's sign to a side label. The provider's
// sign convention has flipped between payload versions, so the mapping is
// configurable instead of hardcoded.
type SideRule func(amount float64) string

// LongPositive treats a positive amount as a long position. This matches the
// provider's current payloads and is the default.
func LongPositive(amount float64) string {
	if amount < 0 {
		return "Short"
	}
	return "Long"
}

// ShortPositive treats a positive amount as a short position.
func ShortPositive(amount float64) string {
	if amount < 0 {
		return "Long"
	}
	return "Short"
}

// SideRuleFor resolves a configured convention name to a rule. Unknown names
// fall back to LongPositive.
func SideRuleFor(name string) SideRule {
	if name == "short_positive" {
		return ShortPositive
	}
	return LongPositive
}
