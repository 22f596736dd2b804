package risk

// Tier represents the severity assigned to a category or finding.
type Tier string

const (
	TierInfo     Tier = "info"
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// Valid reports whether the tier is one of the five enumerated values.
func (t Tier) Valid() bool {
	switch t {
	case TierInfo, TierLow, TierMedium, TierHigh, TierCritical:
		return true
	}
	return false
}

// Rank orders tiers from info (0) to critical (4) for sorting and
// distribution buckets.
func (t Tier) Rank() int {
	switch t {
	case TierCritical:
		return 4
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	default:
		return 0
	}
}

// String returns the lowercase wire form of the tier.
func (t Tier) String() string {
	return string(t)
}

// Label returns the uppercase display form used in reports.
func (t Tier) Label() string {
	switch t {
	case TierCritical:
		return "CRITICAL"
	case TierHigh:
		return "HIGH"
	case TierMedium:
		return "MEDIUM"
	case TierLow:
		return "LOW"
	default:
		return "INFO"
	}
}
