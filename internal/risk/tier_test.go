package risk

import "testing"

func TestTierValid(t *testing.T) {
	for _, tier := range []Tier{TierInfo, TierLow, TierMedium, TierHigh, TierCritical} {
		if !tier.Valid() {
			t.Errorf("expected %s to be valid", tier)
		}
	}
	if Tier("severe").Valid() {
		t.Error("expected unknown tier to be invalid")
	}
}

func TestTierRankOrdering(t *testing.T) {
	ordered := []Tier{TierInfo, TierLow, TierMedium, TierHigh, TierCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Fatalf("expected %s to rank above %s", ordered[i], ordered[i-1])
		}
	}
}

func TestTierLabel(t *testing.T) {
	if TierCritical.Label() != "CRITICAL" {
		t.Fatalf("unexpected label: %s", TierCritical.Label())
	}
	if TierInfo.Label() != "INFO" {
		t.Fatalf("unexpected label: %s", TierInfo.Label())
	}
}
