package analysis

import (
	"testing"

	"smc_bot/internal/models"
)

func TestPremiumDiscount(t *testing.T) {
	candles := flatRange(50, 100, 110, 90, 101)

	pd := PremiumDiscount(candles, 0, 95)
	if pd.Equilibrium != 100 {
		t.Fatalf("equilibrium = %.1f, want 100", pd.Equilibrium)
	}
	if pd.RangeHigh != 110 || pd.RangeLow != 90 {
		t.Errorf("range = [%.1f, %.1f], want [90, 110]", pd.RangeLow, pd.RangeHigh)
	}
	if pd.Zone != models.ZoneDiscount {
		t.Errorf("zone below eq = %s, want discount", pd.Zone)
	}

	if pd := PremiumDiscount(candles, 0, 105); pd.Zone != models.ZonePremium {
		t.Errorf("zone above eq = %s, want premium", pd.Zone)
	}
	if pd := PremiumDiscount(candles, 0, 100); pd.Zone != models.ZoneEquilibrium {
		t.Errorf("zone at eq = %s, want equilibrium", pd.Zone)
	}
}

// диапазон считается по последним n свечам, старый выброс не участвует
func TestPremiumDiscountWindow(t *testing.T) {
	candles := flatRange(60, 100, 110, 90, 101)
	candles[0].High = 500

	pd := PremiumDiscount(candles, 50, 95)
	if pd.RangeHigh != 110 {
		t.Errorf("range high = %.1f, spike outside the window must be ignored", pd.RangeHigh)
	}
}

func TestEqualLevels(t *testing.T) {
	candles := flatRange(15, 100, 110, 90, 101)

	zones := EqualLevels(candles, 0)
	var high, low *models.LiquidityZone
	for i := range zones {
		if zones[i].IsHigh {
			high = &zones[i]
		} else {
			low = &zones[i]
		}
	}
	if high == nil || low == nil {
		t.Fatalf("want both equal-high and equal-low zones, got %+v", zones)
	}
	if high.Level != 110 || high.Touches != 15 {
		t.Errorf("equal highs = %+v", *high)
	}
	if low.Level != 90 || low.Touches != 15 {
		t.Errorf("equal lows = %+v", *low)
	}
	// ровно на уровне — зона ещё не снята
	if high.Swept || low.Swept {
		t.Errorf("untouched zones must not be swept: high=%v low=%v", high.Swept, low.Swept)
	}
}

func TestEqualLevelsSwept(t *testing.T) {
	candles := flatRange(15, 100, 110, 90, 101)
	// последняя свеча проколола хаи
	candles[14].High = 112

	zones := EqualLevels(candles, 0)
	for _, z := range zones {
		if z.IsHigh && z.Level == 110 && !z.Swept {
			t.Errorf("zone pierced by a recent candle must be swept: %+v", z)
		}
	}
}

func TestEqualLevelsMinTouches(t *testing.T) {
	// один хай в бакете — не зона
	candles := flatRange(15, 100, 110, 90, 101)
	candles[7].High = 130

	for _, z := range EqualLevels(candles, 0) {
		if z.Level == 130 {
			t.Errorf("single touch must not form a zone: %+v", z)
		}
	}
}
