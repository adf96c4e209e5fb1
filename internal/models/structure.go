package models

// StructureBreak — BOS или CHOCH с пробитым уровнем.
type StructureBreak struct {
	Type  Direction
	Level float64
}

// MarketStructure — свинговая структура рынка по одному таймфрейму.
type MarketStructure struct {
	Trend       Direction
	LastBOS     *StructureBreak
	LastCHOCH   *StructureBreak
	HigherHighs []float64
	LowerLows   []float64
}

// Zone — позиция цены относительно equilibrium N-свечного диапазона.
type Zone string

const (
	ZonePremium     Zone = "premium"
	ZoneDiscount    Zone = "discount"
	ZoneEquilibrium Zone = "equilibrium"
)

// PremiumDiscount — диапазон и положение текущей цены в нём.
type PremiumDiscount struct {
	RangeHigh   float64
	RangeLow    float64
	Equilibrium float64
	Zone        Zone
}
