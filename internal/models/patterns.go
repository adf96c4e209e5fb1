package models

// Direction паттерна/сигнала.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
	DirectionNeutral Direction = "neutral"
)

// FairValueGap — трёхсвечный имбаланс. Top/Bottom — границы гэпа,
// CandleIndex — индекс третьей свечи паттерна в переданном срезе.
// Не персистится: пересчитывается на каждом проходе анализа.
type FairValueGap struct {
	Type        Direction
	Top         float64
	Bottom      float64
	CandleIndex int
	IsFilled    bool
}

// Contains — цена внутри непокрытого гэпа.
func (g FairValueGap) Contains(price float64) bool {
	return price >= g.Bottom && price <= g.Top
}

// OrderBlock — последняя контртрендовая свеча перед импульсом.
// Strength in [0..1]: смесь объёмного ratio и "уважения" уровня.
type OrderBlock struct {
	Type        Direction
	Price       float64
	CandleIndex int
	Strength    float64
}

// LiquidityGrab — свип экстремума окна с возвратом в диапазон.
type LiquidityGrab struct {
	Type             Direction
	SweepLevel       float64 // снятый экстремум
	ExtremePrice     float64 // хвост свипа (low/high свечи-свипа)
	CandleIndex      int
	Confidence       float64
	ReversalStrength float64 // доля отката в теле свип-свечи, 0..1
}

// BreakerBlock — пробитый и затем отвергнутый с другой стороны уровень.
type BreakerBlock struct {
	Type        Direction
	Level       float64
	Touches     int
	CandleIndex int
	Confidence  float64
}

// Absorption — поглощение потока: аномальный объём при сжатом теле.
type Absorption struct {
	Type        Direction
	Price       float64
	CandleIndex int
	VolumeRatio float64
}

// LiquidityZone — кластер равных хаёв/лоёв (зона ликвидности).
type LiquidityZone struct {
	Level   float64
	Touches int
	IsHigh  bool // true = equal highs, false = equal lows
	Swept   bool
}
