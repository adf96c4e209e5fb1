package models

import "time"

// Timeframe — рабочие таймфреймы пайплайна.
type Timeframe string

const (
	TF1m  Timeframe = "1m"
	TF5m  Timeframe = "5m"
	TF15m Timeframe = "15m"
	TF1h  Timeframe = "1h"
)

// AllTimeframes в порядке возрастания бакета.
func AllTimeframes() []Timeframe {
	return []Timeframe{TF1m, TF5m, TF15m, TF1h}
}

// Seconds — размер бакета таймфрейма в секундах.
func (tf Timeframe) Seconds() int64 {
	switch tf {
	case TF1m:
		return 60
	case TF5m:
		return 300
	case TF15m:
		return 900
	case TF1h:
		return 3600
	default:
		return 60
	}
}

// Tick — сырой тик от фида: цена, дельта объёма, unix-секунды.
// Volume всегда ДЕЛЬТА за тик: кумулятивный дневной объём брокера
// нормализуется в дельты на границе (marketdata), ядро про это не знает.
type Tick struct {
	Price  float64
	Volume int64
	Time   int64
}

// Candle — OHLCV-свеча. Time — начало бакета (unix-секунды), всегда
// кратно Timeframe.Seconds(). Подтверждённая свеча иммутабельна,
// живая мутируется агрегатором до финализации.
type Candle struct {
	Time   int64
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
	IsLive bool
}

// Valid — инвариант свечи. Нарушение = баг агрегатора, не рыночный шум.
func (c Candle) Valid() bool {
	body := c.Open
	if c.Close > body {
		body = c.Close
	}
	if c.High < body {
		return false
	}
	body = c.Open
	if c.Close < body {
		body = c.Close
	}
	return c.Low <= body
}

func (c Candle) Bullish() bool { return c.Close > c.Open }
func (c Candle) Bearish() bool { return c.Close < c.Open }

func (c Candle) Start() time.Time { return time.Unix(c.Time, 0) }
