package types

import "time"

// Bar is a single OHLC candle. Bars are immutable once produced by the
// upstream loader and are always processed in ascending time order.
type Bar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Trade records one round trip (or a still-open position, until the run
// finalizes it). Indices refer to positions in the input bar slice.
type Trade struct {
	EntryPrice float64
	EntryIndex int
	ExitPrice  float64
	ExitIndex  int
	PnL        float64 // 0 until closed
	Closed     bool
	// Forced marks a position flattened at the last bar's close because
	// the data stream ended, as opposed to a signal-triggered exit.
	Forced bool
}

// Summary is the read-only aggregate over a trade ledger.
type Summary struct {
	TotalPnL   float64
	TradeCount int
	Wins       int
	Losses     int
}
