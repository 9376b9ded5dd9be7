package engine

import "github.com/evdnx/godc/indicator"

// confirmEntry evaluates the confirmation tier for a reversal
// candidate. The relaxed tier requires the candidate high above the
// SMA, RSI below the overbought level, and ADX above the relaxed floor.
// The strict tier (classifier enabled) additionally requires the MACD
// line above its signal and %K above %D, and raises the ADX floor.
// Exactly one tier applies per configuration.
//
// SMA warm-up is already resolved by backfill before the engine sees a
// bar; a series too short to ever define the SMA backfills to zero,
// which passes the high > SMA check the same way an undefined SMA
// would in the relaxed tier.
func (e *Engine) confirmEntry(high float64, ind indicator.Set) bool {
	adxFloor := e.cfg.RelaxedADXFloor
	if e.flags.Classifier {
		adxFloor = e.cfg.StrictADXFloor
	}
	if high <= ind.SMA {
		return false
	}
	if ind.RSI >= e.cfg.RSIOverbought {
		return false
	}
	if ind.ADX <= adxFloor {
		return false
	}
	if !e.flags.Classifier {
		return true
	}
	return ind.MACD > ind.MACDSignal && ind.StochK > ind.StochD
}
