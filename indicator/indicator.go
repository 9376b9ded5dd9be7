// Package indicator derives the per-bar technical series that feed the
// directional-change trend engine. Each series is computed over the
// whole bar slice in one pass (an indicator only ever looks backwards),
// then warm-up gaps are backfilled from the first defined value.
package indicator

import (
	"math"

	"github.com/evdnx/godc/config"
	"github.com/evdnx/godc/types"
)

// Set holds the indicator values for one bar after backfill; every
// field is a defined number.
type Set struct {
	ATR        float64
	SMA        float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	StochK     float64
	StochD     float64
	ADX        float64
}

// Compute builds the full indicator frame for the bar slice, aligned
// index-for-index with bars. It is a pure function of its inputs, so
// parameter sweeps may call it concurrently.
func Compute(bars []types.Bar, cfg config.StrategyConfig) []Set {
	n := len(bars)
	if n == 0 {
		return nil
	}
	closes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
	}

	atr := ATR(bars, cfg.ATRPeriod)
	sma := SMA(closes, cfg.SMAPeriod)
	rsi := RSI(closes, cfg.RSIPeriod)
	macd, signal := MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	stochK, stochD := Stochastic(bars, cfg.StochK, cfg.StochD, cfg.StochSmooth)
	adx := ADX(bars, cfg.ADXPeriod)

	for _, s := range [][]float64{atr, sma, rsi, macd, signal, stochK, stochD, adx} {
		backfill(s)
	}

	sets := make([]Set, n)
	for i := range sets {
		sets[i] = Set{
			ATR:        atr[i],
			SMA:        sma[i],
			RSI:        rsi[i],
			MACD:       macd[i],
			MACDSignal: signal[i],
			StochK:     stochK[i],
			StochD:     stochD[i],
			ADX:        adx[i],
		}
	}
	return sets
}

// trueRange returns the per-bar true range; the first bar has no prior
// close so it degrades to high−low.
func trueRange(bars []types.Bar) []float64 {
	tr := make([]float64, len(bars))
	for i, b := range bars {
		tr[i] = b.High - b.Low
		if i > 0 {
			pc := bars[i-1].Close
			tr[i] = math.Max(tr[i], math.Max(math.Abs(b.High-pc), math.Abs(b.Low-pc)))
		}
	}
	return tr
}

// ATR is the Wilder-smoothed (alpha = 1/period) true range.
func ATR(bars []types.Bar, period int) []float64 {
	return wilder(trueRange(bars), period)
}

// SMA is the trailing arithmetic mean of closes, undefined until
// period bars have been observed.
func SMA(closes []float64, period int) []float64 {
	return rollingMean(closes, period)
}

// RSI is the Wilder-smoothed relative strength index. A zero average
// loss saturates the oscillator at 100.
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	gains := make([]float64, n)
	losses := make([]float64, n)
	gains[0], losses[0] = math.NaN(), math.NaN()
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		}
		if delta < 0 {
			losses[i] = -delta
		}
	}
	avgGain := wilder(gains, period)
	avgLoss := wilder(losses, period)
	out := make([]float64, n)
	for i := range out {
		switch {
		case math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]):
			out[i] = math.NaN()
		case avgLoss[i] == 0:
			out[i] = 100
		default:
			rs := avgGain[i] / avgLoss[i]
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// MACD returns the MACD line (fast EMA − slow EMA) and its signal line,
// both using the span parameterization alpha = 2/(span+1).
func MACD(closes []float64, fast, slow, signal int) (line, sig []float64) {
	emaFast := ewmSpan(closes, fast)
	emaSlow := ewmSpan(closes, slow)
	line = make([]float64, len(closes))
	for i := range line {
		line[i] = emaFast[i] - emaSlow[i]
	}
	sig = ewmSpan(line, signal)
	return line, sig
}

// Stochastic returns smoothed %K and %D. A flat lookback window (zero
// high-low range) pins raw %K at the neutral 50 instead of dividing by
// zero.
func Stochastic(bars []types.Bar, k, d, smoothK int) (pk, pd []float64) {
	n := len(bars)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}
	hh := rollingMax(highs, k)
	ll := rollingMin(lows, k)
	raw := make([]float64, n)
	for i := range raw {
		if math.IsNaN(hh[i]) || math.IsNaN(ll[i]) {
			raw[i] = math.NaN()
			continue
		}
		rng := hh[i] - ll[i]
		if rng == 0 {
			raw[i] = 50
			continue
		}
		raw[i] = 100 * (bars[i].Close - ll[i]) / rng
	}
	pk = rollingMean(raw, smoothK)
	pd = rollingMean(pk, d)
	return pk, pd
}

// ADX is the Wilder-smoothed average directional index. A directional
// movement is counted only when its diff is positive and strictly
// exceeds the opposite diff; a zero DI sum is substituted with 1 before
// the DX division.
func ADX(bars []types.Bar, period int) []float64 {
	n := len(bars)
	atr := wilder(trueRange(bars), period)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := bars[i].High - bars[i-1].High
		down := bars[i-1].Low - bars[i].Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}
	plusS := wilder(plusDM, period)
	minusS := wilder(minusDM, period)
	dx := make([]float64, n)
	for i := range dx {
		var diPlus, diMinus float64
		if atr[i] != 0 {
			diPlus = 100 * plusS[i] / atr[i]
			diMinus = 100 * minusS[i] / atr[i]
		}
		den := diPlus + diMinus
		if den == 0 {
			den = 1
		}
		dx[i] = 100 * math.Abs(diPlus-diMinus) / den
	}
	return wilder(dx, period)
}
