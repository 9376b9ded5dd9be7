package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/evdnx/godc/config"
	"github.com/evdnx/godc/types"
)

// mkBars builds a bar series from (high, low, close) triples with
// ascending daily timestamps.
func mkBars(hlc ...[3]float64) []types.Bar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(hlc))
	for i, v := range hlc {
		bars[i] = types.Bar{
			Time:  start.AddDate(0, 0, i),
			Open:  v[2],
			High:  v[0],
			Low:   v[1],
			Close: v[2],
		}
	}
	return bars
}

// flatBars builds bars where high = low = close = price.
func flatBars(prices ...float64) []types.Bar {
	hlc := make([][3]float64, len(prices))
	for i, p := range prices {
		hlc[i] = [3]float64{p, p, p}
	}
	return mkBars(hlc...)
}

func TestSMAWarmupAndValues(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4}, 2)
	require.True(t, math.IsNaN(got[0]), "SMA must be undefined before the window fills")
	require.InDelta(t, 1.5, got[1], 1e-12)
	require.InDelta(t, 2.5, got[2], 1e-12)
	require.InDelta(t, 3.5, got[3], 1e-12)
}

func TestATRFirstBarAndRecurrence(t *testing.T) {
	bars := mkBars(
		[3]float64{2, 1, 1.5},
		[3]float64{2.5, 1.4, 2},
	)
	// TR0 = high-low = 1; TR1 = max(1.1, |2.5-1.5|, |1.4-1.5|) = 1.1.
	got := ATR(bars, 2)
	require.InDelta(t, 1.0, got[0], 1e-12)
	require.InDelta(t, 0.5*1.1+0.5*1.0, got[1], 1e-12)
}

func TestRSISaturatesWithoutLosses(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := RSI(closes, 3)
	require.True(t, math.IsNaN(got[0]))
	for i := 1; i < len(got); i++ {
		require.InDelta(t, 100.0, got[i], 1e-12, "index %d", i)
	}
}

func TestRSIHandValues(t *testing.T) {
	// Period 1 collapses the Wilder average to the latest change.
	got := RSI([]float64{1, 2, 1.5, 1.6}, 1)
	require.True(t, math.IsNaN(got[0]))
	require.InDelta(t, 100.0, got[1], 1e-12) // pure gain
	require.InDelta(t, 0.0, got[2], 1e-12)   // pure loss
	require.InDelta(t, 100.0, got[3], 1e-12) // pure gain again
}

func TestMACDFlatSeriesIsZero(t *testing.T) {
	closes := []float64{5, 5, 5, 5, 5, 5}
	line, sig := MACD(closes, 2, 4, 3)
	for i := range closes {
		require.InDelta(t, 0.0, line[i], 1e-12)
		require.InDelta(t, 0.0, sig[i], 1e-12)
	}
}

func TestMACDRisingSeriesLeadsSignal(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	line, sig := MACD(closes, 12, 26, 9)
	last := len(closes) - 1
	require.Greater(t, line[last], 0.0, "fast EMA must exceed slow EMA in an uptrend")
	require.Greater(t, line[last], sig[last], "MACD line must lead its signal in an uptrend")
}

func TestStochasticFlatWindowIsNeutral(t *testing.T) {
	bars := flatBars(3, 3, 3, 3, 3, 3)
	pk, pd := Stochastic(bars, 3, 2, 2)
	require.InDelta(t, 50.0, pk[3], 1e-12)
	require.InDelta(t, 50.0, pd[4], 1e-12)
}

func TestStochasticHandValue(t *testing.T) {
	bars := mkBars(
		[3]float64{2, 1, 1.5},
		[3]float64{3, 2, 2.5},
	)
	// k=2, smooth=1, d=1: %K = 100·(2.5−1)/(3−1) = 75 at the second bar.
	pk, _ := Stochastic(bars, 2, 1, 1)
	require.True(t, math.IsNaN(pk[0]))
	require.InDelta(t, 75.0, pk[1], 1e-12)
}

func TestADXSaturatesInCleanTrend(t *testing.T) {
	// Strictly rising highs and lows with period 1: +DM only, so
	// DX = 100 from the second bar on.
	bars := mkBars(
		[3]float64{2, 1, 1.5},
		[3]float64{3, 2, 2.5},
		[3]float64{4, 3, 3.5},
		[3]float64{5, 4, 4.5},
	)
	got := ADX(bars, 1)
	require.InDelta(t, 0.0, got[0], 1e-12)
	require.InDelta(t, 100.0, got[2], 1e-12)
	require.InDelta(t, 100.0, got[3], 1e-12)
}

func TestADXFlatSeriesIsZero(t *testing.T) {
	got := ADX(flatBars(2, 2, 2, 2, 2), 3)
	for i, v := range got {
		require.InDelta(t, 0.0, v, 1e-12, "index %d", i)
	}
}

func TestComputeBackfillsWarmup(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SMAPeriod = 3
	bars := flatBars(1, 1.1, 1.2, 1.3, 1.4)
	sets := Compute(bars, cfg)
	require.Len(t, sets, len(bars))

	// SMA is first defined at index 2; earlier bars carry that value.
	require.InDelta(t, sets[2].SMA, sets[0].SMA, 1e-12)
	require.InDelta(t, sets[2].SMA, sets[1].SMA, 1e-12)

	for i, s := range sets {
		for name, v := range map[string]float64{
			"ATR": s.ATR, "SMA": s.SMA, "RSI": s.RSI,
			"MACD": s.MACD, "MACDSignal": s.MACDSignal,
			"StochK": s.StochK, "StochD": s.StochD, "ADX": s.ADX,
		} {
			require.False(t, math.IsNaN(v), "%s undefined at bar %d after backfill", name, i)
		}
	}
}

func TestComputeEmptyInput(t *testing.T) {
	require.Nil(t, Compute(nil, config.DefaultConfig()))
}
