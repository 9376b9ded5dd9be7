// Package engine implements the directional-change (DC) trend state
// machine. A run is one strictly sequential causal pass over the bar
// series: the volatility gate may skip a bar outright, a Down leg
// tracks the low extremum and opens a position when price reverses by
// DCThreshold and the confirmation tier passes, an Up leg trails the
// position with a dynamically shrinking exit band, and any position
// still open after the last bar is force-closed at that bar's close.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/evdnx/godc/config"
	"github.com/evdnx/godc/indicator"
	"github.com/evdnx/godc/logger"
	"github.com/evdnx/godc/metrics"
	"github.com/evdnx/godc/types"
)

// ErrInput marks a rejected bar series (non-monotonic timestamps).
// Empty input is not an error: a run over zero bars is a no-op.
var ErrInput = errors.New("invalid bar series")

// overshootFloor is the initial max-overshoot value; it keeps the exit
// band finite before any favorable excursion has been observed.
const overshootFloor = 1e-4

type trend int

const (
	trendDown trend = iota
	trendUp
)

// runState is the mutable per-run state. It is created once from the
// first bar's low and never shared between runs.
type runState struct {
	trend        trend
	extremum     float64
	maxOvershoot float64
	positionOpen bool
	entryPrice   float64
	paused       bool
}

// Result is the outcome of one run: the ordered trade ledger plus its
// aggregate summary.
type Result struct {
	Trades  []types.Trade
	Summary types.Summary
}

// Engine evaluates one strategy configuration. Engines are cheap; build
// one per run (or per sweep slot) rather than reusing across goroutines.
type Engine struct {
	cfg          config.StrategyConfig
	flags        config.Flags
	volThreshold float64
	log          logger.Logger
	mode         string
}

// New validates the configuration and returns a ready engine. A nil
// logger is replaced with a no-op one.
func New(cfg config.StrategyConfig, log logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		cfg:          cfg,
		flags:        cfg.Mode.Flags(),
		volThreshold: cfg.VolatilityThreshold(),
		log:          log,
		mode:         string(cfg.Mode),
	}, nil
}

// Run executes one backtest pass. Identical bars and config always
// produce an identical result.
func (e *Engine) Run(bars []types.Bar) (Result, error) {
	if len(bars) == 0 {
		return Result{}, nil
	}
	if err := validateSeries(bars); err != nil {
		return Result{}, err
	}

	sets := indicator.Compute(bars, e.cfg)
	st := runState{
		trend:        trendDown,
		extremum:     bars[0].Low,
		maxOvershoot: overshootFloor,
	}
	led := newLedger(e.cfg.Volume)

	for i := range bars {
		e.step(&st, led, i, bars[i], sets[i])
	}

	if st.positionOpen {
		last := len(bars) - 1
		pnl := led.closeAt(bars[last].Close, last, true)
		e.log.Info("forced_close",
			logger.Int("bar", last),
			logger.Float64("price", bars[last].Close),
			logger.Float64("pnl", pnl),
		)
		metrics.TradesClosed.WithLabelValues(e.mode, "forced").Inc()
	}

	metrics.BarsProcessed.WithLabelValues(e.mode).Add(float64(len(bars)))
	metrics.RealizedPnL.WithLabelValues(e.mode).Set(led.total)

	return Result{Trades: led.copyTrades(), Summary: led.summary()}, nil
}

// step processes a single bar.
func (e *Engine) step(st *runState, led *ledger, i int, bar types.Bar, ind indicator.Set) {
	if e.flags.VolatilityFilter {
		if ind.ATR > e.volThreshold {
			// Paused bars are skipped entirely; the extremum is frozen.
			st.paused = true
			e.log.Warn("volatility_pause",
				logger.Int("bar", i),
				logger.Float64("atr", ind.ATR),
				logger.Float64("threshold", e.volThreshold),
			)
			metrics.VolatilityPauses.WithLabelValues(e.mode).Inc()
			return
		}
		st.paused = false
	}

	switch st.trend {
	case trendDown:
		if bar.Low < st.extremum {
			st.extremum = bar.Low
		}
		if bar.High < st.extremum*(1+e.cfg.DCThreshold) {
			return
		}
		if !e.confirmEntry(bar.High, ind) {
			return
		}
		old := st.extremum
		st.entryPrice = bar.High
		st.positionOpen = true
		st.extremum = bar.High
		if old != 0 {
			st.maxOvershoot = math.Max(st.maxOvershoot, (bar.High-old)/old)
		}
		st.trend = trendUp
		led.open(bar.High, i)
		e.log.Info("entry",
			logger.Int("bar", i),
			logger.Float64("price", bar.High),
			logger.Float64("max_overshoot", st.maxOvershoot),
		)
		metrics.TradesOpened.WithLabelValues(e.mode).Inc()

	case trendUp:
		if bar.High > st.extremum {
			st.extremum = bar.High
		}
		if !st.positionOpen {
			return
		}
		if st.entryPrice != 0 {
			overshoot := (bar.High - st.entryPrice) / st.entryPrice
			st.maxOvershoot = math.Max(st.maxOvershoot, overshoot)
		}
		thr := e.exitThreshold(st.maxOvershoot)
		if bar.Low <= st.extremum*(1-thr) {
			pnl := led.closeAt(bar.Low, i, false)
			st.positionOpen = false
			st.trend = trendDown
			st.extremum = bar.Low
			e.log.Info("exit",
				logger.Int("bar", i),
				logger.Float64("price", bar.Low),
				logger.Float64("pnl", pnl),
				logger.Float64("exit_threshold", thr),
			)
			metrics.TradesClosed.WithLabelValues(e.mode, "signal").Inc()
		}
	}
}

// exitThreshold is the trailing-stop band width. It shrinks
// monotonically as the maximum favorable excursion grows.
func (e *Engine) exitThreshold(maxOvershoot float64) float64 {
	return e.cfg.DCThreshold * e.cfg.YValue * math.Exp(-maxOvershoot)
}

// validateSeries rejects bars whose timestamps are not strictly
// ascending. The engine relies on a single causal pass, so out-of-order
// input cannot be repaired here.
func validateSeries(bars []types.Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d (%s) not after bar %d (%s)",
				ErrInput, i, bars[i].Time, i-1, bars[i-1].Time)
		}
	}
	return nil
}
