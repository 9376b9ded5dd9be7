package config

import (
	"errors"
	"fmt"
)

// Mode selects which of the two independent entry filters are active.
// Each mode maps to a fixed {volatility filter, classifier} pair via
// Flags — the mapping is resolved once, not re-checked per bar.
type Mode string

const (
	// FullConfirmation enables both the volatility gate and the strict
	// entry classifier.
	FullConfirmation Mode = "full_confirmation"
	// NoClassifier keeps the volatility gate but confirms entries with
	// the relaxed tier only.
	NoClassifier Mode = "no_classifier"
	// NoVolatilityFilter disables the ATR gate but keeps the strict
	// classifier.
	NoVolatilityFilter Mode = "no_volatility_filter"
	// Baseline disables both filters.
	Baseline Mode = "baseline"
)

// Flags are the two independent switches a Mode expands to.
type Flags struct {
	VolatilityFilter bool
	Classifier       bool
}

var modeFlags = map[Mode]Flags{
	FullConfirmation:   {VolatilityFilter: true, Classifier: true},
	NoClassifier:       {VolatilityFilter: true, Classifier: false},
	NoVolatilityFilter: {VolatilityFilter: false, Classifier: true},
	Baseline:           {VolatilityFilter: false, Classifier: false},
}

// Flags returns the filter switches for the mode. Unknown modes return
// the zero Flags; Validate rejects them before a run starts.
func (m Mode) Flags() Flags { return modeFlags[m] }

func (m Mode) valid() bool {
	_, ok := modeFlags[m]
	return ok
}

// StrategyConfig holds every tunable parameter of a backtest run. It is
// a value type: copy it per run, never mutate it mid-run.
type StrategyConfig struct {
	Mode Mode

	// DCThreshold is the minimum fractional reversal from the tracked
	// extremum that flags a trend change (e.g. 0.001 = 10 pips on a
	// 1.0000 quote).
	DCThreshold float64

	// The volatility gate pauses trading while ATR exceeds
	// VolatilityThresholdPips × PipSize. While a bar is paused the bar
	// is skipped entirely — extremum tracking is frozen too.
	VolatilityThresholdPips float64
	PipSize                 float64

	// Volume is the position size; PnL = (exit − entry) × Volume.
	Volume float64

	// YValue scales the dynamic exit band:
	// exit threshold = DCThreshold · YValue · exp(−max overshoot).
	YValue float64

	RSIOverbought float64

	// ADX floors for the two confirmation tiers. The relaxed floor
	// applies when the classifier is off, the strict one when it is on.
	RelaxedADXFloor float64
	StrictADXFloor  float64

	// Indicator periods.
	ATRPeriod   int
	SMAPeriod   int
	RSIPeriod   int
	MACDFast    int
	MACDSlow    int
	MACDSignal  int
	StochK      int
	StochD      int
	StochSmooth int
	ADXPeriod   int
}

// DefaultConfig returns the canonical EUR/USD daily-bar parameter set.
func DefaultConfig() StrategyConfig {
	return StrategyConfig{
		Mode:                    FullConfirmation,
		DCThreshold:             0.001,
		VolatilityThresholdPips: 50,
		PipSize:                 0.0001,
		Volume:                  10_000,
		YValue:                  0.5,
		RSIOverbought:           70,
		RelaxedADXFloor:         10,
		StrictADXFloor:          25,
		ATRPeriod:               14,
		SMAPeriod:               50,
		RSIPeriod:               14,
		MACDFast:                12,
		MACDSlow:                26,
		MACDSignal:              9,
		StochK:                  9,
		StochD:                  3,
		StochSmooth:             9,
		ADXPeriod:               14,
	}
}

// VolatilityThreshold is the ATR level (in price units) above which the
// gate pauses trading.
func (c *StrategyConfig) VolatilityThreshold() float64 {
	return c.VolatilityThresholdPips * c.PipSize
}

// Validate checks every numeric field and returns the first problem,
// naming the offending parameter so the caller can surface it before a
// run starts.
func (c *StrategyConfig) Validate() error {
	if !c.Mode.valid() {
		return fmt.Errorf("Mode %q is not a known strategy mode", c.Mode)
	}
	if c.DCThreshold <= 0 {
		return fmt.Errorf("DCThreshold (%g) must be positive", c.DCThreshold)
	}
	if c.VolatilityThresholdPips < 0 {
		return fmt.Errorf("VolatilityThresholdPips (%g) cannot be negative", c.VolatilityThresholdPips)
	}
	if c.PipSize <= 0 {
		return fmt.Errorf("PipSize (%g) must be positive", c.PipSize)
	}
	if c.Volume <= 0 {
		return fmt.Errorf("Volume (%g) must be positive", c.Volume)
	}
	if c.YValue <= 0 {
		return fmt.Errorf("YValue (%g) must be positive", c.YValue)
	}
	for name, p := range map[string]int{
		"ATRPeriod":   c.ATRPeriod,
		"SMAPeriod":   c.SMAPeriod,
		"RSIPeriod":   c.RSIPeriod,
		"MACDFast":    c.MACDFast,
		"MACDSlow":    c.MACDSlow,
		"MACDSignal":  c.MACDSignal,
		"StochK":      c.StochK,
		"StochD":      c.StochD,
		"StochSmooth": c.StochSmooth,
		"ADXPeriod":   c.ADXPeriod,
	} {
		if p <= 0 {
			return fmt.Errorf("%s (%d) must be positive", name, p)
		}
	}
	if c.MACDFast >= c.MACDSlow {
		return errors.New("MACDFast must be smaller than MACDSlow")
	}
	return nil
}
