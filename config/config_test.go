package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateNamesTheParameter(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*StrategyConfig)
		want   string
	}{
		{"zero dc threshold", func(c *StrategyConfig) { c.DCThreshold = 0 }, "DCThreshold"},
		{"negative volatility pips", func(c *StrategyConfig) { c.VolatilityThresholdPips = -1 }, "VolatilityThresholdPips"},
		{"zero pip size", func(c *StrategyConfig) { c.PipSize = 0 }, "PipSize"},
		{"zero volume", func(c *StrategyConfig) { c.Volume = 0 }, "Volume"},
		{"negative y value", func(c *StrategyConfig) { c.YValue = -0.5 }, "YValue"},
		{"zero atr period", func(c *StrategyConfig) { c.ATRPeriod = 0 }, "ATRPeriod"},
		{"negative rsi period", func(c *StrategyConfig) { c.RSIPeriod = -14 }, "RSIPeriod"},
		{"macd fast not below slow", func(c *StrategyConfig) { c.MACDFast = 26 }, "MACDFast"},
		{"unknown mode", func(c *StrategyConfig) { c.Mode = "turbo" }, "Mode"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not name %s", tc.name, err, tc.want)
		}
	}
}

func TestModeFlags(t *testing.T) {
	cases := []struct {
		mode Mode
		want Flags
	}{
		{FullConfirmation, Flags{VolatilityFilter: true, Classifier: true}},
		{NoClassifier, Flags{VolatilityFilter: true, Classifier: false}},
		{NoVolatilityFilter, Flags{VolatilityFilter: false, Classifier: true}},
		{Baseline, Flags{VolatilityFilter: false, Classifier: false}},
	}
	for _, tc := range cases {
		if got := tc.mode.Flags(); got != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.mode, got, tc.want)
		}
	}
}

func TestVolatilityThresholdDerivation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VolatilityThresholdPips = 50
	cfg.PipSize = 0.0001
	if got := cfg.VolatilityThreshold(); got != 0.005 {
		t.Fatalf("expected 0.005, got %g", got)
	}
}
