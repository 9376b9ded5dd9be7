// godc runs the directional-change trend backtest over a normalized bar
// CSV, once per ablation mode, and logs each mode's summary. The file
// must already be in canonical form (timestamp,open,high,low,close,
// ascending time order) — cleaning messy exports is an upstream concern.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/evdnx/godc/config"
	"github.com/evdnx/godc/logger"
	"github.com/evdnx/godc/sweep"
	"github.com/evdnx/godc/types"
)

func main() {
	_ = godotenv.Load() // optional .env, same keys as the environment

	barsPath := flag.String("bars", os.Getenv("GODC_BARS"), "path to normalized bar CSV")
	workers := flag.Int("workers", 0, "sweep workers (0 = one per CPU)")
	flag.Parse()

	log, err := logger.NewZapLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	if *barsPath == "" {
		log.Error("no bar file given (set -bars or GODC_BARS)")
		os.Exit(1)
	}
	bars, err := loadBars(*barsPath)
	if err != nil {
		log.Error("load_bars_failed", logger.String("path", *barsPath), logger.Err(err))
		os.Exit(1)
	}
	log.Info("bars_loaded", logger.String("path", *barsPath), logger.Int("count", len(bars)))

	base := configFromEnv()
	modes := []config.Mode{
		config.FullConfirmation,
		config.NoClassifier,
		config.NoVolatilityFilter,
		config.Baseline,
	}
	cfgs := make([]config.StrategyConfig, len(modes))
	for i, m := range modes {
		cfgs[i] = base
		cfgs[i].Mode = m
	}

	failed := false
	for _, o := range sweep.Run(bars, cfgs, *workers, log) {
		if o.Err != nil {
			log.Error("run_failed", logger.String("mode", string(o.Config.Mode)), logger.Err(o.Err))
			failed = true
			continue
		}
		s := o.Result.Summary
		log.Info("run_summary",
			logger.String("mode", string(o.Config.Mode)),
			logger.Int("trades", s.TradeCount),
			logger.Int("wins", s.Wins),
			logger.Int("losses", s.Losses),
			logger.Float64("total_pnl", s.TotalPnL),
		)
	}
	if failed {
		os.Exit(1)
	}
}

// configFromEnv starts from the defaults and applies GODC_* overrides.
func configFromEnv() config.StrategyConfig {
	cfg := config.DefaultConfig()
	cfg.DCThreshold = envFloat("GODC_DC_THRESHOLD", cfg.DCThreshold)
	cfg.VolatilityThresholdPips = envFloat("GODC_VOLATILITY_PIPS", cfg.VolatilityThresholdPips)
	cfg.PipSize = envFloat("GODC_PIP_SIZE", cfg.PipSize)
	cfg.Volume = envFloat("GODC_VOLUME", cfg.Volume)
	cfg.YValue = envFloat("GODC_Y_VALUE", cfg.YValue)
	cfg.RSIOverbought = envFloat("GODC_RSI_OVERBOUGHT", cfg.RSIOverbought)
	cfg.RelaxedADXFloor = envFloat("GODC_RELAXED_ADX_FLOOR", cfg.RelaxedADXFloor)
	cfg.StrictADXFloor = envFloat("GODC_STRICT_ADX_FLOOR", cfg.StrictADXFloor)
	cfg.ATRPeriod = envInt("GODC_ATR_PERIOD", cfg.ATRPeriod)
	cfg.SMAPeriod = envInt("GODC_SMA_PERIOD", cfg.SMAPeriod)
	cfg.RSIPeriod = envInt("GODC_RSI_PERIOD", cfg.RSIPeriod)
	return cfg
}

func envFloat(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", key, err)
		os.Exit(1)
	}
	return v
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", key, err)
		os.Exit(1)
	}
	return v
}

// loadBars reads a canonical five-column bar CSV. A single header row
// is tolerated; anything else malformed is an error.
func loadBars(path string) ([]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 5
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var bars []types.Bar
	for i, rec := range records {
		ts, err := parseTime(rec[0])
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		b := types.Bar{Time: ts}
		for j, dst := range []*float64{&b.Open, &b.High, &b.Low, &b.Close} {
			v, err := strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i+1, j+2, err)
			}
			*dst = v
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
