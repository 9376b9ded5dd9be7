package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BarsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godc_bars_processed_total",
			Help: "Total number of bars fed through the trend engine (by mode).",
		},
		[]string{"mode"},
	)

	VolatilityPauses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godc_volatility_pauses_total",
			Help: "Bars skipped because ATR exceeded the volatility threshold.",
		},
		[]string{"mode"},
	)

	TradesOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godc_trades_opened_total",
			Help: "Positions opened on a confirmed directional-change reversal.",
		},
		[]string{"mode"},
	)

	TradesClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godc_trades_closed_total",
			Help: "Positions closed, labelled by reason (signal or forced).",
		},
		[]string{"mode", "reason"},
	)

	RealizedPnL = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "godc_realized_pnl",
			Help: "Realized PnL of the most recent completed run (by mode).",
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(BarsProcessed, VolatilityPauses, TradesOpened, TradesClosed, RealizedPnL)
}
