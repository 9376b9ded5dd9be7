package engine

import "github.com/evdnx/godc/types"

// ledger is the append-only trade record for one run. At most one
// trade is open at any time; the engine closes the current trade before
// opening the next.
type ledger struct {
	volume float64
	trades []types.Trade
	total  float64
	wins   int
	losses int
}

func newLedger(volume float64) *ledger {
	return &ledger{volume: volume}
}

// open appends a new open trade at the given entry.
func (l *ledger) open(price float64, idx int) {
	l.trades = append(l.trades, types.Trade{
		EntryPrice: price,
		EntryIndex: idx,
	})
}

// closeAt settles the most recent trade and returns its realized pnl.
func (l *ledger) closeAt(price float64, idx int, forced bool) float64 {
	t := &l.trades[len(l.trades)-1]
	t.ExitPrice = price
	t.ExitIndex = idx
	t.PnL = (price - t.EntryPrice) * l.volume
	t.Closed = true
	t.Forced = forced
	l.total += t.PnL
	switch {
	case t.PnL > 0:
		l.wins++
	case t.PnL < 0:
		l.losses++
	}
	return t.PnL
}

func (l *ledger) summary() types.Summary {
	return types.Summary{
		TotalPnL:   l.total,
		TradeCount: len(l.trades),
		Wins:       l.wins,
		Losses:     l.losses,
	}
}

// copyTrades returns the ledger contents detached from internal state.
func (l *ledger) copyTrades() []types.Trade {
	if len(l.trades) == 0 {
		return nil
	}
	out := make([]types.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}
