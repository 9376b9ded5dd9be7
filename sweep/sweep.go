// Package sweep runs independent strategy configurations over the same
// bar series in parallel. Runs are side-effect free with respect to one
// another (each gets its own engine and state), so no locking beyond
// the worker pool itself is needed.
package sweep

import (
	"runtime"
	"sync"

	"github.com/evdnx/godc/config"
	"github.com/evdnx/godc/engine"
	"github.com/evdnx/godc/logger"
	"github.com/evdnx/godc/types"
)

// Outcome pairs a configuration with its run result (or error).
type Outcome struct {
	Config config.StrategyConfig
	Result engine.Result
	Err    error
}

// Run executes every config over bars on at most workers goroutines and
// returns outcomes in the same order as cfgs. workers <= 0 means one
// worker per CPU. The logger is shared; pass logger.NewNop() to keep
// sweeps quiet.
func Run(bars []types.Bar, cfgs []config.StrategyConfig, workers int, log logger.Logger) []Outcome {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.NewNop()
	}

	out := make([]Outcome, len(cfgs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = runOne(bars, cfgs[i], log)
			}
		}()
	}
	for i := range cfgs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

func runOne(bars []types.Bar, cfg config.StrategyConfig, log logger.Logger) Outcome {
	o := Outcome{Config: cfg}
	eng, err := engine.New(cfg, log)
	if err != nil {
		o.Err = err
		return o
	}
	o.Result, o.Err = eng.Run(bars)
	return o
}
