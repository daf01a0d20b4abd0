// Package sweep runs many seeded worlds in parallel and reports how long
// each takes to reach a fixed point.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"water-ca/internal/core"
	"water-ca/internal/sims/water"
)

// Variant is one parameter combination to try.
type Variant struct {
	Margin       int `json:"margin"`
	ThresholdGap int `json:"threshold_gap"`
}

func (v Variant) String() string {
	return fmt.Sprintf("margin=%d gap=%d", v.Margin, v.ThresholdGap)
}

// Job is a single world to run.
type Job struct {
	Seed    int64
	Variant Variant
}

// Result summarises one finished job.
type Result struct {
	Seed      int64   `json:"seed"`
	Variant   Variant `json:"variant"`
	Ticks     uint64  `json:"ticks"`
	Transfers uint64  `json:"transfers"`
	Exhausted uint64  `json:"exhausted"`
	Water     int     `json:"water"`
	Settled   bool    `json:"settled"`
	Err       string  `json:"error,omitempty"`
}

// Options controls a sweep.
type Options struct {
	Base     water.Config
	Seeds    []int64
	Variants []Variant
	Workers  int
	MaxTicks uint64
}

// Jobs expands the seed and variant lists into the full job list.
func (o Options) Jobs() []Job {
	variants := o.Variants
	if len(variants) == 0 {
		variants = []Variant{{Margin: o.Base.Params.Margin, ThresholdGap: o.Base.Params.ThresholdGap}}
	}
	jobs := make([]Job, 0, len(o.Seeds)*len(variants))
	for _, v := range variants {
		for _, seed := range o.Seeds {
			jobs = append(jobs, Job{Seed: seed, Variant: v})
		}
	}
	return jobs
}

// Run executes every job on a worker pool. Results are sorted by ticks to
// settle, unsettled runs last. A cancelled context stops handing out jobs
// and returns what finished.
func Run(ctx context.Context, opts Options) []Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan Job)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- runJob(opts.Base, job, opts.MaxTicks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, job := range opts.Jobs() {
			select {
			case jobs <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []Result
	for res := range results {
		all = append(all, res)
	}
	Sort(all)
	return all
}

// Sort orders results by settled first, then ticks, then seed.
func Sort(all []Result) {
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Settled != b.Settled {
			return a.Settled
		}
		if a.Ticks != b.Ticks {
			return a.Ticks < b.Ticks
		}
		if a.Seed != b.Seed {
			return a.Seed < b.Seed
		}
		return a.Variant.String() < b.Variant.String()
	})
}

func runJob(base water.Config, job Job, maxTicks uint64) Result {
	cfg := base
	cfg.Seed = job.Seed
	cfg.Params.Margin = job.Variant.Margin
	cfg.Params.ThresholdGap = job.Variant.ThresholdGap
	res := Result{Seed: job.Seed, Variant: job.Variant}

	sim, err := core.New("water", cfg.Map())
	if err != nil {
		res.Err = err.Error()
		return res
	}
	e := sim.(*water.Engine)
	res.Water = e.TotalWater()
	for !e.Settled() && e.Stats().Ticks < maxTicks {
		e.Advance()
	}
	if got := e.TotalWater(); got != res.Water {
		panic(fmt.Sprintf("sweep: water not conserved for seed %d: %d -> %d", job.Seed, res.Water, got))
	}
	stats := e.Stats()
	res.Ticks = stats.Ticks
	res.Transfers = stats.Transfers
	res.Exhausted = stats.Exhausted
	res.Settled = e.Settled()
	return res
}
