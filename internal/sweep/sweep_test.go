package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-ca/internal/sims/water"
)

func smallWorld() water.Config {
	cfg := water.DefaultConfig()
	cfg.Width, cfg.Height = 12, 8
	return cfg
}

func TestJobsDefaultsToBaseVariant(t *testing.T) {
	opts := Options{Base: smallWorld(), Seeds: []int64{1, 2}}
	jobs := opts.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, Variant{Margin: 5, ThresholdGap: 2}, jobs[0].Variant)
	assert.Equal(t, int64(2), jobs[1].Seed)
}

func TestJobsCrossProduct(t *testing.T) {
	opts := Options{
		Base:     smallWorld(),
		Seeds:    []int64{1, 2, 3},
		Variants: []Variant{{Margin: 0, ThresholdGap: 2}, {Margin: 5, ThresholdGap: 3}},
	}
	assert.Len(t, opts.Jobs(), 6)
}

func TestRunSettlesEveryWorld(t *testing.T) {
	opts := Options{
		Base:     smallWorld(),
		Seeds:    []int64{1, 2, 3, 4},
		Variants: []Variant{{Margin: 5, ThresholdGap: 2}, {Margin: 0, ThresholdGap: 3}},
		Workers:  3,
		MaxTicks: 10000,
	}
	results := Run(context.Background(), opts)
	require.Len(t, results, 8)
	for _, res := range results {
		assert.Empty(t, res.Err)
		assert.True(t, res.Settled, "seed %d %s", res.Seed, res.Variant)
	}
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Ticks, results[i].Ticks)
	}
}

func TestRunMatchesSequentialRun(t *testing.T) {
	base := smallWorld()
	opts := Options{Base: base, Seeds: []int64{7}, MaxTicks: 10000}
	results := Run(context.Background(), opts)
	require.Len(t, results, 1)

	e, err := water.NewEngine(base)
	require.NoError(t, err)
	e.Reset(7)
	for !e.Settled() {
		e.Advance()
	}
	assert.Equal(t, e.Stats().Ticks, results[0].Ticks)
	assert.Equal(t, e.Stats().Transfers, results[0].Transfers)
}

func TestRunReportsInvalidVariant(t *testing.T) {
	opts := Options{
		Base:     smallWorld(),
		Seeds:    []int64{1},
		Variants: []Variant{{Margin: -1, ThresholdGap: 2}},
		MaxTicks: 10,
	}
	results := Run(context.Background(), opts)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Err)
	assert.False(t, results[0].Settled)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := Options{Base: smallWorld(), Seeds: []int64{1, 2, 3}, Workers: 1, MaxTicks: 100}
	assert.LessOrEqual(t, len(Run(ctx, opts)), 3)
}

func TestSortPutsUnsettledLast(t *testing.T) {
	all := []Result{
		{Seed: 1, Ticks: 5, Settled: false},
		{Seed: 2, Ticks: 9, Settled: true},
		{Seed: 3, Ticks: 4, Settled: true},
	}
	Sort(all)
	assert.Equal(t, []int64{3, 2, 1}, []int64{all[0].Seed, all[1].Seed, all[2].Seed})
}
