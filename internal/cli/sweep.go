package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"water-ca/internal/sims/water"
	"water-ca/internal/sweep"
)

// SweepOptions holds flags for the sweep command.
type SweepOptions struct {
	*RootOptions
	Set      []string
	Seed     int64
	Seeds    int
	Margins  []int
	Gaps     []int
	Workers  int
	MaxTicks int
	Top      int
}

type sweepView []sweep.Result

func (v sweepView) String() string {
	lines := make([]string, 0, len(v)+1)
	lines = append(lines, fmt.Sprintf("%-8s %-18s %8s %10s %9s %s", "seed", "variant", "ticks", "transfers", "exhausted", "settled"))
	for _, r := range v {
		settled := fmt.Sprint(r.Settled)
		if r.Err != "" {
			settled = "error: " + r.Err
		}
		lines = append(lines, fmt.Sprintf("%-8d %-18s %8d %10d %9d %s", r.Seed, r.Variant, r.Ticks, r.Transfers, r.Exhausted, settled))
	}
	return strings.Join(lines, "\n")
}

// NewSweepCommand creates the sweep command.
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Settle many random worlds in parallel",
		Long: `Run --seeds consecutive seeds for every margin/gap combination on a
worker pool and list how many ticks each world needed to settle.

Example:
  water-cli sweep --seeds 32 --margins 0,5 --gaps 2,3 --set w=64`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(opts, cmd)
		},
	}

	def := water.DefaultConfig()
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "override a base parameter (key=value, repeatable)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", def.Seed, "first seed")
	cmd.Flags().IntVar(&opts.Seeds, "seeds", 8, "number of consecutive seeds")
	cmd.Flags().IntSliceVar(&opts.Margins, "margins", []int{def.Params.Margin}, "potential margins to try")
	cmd.Flags().IntSliceVar(&opts.Gaps, "gaps", []int{def.Params.ThresholdGap}, "threshold gaps to try")
	cmd.Flags().IntVar(&opts.Workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	cmd.Flags().IntVar(&opts.MaxTicks, "max-ticks", 100000, "give up on a world after this many ticks")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "only print the fastest N results (0 prints all)")

	return cmd
}

func runSweep(opts *SweepOptions, cmd *cobra.Command) error {
	if opts.Seeds <= 0 || opts.MaxTicks <= 0 {
		return NewExitError(ExitCommandError, "--seeds and --max-ticks must be positive")
	}
	overrides, err := parseSet(opts.Set)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --set", err)
	}
	base, err := water.ParseConfigMap(overrides)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	var variants []sweep.Variant
	for _, m := range opts.Margins {
		for _, g := range opts.Gaps {
			variants = append(variants, sweep.Variant{Margin: m, ThresholdGap: g})
		}
	}
	seeds := make([]int64, opts.Seeds)
	for i := range seeds {
		seeds[i] = opts.Seed + int64(i)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sw := sweep.Options{
		Base:     base,
		Seeds:    seeds,
		Variants: variants,
		Workers:  opts.Workers,
		MaxTicks: uint64(opts.MaxTicks),
	}
	slog.Info("sweeping", "worlds", len(sw.Jobs()), "workers", opts.Workers, "w", base.Width, "h", base.Height)
	start := time.Now()
	results := sweep.Run(ctx, sw)
	slog.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond))

	failed := 0
	for _, r := range results {
		if !r.Settled {
			failed++
		}
	}
	if opts.Top > 0 && len(results) > opts.Top {
		results = results[:opts.Top]
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := out.Success(sweepView(results)); err != nil {
		return err
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d world(s) did not settle", failed))
	}
	return nil
}
