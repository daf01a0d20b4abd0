package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"water-ca/internal/core"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	World  WorldOptions
	TPS    int
	Frames int
}

// Frame is one printed tick of the watch command.
type Frame struct {
	Tick    uint64   `json:"tick"`
	Water   int      `json:"water"`
	Settled bool     `json:"settled"`
	Rows    []string `json:"rows"`
}

func (f Frame) String() string {
	return fmt.Sprintf("tick %d water=%d\n%s\n", f.Tick, f.Water, strings.Join(f.Rows, "\n"))
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch [scenario.yaml]",
		Short: "Print the grid after every tick at a fixed rate",
		Long: `Advance a world at --tps ticks per second and print every frame.

Stops after --frames frames, once the world settles when --frames is 0,
or on interrupt.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchWorld(opts, cmd, args)
		},
	}

	opts.World.bind(cmd)
	cmd.Flags().IntVar(&opts.TPS, "tps", 10, "ticks per second")
	cmd.Flags().IntVar(&opts.Frames, "frames", 0, "number of frames to print (0 runs until settled)")

	return cmd
}

func watchWorld(opts *WatchOptions, cmd *cobra.Command, args []string) error {
	e, err := opts.World.build(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	step := core.NewFixedStep(opts.TPS)
	timer := time.NewTimer(0)
	defer timer.Stop()

	for frames := 0; opts.Frames <= 0 || frames < opts.Frames; {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		if step.ShouldStepAt(time.Now()) {
			e.Advance()
			frames++
			frame := Frame{Tick: e.Stats().Ticks, Water: e.TotalWater(), Settled: e.Settled(), Rows: textRows(e)}
			if err := out.Success(frame); err != nil {
				return err
			}
			if opts.Frames <= 0 && frame.Settled {
				return nil
			}
		}
		timer.Reset(step.Due(time.Now()))
	}
	return nil
}
