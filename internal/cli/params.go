package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"water-ca/internal/core"
	"water-ca/internal/sims/water"
)

// ParamsOptions holds flags for the params command.
type ParamsOptions struct {
	*RootOptions
	World WorldOptions
}

type paramsView core.ParameterSnapshot

func (p paramsView) String() string {
	var b strings.Builder
	for i, g := range p.Groups {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s]\n", g.Name)
		for _, param := range g.Params {
			fmt.Fprintf(&b, "%-16s %-8s %s\n", param.Key, param.Type, param.Value)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// NewParamsCommand creates the params command.
func NewParamsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParamsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "params [scenario.yaml]",
		Short: "Show the parameters a world would run with",
		Long: `Print the resolved engine parameters after applying a scenario or
--set overrides. Keys listed here are the ones --set accepts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.World.build(cmd, args)
			if err != nil {
				return err
			}
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			snap := e.Parameters()
			if out.JSON() {
				return out.Success(snap)
			}
			return out.Success(paramsView(snap))
		},
	}

	opts.World.bind(cmd)
	return cmd
}

// modeInfo describes one stepping mode.
type modeInfo struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

var modeSummaries = map[water.Mode]string{
	water.ModeRealtime:   "one full pass over the candidates per tick",
	water.ModeResolution: "one target resolved or abandoned per tick",
	water.ModeStep:       "one state transition per tick",
}

type modesView []modeInfo

func (m modesView) String() string {
	lines := make([]string, len(m))
	for i, info := range m {
		lines[i] = fmt.Sprintf("%-10s %s", info.Name, info.Summary)
	}
	return strings.Join(lines, "\n")
}

// NewModesCommand creates the modes command.
func NewModesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "modes",
		Short:        "List the stepping modes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := water.Modes()
			view := make(modesView, len(modes))
			for i, m := range modes {
				view[i] = modeInfo{Name: m.String(), Summary: modeSummaries[m]}
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Success(view)
		},
	}
}
