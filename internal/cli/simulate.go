package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	cnc "cnc_simulator"
	"cnc_simulator/internal/config"
	"cnc_simulator/internal/simulation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type simulateOptions struct {
	ticks  int
	dt     float64
	seed   uint64
	format string
}

func buildSimulateCommand(configDir *string) *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Step the engine offline and print one snapshot per tick",
		Long: "Runs the simulation without the database or HTTP server. " +
			"JSON output is one snapshot per line; YAML output is one document per snapshot.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = cfg.Simulation.Seed
			}
			return simulate(cmd.OutOrStdout(), cfg.EngineConfig(), opts)
		},
	}
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", 60, "number of ticks to run")
	cmd.Flags().Float64Var(&opts.dt, "dt", 1, "simulated seconds per tick")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed, 0 seeds from the clock (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "output format: json or yaml")
	return cmd
}

// snapshotEncoder writes one status per call.
type snapshotEncoder interface {
	Encode(v any) error
}

func newSnapshotEncoder(w io.Writer, format string) (snapshotEncoder, func() error, error) {
	switch strings.ToLower(format) {
	case formatJSON:
		return json.NewEncoder(w), func() error { return nil }, nil
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc, enc.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func simulate(w io.Writer, cfg simulation.Config, opts simulateOptions) error {
	if opts.ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", opts.ticks)
	}
	if opts.dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", opts.dt)
	}
	enc, closeEnc, err := newSnapshotEncoder(w, opts.format)
	if err != nil {
		return err
	}

	engine := simulation.New(cfg, randomSource(opts.seed))
	for i := 0; i < opts.ticks; i++ {
		snap, err := engine.Update(opts.dt)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if err := enc.Encode(cnc.StatusFromSnapshot(snap)); err != nil {
			return fmt.Errorf("encode tick %d: %w", i, err)
		}
	}
	return closeEnc()
}
