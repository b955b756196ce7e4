// Command qaoatn evaluates QAOA expectation values on tree-shaped graphs by
// contracting their tree tensor networks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zeta1999/quantum-optimization/gate"
	"github.com/zeta1999/quantum-optimization/internal/config"
	"github.com/zeta1999/quantum-optimization/qaoa"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state every subcommand shares once flags are parsed.
type app struct {
	configPath string
	outputPath string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
	cache  *gate.Cache
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "qaoatn",
		Short: "Contract QAOA tree tensor networks",
		Long: `qaoatn builds the tensor network of a QAOA circuit on the tree
neighbourhood of a regular graph and contracts it to expectation values.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (defaults when missing)")
	root.PersistentFlags().StringVarP(&a.outputPath, "output", "o", "", "write the JSON result to this file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(newExpectCmd(a), newSweepCmd(a), newStacksCmd(a))
	return root
}

func (a *app) setup() error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.CreateLogger(a.debug)
	if err != nil {
		return err
	}

	cache, err := gate.NewCache(cfg.GateCacheSize)
	if err != nil {
		return err
	}

	a.cfg, a.logger, a.cache = cfg, logger, cache
	return nil
}

func (a *app) engine() *qaoa.Engine {
	return qaoa.NewEngine(
		qaoa.WithLogger(a.logger),
		qaoa.WithGateCache(a.cache),
	)
}
