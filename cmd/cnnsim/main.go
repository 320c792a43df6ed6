// SPDX-License-Identifier: MIT

// Command cnnsim runs cellular neural network templates on images.
//
//	cnnsim run EDGE in.png out.png
//	cnnsim run --config pipeline.yaml
//	cnnsim templates --yaml > library.yaml
//	cnnsim blacks out.png
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/cellnet/config"
	"github.com/katalvlaran/cellnet/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at link time.
var version = "dev"

// app carries the state shared by every subcommand.
type app struct {
	cfgPath    string
	logLevel   string
	scheme     string
	saturation string
	display    string
	gifPath    string
	workers    int

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "cnnsim",
		Short: "Cellular neural network simulator",
		Long: `cnnsim evolves images under CNN templates.

Every pixel is a cell coupled to its 3x3 neighbourhood; a template fixes the
coupling. Runs can be chained, each step starting from the previous output.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "cnnsim.yaml", "configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.scheme, "scheme", "", "integration scheme (rk4, euler)")
	pf.StringVar(&a.saturation, "saturation", "", "saturation policy (final, step, none)")
	pf.StringVar(&a.display, "display", "", "display mode (none, terminal, gif)")
	pf.StringVar(&a.gifPath, "gif", "", "animated GIF output (implies --display gif)")
	pf.IntVarP(&a.workers, "workers", "w", 0, "row-band workers per step")

	root.AddCommand(
		newRunCmd(a),
		newTemplatesCmd(a),
		newBlacksCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("scheme") {
		cfg.Engine.Scheme = a.scheme
	}
	if flags.Changed("saturation") {
		cfg.Engine.Saturation = a.saturation
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers = a.workers
	}
	if flags.Changed("gif") {
		cfg.Display.Mode = config.DisplayGIF
		cfg.Display.GIFPath = a.gifPath
	}
	if flags.Changed("display") {
		cfg.Display.Mode = a.display
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	a.logger.Debug("configuration loaded",
		zap.String("path", a.cfgPath),
		zap.String("scheme", cfg.Engine.Scheme),
		zap.Int("workers", cfg.Engine.Workers))

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
