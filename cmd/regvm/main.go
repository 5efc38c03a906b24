// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ezrec/regvm/emulator"
	"github.com/ezrec/regvm/translate"
	"github.com/ezrec/regvm/vm"
)

var f = translate.From

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "TOML configuration file")
	rootCmd.Flags().StringP("iterations", "n", "", "Loop count expression")
	rootCmd.Flags().IntP("processors", "p", 0, "Number of processors")
	rootCmd.Flags().BoolP("verbose", "v", false, "Verbose mode")
	rootCmd.Flags().Bool("no-dump", false, "Do not print processor state")
}

// rootCmd runs the counting loop on one or more processors.
var rootCmd = &cobra.Command{
	Use:          "regvm",
	Short:        "Run the counting loop on the register VM.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := LoadConfig(path)
		if err != nil {
			return
		}

		if cmd.Flags().Changed("iterations") {
			cfg.Iterations, _ = cmd.Flags().GetString("iterations")
		}
		if cmd.Flags().Changed("processors") {
			cfg.Processors, _ = cmd.Flags().GetInt("processors")
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
		}
		if cmd.Flags().Changed("no-dump") {
			noDump, _ := cmd.Flags().GetBool("no-dump")
			cfg.Dump = !noDump
		}

		logger, err := newLogger(cfg.Verbose)
		if err != nil {
			return
		}
		defer logger.Sync()
		vm.SetLogger(logger)

		return run(cmd, cfg)
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	conf := zap.NewProductionConfig()
	conf.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return conf.Build()
}

func run(cmd *cobra.Command, cfg Config) (err error) {
	if cfg.Processors < 1 {
		return errors.New(f("processors must be at least 1"))
	}

	emu := emulator.NewEmulator()
	emu.Verbose = cfg.Verbose
	emu.Processors = cfg.Processors
	if cfg.Dump {
		emu.Dump = cmd.OutOrStdout()
	}

	limit, err := emu.Eval(cfg.Iterations)
	if err != nil {
		return
	}
	if limit == 0 {
		return errors.New(f("iterations must be at least 1"))
	}

	emu.Program, err = emulator.CounterProgram(limit)
	if err != nil {
		return
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		return
	}

	_, err = translate.Fprintf(cmd.OutOrStdout(), "%d processors, %d ticks\n", len(emu.Handles()), emu.Ticks())

	return
}
