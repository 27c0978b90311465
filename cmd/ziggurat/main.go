package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/ziggurat/internal/cli"
	"codeberg.org/snonux/ziggurat/internal/gui"
	"codeberg.org/snonux/ziggurat/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	// Config file values apply when the flag was not given explicitly
	if !cli.FlagChanged(cmd.Flags(), "provider") && viper.IsSet("translate.provider") {
		flags.Provider = viper.GetString("translate.provider")
	}
	if !cli.FlagChanged(cmd.Flags(), "model") && viper.IsSet("translate.model") {
		flags.Model = viper.GetString("translate.model")
	}
	if !cli.FlagChanged(cmd.Flags(), "batch-size") && viper.IsSet("translate.batch_size") {
		flags.BatchSize = viper.GetInt("translate.batch_size")
	}

	// No input provided - launch GUI mode by default
	if flags.GUIMode || flags.Input == "" {
		return gui.Run(flags)
	}

	if flags.Output == "" {
		return fmt.Errorf("please provide an output path with --output")
	}
	if flags.Target == "" {
		return fmt.Errorf("please provide a target language code with --to")
	}

	// Cancel the run on Ctrl-C instead of leaving a half-written output
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	proc, err := processor.New(flags)
	if err != nil {
		return err
	}
	defer proc.Close()

	return proc.Run(ctx)
}
