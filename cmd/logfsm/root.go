package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "logfsm",
	Short:        "Structured log line parser",
	Long:         "logfsm parses lines of the form `<timestamp>  key=value, key=\"quoted value\"` into structured records.",
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	viper.SetEnvPrefix("LOGFSM")
	viper.AutomaticEnv()
}

// newLogger returns a text logger writing to w. The level is taken from the
// verbose and debug settings.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case viper.GetBool("debug"):
		level = slog.LevelDebug
	case viper.GetBool("verbose"):
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
