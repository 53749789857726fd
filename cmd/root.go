package cmd

import (
	"fmt"
	"os"

	"cellular/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cellular",
	Short: "Cellular plane service",
	Long: `Cellular loads its plane configuration and other named resources from an
ordered search path (local directory, embedded files, object storage, database)
and decodes them as JSON or Recon.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCodeError carries a process exit code without logging a failure.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if exit, ok := err.(exitCodeError); ok {
			os.Exit(exit.code)
		}

		// Console format and debug level give readable ISO8601 timestamps for CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
