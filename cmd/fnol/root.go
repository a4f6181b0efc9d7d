// fnol reads first notice of loss claim documents, extracts the claim
// fields, checks the mandatory ones and recommends a processing route.
//
// Usage:
//
//	fnol process <file> [-o result.json]
//	fnol batch <file|dir>... [--parallel N] [--format ascii|markdown|json] [--xlsx out.xlsx]
//	fnol calibrate [--scenario name]
//	fnol config [--format yaml|json] [--schema]
//	fnol serve
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fnol/internal/config"
	"fnol/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// settings holds the FNOL_* environment, loaded before any subcommand runs.
var settings config.Settings

var rootCmd = &cobra.Command{
	Use:   "fnol",
	Short: "Extract, validate and route FNOL claim documents",
	Long: "fnol reads ACORD-style first notice of loss forms (PDF or text),\n" +
		"extracts the claim fields, reports missing mandatory fields and\n" +
		"recommends a processing route with a one-sentence reason.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Rules file (YAML or JSON) overlaid on the built-in defaults (default: $FNOL_CONFIG)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $FNOL_LOG_LEVEL or info)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json (default: $FNOL_LOG_FORMAT or text)")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func setup(cmd *cobra.Command, _ []string) error {
	settings = config.LoadEnv()
	if rootFlags.configPath != "" {
		settings.ConfigPath = rootFlags.configPath
	}
	if rootFlags.logLevel != "" {
		settings.LogLevel = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		settings.LogFormat = rootFlags.logFormat
	}
	return logging.Setup(settings.LogLevel, settings.LogFormat, cmd.ErrOrStderr())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
