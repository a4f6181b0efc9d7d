package main

import (
	"github.com/spf13/cobra"

	"fnol/internal/report"
)

var configFlags struct {
	format string
	schema bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules (defaults plus any --config overrides)",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	f := configCmd.Flags()
	f.StringVar(&configFlags.format, "format", "yaml", "Output format: yaml or json")
	f.BoolVar(&configFlags.schema, "schema", false, "Print the JSON Schema of the result record instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if configFlags.schema {
		_, err := cmd.OutOrStdout().Write(report.Schema())
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := cfg.Encode(configFlags.format)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
