package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fnol/internal/report"
)

var processFlags struct {
	output string
}

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Process one claim document and print its result as JSON",
	Long: `Process reads a PDF or plain-text claim document, extracts the claim
fields and prints the result record (extractedFields, missingFields,
recommendedRoute, reasoning) as JSON. With -o the record is also written
to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringVarP(&processFlags.output, "output", "o", "", "Also write the JSON result to this path")
}

func runProcess(cmd *cobra.Command, args []string) error {
	p, _, err := buildPipeline()
	if err != nil {
		return err
	}
	res, err := p.Process(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	data, err := report.Encode(res)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if processFlags.output != "" {
		if err := report.WriteFile(processFlags.output, res); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "JSON written to %s\n", processFlags.output)
	}
	return nil
}
