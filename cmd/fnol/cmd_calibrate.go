package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fnol/internal/display"
	"fnol/internal/format"
	"fnol/internal/scenarios"
)

var calibrateFlags struct {
	scenario string
	format   string
	verbose  bool
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Run the built-in labelled scenarios and report routing accuracy",
	Long: `Calibrate runs every embedded scenario (or one, with --scenario) through
the pipeline with the active rules and compares route, missing fields,
reasoning and selected field values with the expected outcome. It exits
non-zero when any scenario fails, so rule changes can be checked before
they are deployed.`,
	Args: cobra.NoArgs,
	RunE: runCalibrate,
}

func init() {
	f := calibrateCmd.Flags()
	f.StringVar(&calibrateFlags.scenario, "scenario", "", "Run only this scenario (default: all)")
	f.StringVar(&calibrateFlags.format, "format", "ascii", "Table format: ascii or markdown")
	f.BoolVarP(&calibrateFlags.verbose, "verbose", "v", false, "Print every mismatch below the table")
}

func runCalibrate(cmd *cobra.Command, _ []string) error {
	mode, err := format.ParseMode(calibrateFlags.format)
	if err != nil {
		return err
	}

	var list []*scenarios.Scenario
	if calibrateFlags.scenario != "" {
		s, err := scenarios.Load(calibrateFlags.scenario)
		if err != nil {
			return err
		}
		list = []*scenarios.Scenario{s}
	} else if list, err = scenarios.All(); err != nil {
		return err
	}

	p, _, err := buildPipeline()
	if err != nil {
		return err
	}

	tbl := format.NewTable(mode)
	tbl.Header("Scenario", "Expected", "Got", "Missing", "Pass")
	tbl.Columns(
		format.ColumnConfig{Number: 4, MaxWidth: 40},
		format.ColumnConfig{Number: 5, Align: format.AlignCenter},
	)

	failed := 0
	var details []string
	for _, s := range list {
		res := p.ProcessText(s.Text)
		problems := s.Check(res)
		if len(problems) > 0 {
			failed++
			for _, prob := range problems {
				details = append(details, fmt.Sprintf("%s: %s", s.Name, prob))
			}
		}
		missing := "-"
		if len(res.MissingFields) > 0 {
			missing = strings.Join(res.MissingFields, ", ")
		}
		tbl.Row(s.Name,
			display.RouteShort(string(s.Expect.Route)),
			display.RouteShort(string(res.RecommendedRoute)),
			missing,
			format.BoolMark(len(problems) == 0),
		)
	}
	tbl.Footer("Passed", fmt.Sprintf("%d/%d", len(list)-failed, len(list)), "", "", "")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tbl.String())
	if calibrateFlags.verbose && len(details) > 0 {
		fmt.Fprintln(out)
		for _, d := range details {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenario(s) failed", failed, len(list))
	}
	return nil
}
