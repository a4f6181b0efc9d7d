package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fnol/internal/format"
	"fnol/internal/pipeline"
	"fnol/internal/report"
)

var batchFlags struct {
	parallel int
	format   string
	xlsx     string
	outDir   string
}

var batchCmd = &cobra.Command{
	Use:   "batch <file|dir>...",
	Short: "Process many claim documents concurrently and summarize the routes",
	Long: `Batch processes every file argument and every .pdf/.txt/.text file in
directory arguments (not recursive). A document that cannot be read is
reported in the summary and makes the command exit non-zero; the other
documents are still processed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.IntVar(&batchFlags.parallel, "parallel", 0, "Documents processed at once (default: $FNOL_PARALLEL or 4)")
	f.StringVar(&batchFlags.format, "format", "ascii", "Summary format: ascii, markdown or json")
	f.StringVar(&batchFlags.xlsx, "xlsx", "", "Also write the summary as an XLSX workbook to this path")
	f.StringVar(&batchFlags.outDir, "out-dir", "", "Write one <name>.json result per document into this directory")
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := pipeline.CollectInputs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no claim documents found in %s", strings.Join(args, ", "))
	}

	var mode format.Mode
	jsonOut := strings.EqualFold(batchFlags.format, "json")
	if !jsonOut {
		if mode, err = format.ParseMode(batchFlags.format); err != nil {
			return err
		}
	}

	p, _, err := buildPipeline()
	if err != nil {
		return err
	}
	parallel := batchFlags.parallel
	if parallel < 1 {
		parallel = settings.Parallel
	}

	rep, err := p.Batch(cmd.Context(), paths, parallel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		data, err := report.EncodeBatch(rep)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, report.Summary(rep, mode))
	}

	if batchFlags.outDir != "" {
		if err := writeResults(rep, batchFlags.outDir); err != nil {
			return err
		}
	}
	if batchFlags.xlsx != "" {
		data, err := report.XLSX(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(batchFlags.xlsx, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", batchFlags.xlsx, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Workbook written to %s\n", batchFlags.xlsx)
	}

	if n := rep.Failed(); n > 0 {
		return fmt.Errorf("%d of %d document(s) could not be processed", n, len(rep.Outcomes))
	}
	return nil
}

// writeResults stores each successful result as <base name>.json.
func writeResults(rep pipeline.BatchReport, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	used := make(map[string]bool)
	for _, o := range rep.Outcomes {
		if o.Err != nil {
			continue
		}
		name := resultName(used, o.Path)
		if err := report.WriteFile(filepath.Join(dir, name+".json"), o.Result); err != nil {
			return err
		}
	}
	return nil
}

// resultName returns the base name of path without its extension, adding a
// -2, -3, ... suffix until it is not in used. The chosen name is marked used.
func resultName(used map[string]bool, path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	name := stem
	for n := 2; used[name]; n++ {
		name = stem + "-" + strconv.Itoa(n)
	}
	used[name] = true
	return name
}
