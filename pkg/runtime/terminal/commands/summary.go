package commands

import (
	"github.com/bi-tools/weekly-pulse/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	generate *GenerateCmd
	reporter *export.Reporter
}

// NewSummaryCmd prints the condensed insight digest instead of the full
// report. It shares the generate command's flags and data loading.
func NewSummaryCmd(reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{
		generate: &GenerateCmd{reporter: reporter},
		reporter: reporter,
	}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a condensed insight summary",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.generate.csvPath, "csv", "", "Path to the weekly data CSV file")
	cmd.Flags().BoolVar(&sc.generate.sample, "sample", false, "Use the bundled sample dataset")
	cmd.Flags().BoolVar(&sc.generate.strict, "strict", false, "Abort on the first malformed row")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, args []string) error {
	rep, err := sc.generate.generate(cmd.Context())
	if err != nil {
		return err
	}
	return sc.reporter.HandleSummary(rep)
}
