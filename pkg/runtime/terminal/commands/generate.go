package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/bi-tools/weekly-pulse/pkg/runtime/terminal/export"
	"github.com/bi-tools/weekly-pulse/pkg/services/ingest"
	"github.com/bi-tools/weekly-pulse/pkg/services/insights"
	"github.com/bi-tools/weekly-pulse/pkg/services/report"
	"github.com/bi-tools/weekly-pulse/pkg/store/csvfile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type GenerateCmd struct {
	csvPath  string
	sample   bool
	strict   bool
	verbose  bool
	reporter *export.Reporter
}

func NewGenerateCmd(reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a weekly business report",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.csvPath, "csv", "", "Path to the weekly data CSV file")
	cmd.Flags().BoolVar(&gc.sample, "sample", false, "Use the bundled sample dataset")
	cmd.Flags().BoolVar(&gc.strict, "strict", false, "Abort on the first malformed row")
	cmd.Flags().BoolVar(&gc.verbose, "verbose", false, "Enable debug logging")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	rep, err := gc.generate(cmd.Context())
	if err != nil {
		return err
	}
	return gc.reporter.Handle(rep)
}

func (gc *GenerateCmd) generate(ctx context.Context) (*report.Report, error) {
	level := zerolog.WarnLevel
	if gc.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	rows, err := gc.loadRows()
	if err != nil {
		return nil, err
	}

	var opts []report.Option
	if gc.strict {
		opts = append(opts, report.WithStrictIngest())
	}
	ctrl := report.NewController(insights.DefaultSettings(), opts...)
	return ctrl.Generate(ctx, rows)
}

func (gc *GenerateCmd) loadRows() ([]ingest.RawRow, error) {
	if gc.sample {
		return report.SampleRows(), nil
	}
	if gc.csvPath == "" {
		return nil, fmt.Errorf("either --csv or --sample is required")
	}
	return csvfile.ReadFile(gc.csvPath)
}
