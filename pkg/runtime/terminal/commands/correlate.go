package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	fileexport "github.com/de-tools/chain-atlas/pkg/export"
	"github.com/de-tools/chain-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/chain-atlas/pkg/services/analytics"

	"github.com/spf13/cobra"
)

type CorrelateCmd struct {
	sources  sourceFlags
	filters  filterFlags
	columns  []string
	out      string
	reporter *export.Reporter
}

func NewCorrelateCmd(reporter *export.Reporter) *cobra.Command {
	cc := &CorrelateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Compute pairwise correlations between measure columns",
		RunE:  cc.run,
	}

	cc.sources.register(cmd)
	cc.filters.register(cmd)
	cmd.Flags().StringSliceVar(&cc.columns, "columns", nil, "Measure columns to correlate, all when empty")
	cmd.Flags().StringVar(&cc.out, "out", "", "Write the matrix to this CSV file instead of the terminal")

	return cmd
}

func (cc *CorrelateCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	filter, err := cc.filters.parse()
	if err != nil {
		return err
	}

	result, err := loadRecords(ctx, &cc.sources)
	if err != nil {
		return err
	}

	matrix, err := analytics.Correlate(result.records, cc.columns, filter)
	if err != nil {
		return err
	}

	if cc.out != "" {
		f, err := os.Create(cc.out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		return fileexport.WriteCorrelationCSV(f, matrix)
	}

	return cc.reporter.Correlation(matrix)
}
