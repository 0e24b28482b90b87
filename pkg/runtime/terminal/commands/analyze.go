package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	fileexport "github.com/de-tools/chain-atlas/pkg/export"
	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/de-tools/chain-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/chain-atlas/pkg/services/analytics"

	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	sources   sourceFlags
	filters   filterFlags
	dimension string
	limit     int
	out       string
	reporter  *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize a dataset along a dimension",
		RunE:  ac.run,
	}

	// Define flags
	ac.sources.register(cmd)
	ac.filters.register(cmd)
	cmd.Flags().StringVar(&ac.dimension, "dimension", string(domain.DimensionRegion),
		fmt.Sprintf("Dimension to group by (%s)", dimensionList()))
	cmd.Flags().IntVar(&ac.limit, "limit", 0, "Keep only the top N rows, 0 for all")
	cmd.Flags().StringVar(&ac.out, "out", "", "Write the summary to this CSV file instead of the terminal")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	filter, err := ac.filters.parse()
	if err != nil {
		return err
	}

	result, err := loadRecords(ctx, &ac.sources)
	if err != nil {
		return err
	}

	summary, err := analytics.Summarize(result.records, domain.Dimension(ac.dimension), filter, ac.limit)
	if err != nil {
		return err
	}

	if ac.out != "" {
		f, err := os.Create(ac.out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		return fileexport.WriteSummaryCSV(f, summary)
	}

	return ac.reporter.Summary(summary, result.quality)
}

func dimensionList() string {
	dims := domain.Dimensions()
	names := make([]string, 0, len(dims))
	for _, d := range dims {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}
