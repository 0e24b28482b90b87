package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	fileexport "github.com/de-tools/chain-atlas/pkg/export"
	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/de-tools/chain-atlas/pkg/services/analytics"

	"github.com/spf13/cobra"
)

type ExportCmd struct {
	sources   sourceFlags
	filters   filterFlags
	view      string
	format    string
	dimension string
	limit     int
	columns   []string
	out       string
}

func NewExportCmd() *cobra.Command {
	ec := &ExportCmd{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write cleaned records or aggregates to a file",
		RunE:  ec.run,
	}

	ec.sources.register(cmd)
	ec.filters.register(cmd)
	cmd.Flags().StringVar(&ec.view, "view", "records", "What to export (records, summary, correlation)")
	cmd.Flags().StringVar(&ec.format, "format", "csv", "Output format (csv, xlsx)")
	cmd.Flags().StringVar(&ec.dimension, "dimension", string(domain.DimensionRegion),
		"Dimension for the summary view")
	cmd.Flags().IntVar(&ec.limit, "limit", 0, "Keep only the top N summary rows, 0 for all")
	cmd.Flags().StringSliceVar(&ec.columns, "columns", nil, "Measure columns for the correlation view")
	cmd.Flags().StringVar(&ec.out, "out", "", "Output file path")

	// Mark required flags
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	filter, err := ec.filters.parse()
	if err != nil {
		return err
	}

	result, err := loadRecords(ctx, &ec.sources)
	if err != nil {
		return err
	}

	f, err := os.Create(ec.out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := ec.write(f, result.records, filter); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", ec.out)
	return nil
}

func (ec *ExportCmd) write(w io.Writer, records []domain.CleanRecord, filter domain.Filter) error {
	switch {
	case ec.view == "records" && ec.format == "csv":
		return fileexport.WriteRecordsCSV(w, filteredRecords(records, filter))
	case ec.view == "records" && ec.format == "xlsx":
		return fileexport.WriteRecordsXLSX(w, filteredRecords(records, filter))
	case ec.view == "summary":
		summary, err := analytics.Summarize(records, domain.Dimension(ec.dimension), filter, ec.limit)
		if errors.Is(err, domain.ErrEmptyInput) {
			summary = &domain.SummaryTable{Dimension: domain.Dimension(ec.dimension)}
		} else if err != nil {
			return err
		}
		switch ec.format {
		case "csv":
			return fileexport.WriteSummaryCSV(w, summary)
		case "xlsx":
			return fileexport.WriteSummaryXLSX(w, summary)
		default:
			return fmt.Errorf("unsupported format %q", ec.format)
		}
	case ec.view == "correlation" && ec.format == "csv":
		matrix, err := analytics.Correlate(records, ec.columns, filter)
		if err != nil {
			return err
		}
		return fileexport.WriteCorrelationCSV(w, matrix)
	default:
		return fmt.Errorf("unsupported view %q for format %q", ec.view, ec.format)
	}
}

func filteredRecords(records []domain.CleanRecord, filter domain.Filter) []domain.CleanRecord {
	if filter.IsZero() {
		return records
	}
	out := make([]domain.CleanRecord, 0, len(records))
	for _, r := range records {
		if filter.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
