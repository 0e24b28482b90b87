package export

import (
	"fmt"
	"io"

	"github.com/de-tools/chain-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// WriteRecordsXLSX writes the clean records as a single-sheet
// workbook. Dates are written as formatted strings so output does not
// depend on viewer locale; numbers stay numeric cells.
func WriteRecordsXLSX(w io.Writer, records []domain.CleanRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Records"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, toCells(recordHeader)); err != nil {
		return err
	}

	for i, r := range records {
		row := []interface{}{
			r.OrderID,
			r.OrderDate.Format(dateLayout),
			formatShipDate(r.ShipDate),
			r.ProductID,
			r.ProductName,
			r.Category,
			r.CustomerID,
			r.Segment,
			r.Region,
			r.SupplierRegion,
			r.ShippingMode,
			r.OrderStatus,
			r.Sales,
			r.Quantity,
			r.Profit,
			r.ShippingCost,
			r.ShippingDays,
			formatFlag(r.Late),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteSummaryXLSX writes one summary table as a workbook sheet named
// after the dimension.
func WriteSummaryXLSX(w io.Writer, table *domain.SummaryTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := string(table.Dimension)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, toCells(summaryHeader(table.Dimension))); err != nil {
		return err
	}

	for i, r := range table.Rows {
		row := []interface{}{
			r.Key,
			r.Count,
			r.SalesSum,
			r.SalesMean,
			r.QuantitySum,
			r.ProfitSum,
			r.ProfitMean,
			r.ShippingDaysMean,
			r.LateRate,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
