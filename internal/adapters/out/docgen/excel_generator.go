// Package docgen renders the delivery note artifact for a shipment.
// The note is an xlsx workbook: a header block with the shipment metadata,
// one table per item bucket and a totals block with the net value.
package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/model/shop"
	"warehouse/internal/core/ports"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Delivery Note"

// ExcelDocumentGenerator implements the DocumentGenerator port by writing an
// xlsx delivery note into the configured storage directory. Every call
// writes a fresh timestamped file; stale files are collected by the artifact
// cleanup job.
type ExcelDocumentGenerator struct {
	storageDir string
	catalog    ports.ProductCatalog
}

// NewExcelDocumentGenerator creates a generator writing into storageDir.
// The directory is created on first use; the catalog resolves product names
// for the item tables.
func NewExcelDocumentGenerator(storageDir string, catalog ports.ProductCatalog) *ExcelDocumentGenerator {
	return &ExcelDocumentGenerator{storageDir: storageDir, catalog: catalog}
}

// Generate renders the delivery note and returns the path of the written
// file. The driver is optional.
func (g *ExcelDocumentGenerator) Generate(
	ctx context.Context,
	s *shipment.Shipment,
	sh *shop.Shop,
	drv *driver.Driver,
) (string, error) {
	if err := os.MkdirAll(g.storageDir, 0o755); err != nil {
		return "", fmt.Errorf("create storage directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	row := g.writeHeader(f, s, sh, drv)
	row = g.writeItemTable(ctx, f, row+1, "Delivered Items", s.ItemsOfType(shipment.Regular))
	if returns := s.ItemsOfType(shipment.Return); len(returns) > 0 {
		row = g.writeItemTable(ctx, f, row+1, "Returned Items", returns)
	}
	g.writeTotals(f, row+1, s)

	_ = f.SetColWidth(sheetName, "A", "A", 28)
	_ = f.SetColWidth(sheetName, "B", "E", 16)

	path := filepath.Join(
		g.storageDir,
		fmt.Sprintf("%s-%d.xlsx", s.Number(), time.Now().UnixMilli()),
	)
	if err = f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save delivery note: %w", err)
	}

	return path, nil
}

func (g *ExcelDocumentGenerator) writeHeader(
	f *excelize.File,
	s *shipment.Shipment,
	sh *shop.Shop,
	drv *driver.Driver,
) int {
	driverName := "-"
	if drv != nil {
		driverName = drv.FullName()
	}

	header := [][2]any{
		{"Shipment Number", s.Number()},
		{"Date", s.Date().Format("2006-01-02")},
		{"Status", s.Status().String()},
		{"Shop", sh.Name()},
		{"Address", fmt.Sprintf("%s, %s", sh.Address(), sh.City())},
		{"Driver", driverName},
	}
	if s.Notes() != "" {
		header = append(header, [2]any{"Notes", s.Notes()})
	}

	for i, pair := range header {
		row := i + 1
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), pair[0])
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), pair[1])
	}

	return len(header) + 1
}

func (g *ExcelDocumentGenerator) writeItemTable(
	ctx context.Context,
	f *excelize.File,
	startRow int,
	title string,
	items []*shipment.Item,
) int {
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", startRow), title)

	headerRow := startRow + 1
	columns := []string{"Product", "Quantity", "Unit Price", "Total", "Notes"}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetName, cell, col)
	}

	row := headerRow
	for _, item := range items {
		row++
		notes := item.Notes()
		if item.ReturnReason() != nil {
			notes = fmt.Sprintf("%s %s", item.ReturnReason().String(), notes)
		}

		values := []any{
			g.productLabel(ctx, item),
			item.Quantity().String(),
			item.UnitPrice().StringFixed(2),
			item.TotalPrice().StringFixed(2),
			notes,
		}
		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	return row + 1
}

// productLabel resolves the catalog name for an item line. A product no
// longer in the catalog falls back to its raw ID so the note still renders.
func (g *ExcelDocumentGenerator) productLabel(ctx context.Context, item *shipment.Item) string {
	prod, err := g.catalog.Get(ctx, item.ProductID())
	if err != nil {
		return item.ProductID().String()
	}
	return fmt.Sprintf("%s (%s)", prod.Name(), prod.Code())
}

func (g *ExcelDocumentGenerator) writeTotals(f *excelize.File, startRow int, s *shipment.Shipment) {
	totals := [][2]any{
		{"Delivered Total", s.RegularTotal().StringFixed(2)},
		{"Returned Total", s.ReturnTotal().StringFixed(2)},
		{"Net Total", s.NetTotal().StringFixed(2)},
	}

	for i, pair := range totals {
		row := startRow + i
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), pair[0])
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), pair[1])
	}
}
