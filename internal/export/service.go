package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
	"github.com/MrJamesThe3rd/rentbook/internal/invoice/printable"
)

const sheetName = "Invoices"

var header = []string{
	"Code", "Room", "Room price",
	"Elec begin", "Elec end", "Elec used", "Elec total",
	"Water begin", "Water end", "Water used", "Water total",
	"Trash", "Wifi", "Service", "Other", "Total", "Paid",
}

// Columns whose values are summed in the totals row (1-based).
var summedColumns = []int{3, 7, 11, 12, 13, 14, 15, 16}

type InvoiceLister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

// Service exports one billing period: a spreadsheet summary and, for the
// bundle, a printable page per invoice.
type Service struct {
	invoices InvoiceLister
	settings invoice.SettingsReader
	title    string
}

func NewService(invoices InvoiceLister, settings invoice.SettingsReader, title string) *Service {
	return &Service{invoices: invoices, settings: settings, title: title}
}

func (s *Service) period(ctx context.Context, month, year int) ([]*invoice.Invoice, error) {
	list, err := s.invoices.List(ctx, invoice.ListFilter{Month: &month, Year: &year})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	return list, nil
}

// Workbook returns an XLSX file with one row per invoice of the period
// followed by a totals row.
func (s *Service) Workbook(ctx context.Context, month, year int) ([]byte, error) {
	list, err := s.period(ctx, month, year)
	if err != nil {
		return nil, err
	}

	return buildWorkbook(list)
}

// Bundle writes a zip archive holding invoices.xlsx and one HTML page per
// invoice of the period.
func (s *Service) Bundle(ctx context.Context, month, year int, w io.Writer) error {
	list, err := s.period(ctx, month, year)
	if err != nil {
		return err
	}

	current, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	book, err := buildWorkbook(list)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	f, err := zw.Create("invoices.xlsx")
	if err != nil {
		return fmt.Errorf("adding workbook: %w", err)
	}

	if _, err := f.Write(book); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	seen := make(map[string]int, len(list))

	for _, inv := range list {
		name := pageName(inv.Code, seen)

		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("adding %s: %w", name, err)
		}

		if err := printable.Render(f, printable.New(inv, *current, s.title)); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// pageName turns an invoice code into a file name. Codes are not unique, so
// repeats get a numeric suffix.
func pageName(code string, seen map[string]int) string {
	base := unsafeChars.ReplaceAllString(code, "_")
	if base == "" {
		base = "invoice"
	}

	seen[base]++
	if n := seen[base]; n > 1 {
		return fmt.Sprintf("%s_%d.html", base, n)
	}

	return base + ".html"
}

func buildWorkbook(list []*invoice.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("creating money style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		NumFmt: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("creating totals style: %w", err)
	}

	// Column styles replace cell styles, so they go first.
	for _, cols := range []string{"C", "G", "K:P"} {
		if err := f.SetColStyle(sheetName, cols, moneyStyle); err != nil {
			return nil, fmt.Errorf("styling money columns %s: %w", cols, err)
		}
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	for i, inv := range list {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)

		row := []any{
			inv.Code, inv.RoomName, inv.RoomPrice,
			inv.ElecBegin, inv.ElecEnd, inv.ElecUsed, inv.ElecTotal,
			inv.WaterBegin, inv.WaterEnd, inv.WaterUsed, inv.WaterTotal,
			inv.TrashFee, inv.WifiFee, inv.ServiceFee, inv.OtherFee, inv.Total, paidLabel(inv.Paid),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	totalRow := len(list) + 2

	totalCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	if err := f.SetCellValue(sheetName, totalCell, "Total"); err != nil {
		return nil, fmt.Errorf("writing totals label: %w", err)
	}

	for _, col := range summedColumns {
		var sum int64

		for _, inv := range list {
			sum += columnValue(inv, col)
		}

		cell, _ := excelize.CoordinatesToCellName(col, totalRow)
		if err := f.SetCellValue(sheetName, cell, sum); err != nil {
			return nil, fmt.Errorf("writing total %s: %w", cell, err)
		}
	}

	lastTotalCell, _ := excelize.CoordinatesToCellName(len(header), totalRow)
	if err := f.SetCellStyle(sheetName, totalCell, lastTotalCell, totalStyle); err != nil {
		return nil, fmt.Errorf("styling totals: %w", err)
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func columnValue(inv *invoice.Invoice, col int) int64 {
	switch col {
	case 3:
		return inv.RoomPrice
	case 7:
		return inv.ElecTotal
	case 11:
		return inv.WaterTotal
	case 12:
		return inv.TrashFee
	case 13:
		return inv.WifiFee
	case 14:
		return inv.ServiceFee
	case 15:
		return inv.OtherFee
	case 16:
		return inv.Total
	}

	return 0
}

func paidLabel(paid bool) string {
	if paid {
		return "Yes"
	}

	return "No"
}
