package readings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	enc "github.com/MrJamesThe3rd/rentbook/internal/encoding"
	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
)

var ErrMissingColumns = errors.New("missing required columns")

const (
	colRoomID     = "room_id"
	colElecBegin  = "elec_begin"
	colElecEnd    = "elec_end"
	colWaterBegin = "water_begin"
	colWaterEnd   = "water_end"
	colOtherFee   = "other_fee"
	colMonth      = "month"
	colYear       = "year"
)

var requiredCols = []string{colRoomID, colElecBegin, colElecEnd, colWaterBegin, colWaterEnd}

// Period is the billing month used for rows that leave month or year empty.
type Period struct {
	Month int
	Year  int
}

// Parser reads meter-reading sheets exported from a spreadsheet: one header
// row, then one row per room. Columns may appear in any order and the
// separator may be ';' or ','.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader, period Period) ([]invoice.GenerateItem, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = detectSeparator(string(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}

	cols := headerIndex(rows[0])
	if missing := missingColumns(cols); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	items := make([]invoice.GenerateItem, 0, len(rows)-1)

	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header

		if isBlank(row) {
			continue
		}

		item, err := parseRow(cols, row, period)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		items = append(items, item)
	}

	return items, nil
}

type colIndex map[string]int

func headerIndex(header []string) colIndex {
	cols := make(colIndex, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		name = strings.ReplaceAll(name, " ", "_")

		if name != "" {
			cols[name] = i
		}
	}

	return cols
}

func missingColumns(cols colIndex) []string {
	var missing []string

	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}

func parseRow(cols colIndex, row []string, period Period) (invoice.GenerateItem, error) {
	item := invoice.GenerateItem{Month: period.Month, Year: period.Year}

	roomID, err := uuid.Parse(cell(row, cols, colRoomID))
	if err != nil {
		return item, fmt.Errorf("%s: %w", colRoomID, err)
	}

	item.RoomID = roomID

	readings := []struct {
		col      string
		dst      *int64
		optional bool
	}{
		{col: colElecBegin, dst: &item.ElecBegin},
		{col: colElecEnd, dst: &item.ElecEnd},
		{col: colWaterBegin, dst: &item.WaterBegin},
		{col: colWaterEnd, dst: &item.WaterEnd},
		{col: colOtherFee, dst: &item.OtherFee, optional: true},
	}

	for _, rd := range readings {
		s := cell(row, cols, rd.col)
		if s == "" && rd.optional {
			continue
		}

		n, err := ParseWhole(s)
		if err != nil {
			return item, fmt.Errorf("%s: %w", rd.col, err)
		}

		*rd.dst = n
	}

	for _, p := range []struct {
		col string
		dst *int
	}{
		{col: colMonth, dst: &item.Month},
		{col: colYear, dst: &item.Year},
	} {
		s := cell(row, cols, p.col)
		if s == "" {
			continue
		}

		n, err := ParseWhole(s)
		if err != nil {
			return item, fmt.Errorf("%s: %w", p.col, err)
		}

		*p.dst = int(n)
	}

	return item, nil
}

// detectSeparator picks ';' or ',' by whichever occurs more in the header line.
func detectSeparator(content string) rune {
	header, _, _ := strings.Cut(content, "\n")
	if strings.Count(header, ";") >= strings.Count(header, ",") && strings.Contains(header, ";") {
		return ';'
	}

	return ','
}

func cell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
