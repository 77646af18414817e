package printable

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed invoice.html.tmpl
var pageSource string

var page = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"vnd":    formatVND,
	"period": func(month, year int) string { return fmt.Sprintf("%02d/%d", month, year) },
}).Parse(pageSource))

var printer = message.NewPrinter(language.Vietnamese)

// formatVND groups digits the Vietnamese way: 1770000 -> "1.770.000".
func formatVND(v any) string {
	switch n := v.(type) {
	case int64:
		return printer.Sprintf("%d", n)
	case int:
		return printer.Sprintf("%d", n)
	case decimal.Decimal:
		return printer.Sprintf("%d", n.Round(0).IntPart())
	default:
		return fmt.Sprint(v)
	}
}

// Render writes doc as a standalone HTML page.
func Render(w io.Writer, doc *Document) error {
	if err := page.Execute(w, doc); err != nil {
		return fmt.Errorf("render invoice %s: %w", doc.Code, err)
	}

	return nil
}
