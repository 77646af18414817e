package view

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/rentbook/internal/readings"
)

var vnd = message.NewPrinter(language.Vietnamese)

// FormatMoney renders a whole-VND amount with Vietnamese digit grouping.
func FormatMoney(amount int64) string {
	return vnd.Sprintf("%d", amount) + " ₫"
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatPeriod renders a billing period as MM/YYYY.
func FormatPeriod(month, year int) string {
	return fmt.Sprintf("%02d/%d", month, year)
}

// parseAmount reads a whole-number form field; a blank field is zero.
func parseAmount(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	return readings.ParseWhole(s)
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}
