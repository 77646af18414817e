package settings

import (
	"errors"
	"time"
)

// ErrNotFound is returned by a Repository when no settings row has been saved yet.
var ErrNotFound = errors.New("settings not found")

// Settings holds the unit prices and flat fees applied when invoices are generated.
// Amounts are whole VND.
type Settings struct {
	ElecUnitPrice  int64 // per kWh
	WaterUnitPrice int64 // per m³
	TrashFee       int64
	WifiFee        int64
	OtherFee       int64
	Version        int64 // 0 until the first save
	UpdatedAt      *time.Time
}

// Defaults is what the system bills with before anyone saves settings.
func Defaults() Settings {
	return Settings{
		ElecUnitPrice:  3000,
		WaterUnitPrice: 10000,
		TrashFee:       20000,
		WifiFee:        50000,
		OtherFee:       0,
	}
}
