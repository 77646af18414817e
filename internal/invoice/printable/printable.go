package printable

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

// Meter is one utility block on the printed page.
type Meter struct {
	Begin     int64
	End       int64
	Used      int64
	UnitPrice decimal.Decimal
	Total     int64
}

// Document is the read-only view of an invoice as it is printed for a tenant.
type Document struct {
	Title      string
	Code       string
	RoomName   string
	Month      int
	Year       int
	Paid       bool
	IssuedAt   time.Time
	RoomPrice  int64
	Elec       Meter
	Water      Meter
	TrashFee   int64
	WifiFee    int64
	ServiceFee int64
	OtherFee   int64
	Total      int64
}

// New builds a document from a stored invoice. Invoices keep totals but not
// unit prices, so the unit price shown is total/used, or the current price
// from settings when nothing was used.
func New(inv *invoice.Invoice, current settings.Settings, title string) *Document {
	roomName := inv.RoomName
	if roomName == "" && inv.Room != nil {
		roomName = inv.Room.Name
	}

	return &Document{
		Title:    title,
		Code:     inv.Code,
		RoomName: roomName,
		Month:    inv.Month,
		Year:     inv.Year,
		Paid:     inv.Paid,
		IssuedAt: inv.CreatedAt,
		Elec: Meter{
			Begin:     inv.ElecBegin,
			End:       inv.ElecEnd,
			Used:      inv.ElecUsed,
			UnitPrice: unitPrice(inv.ElecTotal, inv.ElecUsed, current.ElecUnitPrice),
			Total:     inv.ElecTotal,
		},
		Water: Meter{
			Begin:     inv.WaterBegin,
			End:       inv.WaterEnd,
			Used:      inv.WaterUsed,
			UnitPrice: unitPrice(inv.WaterTotal, inv.WaterUsed, current.WaterUnitPrice),
			Total:     inv.WaterTotal,
		},
		RoomPrice:  inv.RoomPrice,
		TrashFee:   inv.TrashFee,
		WifiFee:    inv.WifiFee,
		ServiceFee: inv.ServiceFee,
		OtherFee:   inv.OtherFee,
		Total:      inv.Total,
	}
}

func unitPrice(total, used, fallback int64) decimal.Decimal {
	if used == 0 {
		return decimal.NewFromInt(fallback)
	}

	return decimal.NewFromInt(total).Div(decimal.NewFromInt(used))
}
