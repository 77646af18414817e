package invoice

import (
	"fmt"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

// Compute prices one item against a room and the current settings. Readings are
// taken as given: an end below its begin yields negative usage and totals.
func Compute(r *room.Room, s settings.Settings, item GenerateItem) *Invoice {
	elecUsed := item.ElecEnd - item.ElecBegin
	waterUsed := item.WaterEnd - item.WaterBegin

	inv := &Invoice{
		Code:       Code(r.Name, item.Month, item.Year),
		RoomID:     r.ID,
		RoomName:   r.Name,
		RoomPrice:  r.BasePrice,
		ElecBegin:  item.ElecBegin,
		ElecEnd:    item.ElecEnd,
		ElecUsed:   elecUsed,
		ElecTotal:  elecUsed * s.ElecUnitPrice,
		WaterBegin: item.WaterBegin,
		WaterEnd:   item.WaterEnd,
		WaterUsed:  waterUsed,
		WaterTotal: waterUsed * s.WaterUnitPrice,
		TrashFee:   s.TrashFee,
		WifiFee:    s.WifiFee,
		ServiceFee: s.OtherFee,
		OtherFee:   item.OtherFee,
		Month:      item.Month,
		Year:       item.Year,
	}

	inv.Total = inv.RoomPrice + inv.ElecTotal + inv.WaterTotal +
		inv.TrashFee + inv.WifiFee + inv.ServiceFee + inv.OtherFee

	return inv
}

// Code builds the display label "{room}-{MM}{YY}", e.g. "A1-0324".
func Code(roomName string, month, year int) string {
	yy := year % 100
	if yy < 0 {
		yy = -yy
	}

	return fmt.Sprintf("%s-%02d%02d", roomName, month, yy)
}
