package invoice

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/rentbook/internal/room"
	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

func TestCompute(t *testing.T) {
	r := &room.Room{ID: uuid.New(), Name: "A1", BasePrice: 1_500_000}

	tests := []struct {
		name     string
		settings settings.Settings
		item     GenerateItem
		want     Invoice
	}{
		{
			name:     "DefaultPrices",
			settings: settings.Defaults(),
			item:     GenerateItem{RoomID: r.ID, ElecBegin: 100, ElecEnd: 150, WaterBegin: 10, WaterEnd: 15, Month: 3, Year: 2024},
			want: Invoice{
				Code: "A1-0324", ElecUsed: 50, ElecTotal: 150_000, WaterUsed: 5, WaterTotal: 50_000,
				TrashFee: 20_000, WifiFee: 50_000, Total: 1_770_000,
			},
		},
		{
			name:     "BothOtherFeesAreAdded",
			settings: settings.Settings{ElecUnitPrice: 3000, WaterUnitPrice: 10000, TrashFee: 20000, WifiFee: 50000, OtherFee: 15000},
			item:     GenerateItem{RoomID: r.ID, ElecBegin: 100, ElecEnd: 150, WaterBegin: 10, WaterEnd: 15, OtherFee: 5000, Month: 11, Year: 2025},
			want: Invoice{
				Code: "A1-1125", ElecUsed: 50, ElecTotal: 150_000, WaterUsed: 5, WaterTotal: 50_000,
				TrashFee: 20_000, WifiFee: 50_000, ServiceFee: 15_000, OtherFee: 5_000, Total: 1_790_000,
			},
		},
		{
			name:     "BackwardsReadingsStayNegative",
			settings: settings.Defaults(),
			item:     GenerateItem{RoomID: r.ID, ElecBegin: 150, ElecEnd: 100, WaterBegin: 15, WaterEnd: 15, Month: 1, Year: 2026},
			want: Invoice{
				Code: "A1-0126", ElecUsed: -50, ElecTotal: -150_000, WaterUsed: 0, WaterTotal: 0,
				TrashFee: 20_000, WifiFee: 50_000, Total: 1_420_000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(r, tt.settings, tt.item)

			assert.Equal(t, tt.want.Code, got.Code)
			assert.Equal(t, r.ID, got.RoomID)
			assert.Equal(t, "A1", got.RoomName)
			assert.Equal(t, int64(1_500_000), got.RoomPrice)
			assert.Equal(t, tt.want.ElecUsed, got.ElecUsed)
			assert.Equal(t, tt.want.ElecTotal, got.ElecTotal)
			assert.Equal(t, tt.want.WaterUsed, got.WaterUsed)
			assert.Equal(t, tt.want.WaterTotal, got.WaterTotal)
			assert.Equal(t, tt.want.TrashFee, got.TrashFee)
			assert.Equal(t, tt.want.WifiFee, got.WifiFee)
			assert.Equal(t, tt.want.ServiceFee, got.ServiceFee)
			assert.Equal(t, tt.want.OtherFee, got.OtherFee)
			assert.Equal(t, tt.want.Total, got.Total)
			assert.False(t, got.Paid)
			assert.Equal(t, tt.item.Month, got.Month)
			assert.Equal(t, tt.item.Year, got.Year)
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		room  string
		month int
		year  int
		want  string
	}{
		{room: "A1", month: 3, year: 2024, want: "A1-0324"},
		{room: "B2", month: 12, year: 2009, want: "B2-1209"},
		{room: "Phòng 5", month: 1, year: 2100, want: "Phòng 5-0100"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.room, tt.month, tt.year))
		})
	}
}
