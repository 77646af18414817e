package readings_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/rentbook/internal/invoice"
	"github.com/MrJamesThe3rd/rentbook/internal/readings"
)

var march = readings.Period{Month: 3, Year: 2024}

func TestParser_Semicolon(t *testing.T) {
	a1, b2 := uuid.New(), uuid.New()

	csv := "room_id;elec_begin;elec_end;water_begin;water_end;other_fee\n" +
		a1.String() + ";100;150;10;15;\n" +
		b2.String() + ";1.200;1.350;40;44;25.000\n"

	items, err := readings.NewParser().Parse(strings.NewReader(csv), march)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, invoice.GenerateItem{
		RoomID: a1, ElecBegin: 100, ElecEnd: 150, WaterBegin: 10, WaterEnd: 15, Month: 3, Year: 2024,
	}, items[0])
	assert.Equal(t, invoice.GenerateItem{
		RoomID: b2, ElecBegin: 1200, ElecEnd: 1350, WaterBegin: 40, WaterEnd: 44, OtherFee: 25000, Month: 3, Year: 2024,
	}, items[1])
}

func TestParser_CommaAnyColumnOrder(t *testing.T) {
	a1 := uuid.New()

	csv := "Water End,Water Begin,Elec End,Elec Begin,Room ID,Month,Year\n" +
		"15,10,150,100," + a1.String() + ",12,2023\n" +
		"\n"

	items, err := readings.NewParser().Parse(strings.NewReader(csv), march)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, a1, items[0].RoomID)
	assert.Equal(t, int64(100), items[0].ElecBegin)
	assert.Equal(t, int64(15), items[0].WaterEnd)
	assert.Equal(t, 12, items[0].Month)
	assert.Equal(t, 2023, items[0].Year)
}

func TestParser_QuotedGroupedAmount(t *testing.T) {
	a1 := uuid.New()

	csv := "room_id,elec_begin,elec_end,water_begin,water_end,other_fee\n" +
		a1.String() + `,100,150,10,15,"1,500,000 ₫"` + "\n"

	items, err := readings.NewParser().Parse(strings.NewReader(csv), march)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1_500_000), items[0].OtherFee)
}

func TestParser_Windows1258(t *testing.T) {
	a1 := uuid.New()

	text := "room_id;elec_begin;elec_end;water_begin;water_end;ghi_chú\n" +
		a1.String() + ";100;150;10;15;đơn giá\n"

	encoded, err := charmap.Windows1258.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	items, err := readings.NewParser().Parse(bytes.NewReader(encoded), march)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a1, items[0].RoomID)
}

func TestParser_Errors(t *testing.T) {
	a1 := uuid.New().String()

	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			name:    "Empty",
			csv:     "",
			wantErr: "missing required columns",
		},
		{
			name:    "MissingColumns",
			csv:     "room_id;elec_begin;elec_end\n" + a1 + ";1;2\n",
			wantErr: "water_begin, water_end",
		},
		{
			name:    "BadNumberReportsLine",
			csv:     "room_id;elec_begin;elec_end;water_begin;water_end\n" + a1 + ";1;2;3;4\n" + a1 + ";1;abc;3;4\n",
			wantErr: "line 3: elec_end",
		},
		{
			name:    "BadRoomID",
			csv:     "room_id;elec_begin;elec_end;water_begin;water_end\nA1;1;2;3;4\n",
			wantErr: "line 2: room_id",
		},
		{
			name:    "MissingRequiredCell",
			csv:     "room_id;elec_begin;elec_end;water_begin;water_end\n" + a1 + ";1;2;3\n",
			wantErr: "line 2: water_end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readings.NewParser().Parse(strings.NewReader(tt.csv), march)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
