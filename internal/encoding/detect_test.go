package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "UTF8Passthrough",
			input: []byte("phòng;điện đầu;điện cuối\nA1;100;150\n"),
			want:  "phòng;điện đầu;điện cuối\nA1;100;150\n",
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("room_id;elec_begin\n")...),
			want:  "room_id;elec_begin\n",
		},
		{
			name:  "UTF16LE",
			input: []byte{0xFF, 0xFE, 'A', 0x00, '1', 0x00, ';', 0x00, '5', 0x00},
			want:  "A1;5",
		},
		{
			// "đơn giá" in Windows-1258: đ=0xF0, ơ=0xF5, á=0xE1.
			name:  "Windows1258Fallback",
			input: []byte{0xF0, 0xF5, 'n', ' ', 'g', 'i', 0xE1, '\n'},
			want:  "đơn giá\n",
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readAll(t, tt.input))
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := append([]byte("phòng;điện\n"), bytes.Repeat([]byte("A1;100;150;10;15\n"), 1000)...)

	assert.Equal(t, string(input), readAll(t, input))
}
