package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader returns a reader that yields r's content as UTF-8.
//
// Spreadsheets exported on Vietnamese Windows setups are usually UTF-8 with a
// BOM, UTF-16, or the legacy Windows-1258 code page, so:
//  1. a BOM decides (UTF-8 BOM is stripped, UTF-16 LE/BE is decoded)
//  2. valid UTF-8 passes through
//  3. chardet catches UTF-8 cut mid-rune by the peek window
//  4. anything else is decoded as Windows-1258
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	case utf8.Valid(buf):
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil && result.Charset == "UTF-8" {
		return br, nil
	}

	return transform.NewReader(br, charmap.Windows1258.NewDecoder()), nil
}
