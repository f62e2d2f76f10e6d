// Package encoding normalizes gateway statement exports to UTF-8.
//
// The acquirers' back-office tools export CSV in whatever the operator's
// Excel felt like: plain UTF-8, UTF-8 with BOM, UTF-16 from "save as
// unicode text", or Windows-1252 with bare ç/ã bytes. Everything downstream
// assumes UTF-8, so this is the first reader in the import pipeline.
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

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r in a reader that yields UTF-8.
//
// A BOM decides immediately; otherwise valid UTF-8 passes through, then a
// chardet heuristic picks a single-byte codepage, and anything inconclusive
// falls back to Windows-1252, which is what the Brazilian exports actually
// are in practice.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking statement head: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, sniffCodepage(buf).NewDecoder()), nil
}

// sniffCodepage picks the single-byte codepage for a non-UTF-8 head.
func sniffCodepage(head []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO-8859-9":
		return charmap.ISO8859_9
	default:
		return charmap.Windows1252
	}
}
