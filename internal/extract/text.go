package extract

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// textDecoder is one candidate encoding tried by DecodeText
type textDecoder struct {
	name   string
	decode func(data []byte) (string, bool)
}

// decoders are tried in order; the first strict success wins.
var decoders = []textDecoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "utf-8-sig", decode: decodeUTF8BOM},
	{name: "utf-16", decode: func(b []byte) (string, bool) {
		return decodeUTF16(b, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), bytes.HasPrefix(b, []byte{0xFE, 0xFF}))
	}},
	{name: "utf-16le", decode: func(b []byte) (string, bool) {
		return decodeUTF16(b, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), false)
	}},
	{name: "utf-16be", decode: func(b []byte) (string, bool) {
		return decodeUTF16(b, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), true)
	}},
}

// DecodeText converts raw bytes of unknown encoding into text.
// It never fails: when no Unicode encoding decodes the input strictly,
// every byte is mapped through ISO-8859-1.
func DecodeText(data []byte) string {
	text, _ := DecodeTextWithEncoding(data)
	return text
}

// DecodeTextWithEncoding is DecodeText that also names the encoding used.
func DecodeTextWithEncoding(data []byte) (string, string) {
	for _, d := range decoders {
		if text, ok := d.decode(data); ok {
			return text, d.name
		}
	}
	return decodeLatin1(data), "latin-1"
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeUTF8BOM(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// decodeUTF16 rejects odd-length input and any output where the decoder had
// to substitute U+FFFD for an unpaired surrogate.
func decodeUTF16(data []byte, enc encoding.Encoding, bigEndian bool) (string, bool) {
	if len(data)%2 != 0 {
		return "", false
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	if bytes.Count(out, []byte("\uFFFD")) != replacementUnits(data, bigEndian) {
		return "", false
	}
	return string(out), true
}

// replacementUnits counts literal U+FFFD code units present in the input.
func replacementUnits(data []byte, bigEndian bool) int {
	n := 0
	for i := 0; i+1 < len(data); i += 2 {
		hi, lo := data[i+1], data[i]
		if bigEndian {
			hi, lo = data[i], data[i+1]
		}
		if hi == 0xFF && lo == 0xFD {
			n++
		}
	}
	return n
}

func decodeLatin1(data []byte) string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err == nil {
		return string(out)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
