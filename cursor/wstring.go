package cursor

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/lce-tools/lcesave/lceerr"
)

func (o Order) utf16Encoding() *unicode.Encoding {
	if o == LittleEndian {
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
}

// ReadWStringPrefixed reads a u16 character count followed by that many
// UTF-16 code units (interpreted per the cursor's current Order) and
// returns the decoded string. Used for the STFS header's display name.
func (c *Cursor) ReadWStringPrefixed() (string, error) {
	n, err := c.ReadUint16()
	if err != nil {
		return "", err
	}
	raw, err := c.ReadSlice(int(n) * 2)
	if err != nil {
		return "", err
	}
	s, err := c.order.utf16Encoding().NewDecoder().Bytes(raw)
	if err != nil {
		return "", lceerr.New(lceerr.Encoding, "Cursor.ReadWStringPrefixed", err)
	}
	return string(s), nil
}

// ReadWStringFixed reads exactly byteLen bytes of UTF-16 code units
// (NUL-padded) and returns the decoded string up to the first NUL code
// unit. Used for the archive directory's names (128 bytes = 64 chars) and
// the WiiU FileInfo header (256 bytes = 128 chars).
func (c *Cursor) ReadWStringFixed(byteLen int) (string, error) {
	raw, err := c.ReadSlice(byteLen)
	if err != nil {
		return "", err
	}
	return c.order.decodeUTF16Trimmed(raw)
}

func (o Order) decodeUTF16Trimmed(raw []byte) (string, error) {
	// Trim at the first NUL code unit (2 zero bytes at a code-unit boundary)
	// rather than decoding the trailing padding, since padding can contain
	// an odd leftover byte that would otherwise fail UTF-16 decoding.
	n := len(raw) - (len(raw) % 2)
	end := n
	for i := 0; i+1 < n; i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			end = i
			break
		}
	}
	s, err := o.utf16Encoding().NewDecoder().Bytes(raw[:end])
	if err != nil {
		return "", lceerr.New(lceerr.Encoding, "Cursor.decodeUTF16Trimmed", err)
	}
	return string(s), nil
}

// ReadUtf32Fixed reads exactly byteLen bytes of little-endian UTF-32 code
// units (NUL-padded) and returns the decoded string up to the first NUL
// code unit. Used for the Switch FileInfo header (512 bytes = 128 chars).
//
// golang.org/x/text does not ship a UTF-32 codec exercised anywhere in this
// module's dependency pack, so this is a deliberate, narrow standard-library
// fallback.
func (c *Cursor) ReadUtf32Fixed(byteLen int) (string, error) {
	raw, err := c.ReadSlice(byteLen)
	if err != nil {
		return "", err
	}
	n := len(raw) - (len(raw) % 4)
	runes := make([]rune, 0, n/4)
	for i := 0; i+3 < n; i += 4 {
		cp := uint32(raw[i]) | uint32(raw[i+1])<<8 | uint32(raw[i+2])<<16 | uint32(raw[i+3])<<24
		if cp == 0 {
			break
		}
		if cp > 0x10FFFF {
			return "", lceerr.New(lceerr.Encoding, "Cursor.ReadUtf32Fixed", nil)
		}
		runes = append(runes, rune(cp))
	}
	return string(runes), nil
}
