// Package thumbnail implements the 4J-specific tEXt metadata embedded in
// the PNG thumbnail carried by every console save: world seed, load count,
// host options, texture pack, extra data, explored-chunk count, and the
// base save name.
package thumbnail

import (
	"hash/crc32"
	"strconv"
	"strings"

	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

var pngMagic = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// CanonicalIEND is the fixed 12-byte IEND chunk every PNG this module
// writes ends with.
var CanonicalIEND = [12]byte{
	0x00, 0x00, 0x00, 0x00,
	0x49, 0x45, 0x4E, 0x44,
	0xAE, 0x42, 0x60, 0x82,
}

// Metadata is the decoded 4J key set.
type Metadata struct {
	DisplaySeed       int64
	NumLoads          int64
	HostOptions       int64
	TexturePack       int64
	ExtraData         int64
	NumExploredChunks int64
	BaseSaveName      string
}

const (
	keySeed           = "4J_SEED"
	keyLoads          = "4J_#LOADS"
	keyHostOptions    = "4J_HOSTOPTIONS"
	keyTexturePack    = "4J_TEXTUREPACK"
	keyExtraData      = "4J_EXTRADATA"
	keyExploredChunks = "4J_EXPLOREDCHUNKS"
	keyBaseSaveName   = "4J_BASESAVENAME"
)

// Read parses a PNG from c (positioned at its 8-byte magic) up to and
// including IEND, returning the opaque image bytes (everything before the
// first tEXt chunk, or before IEND if there is none) and the decoded 4J
// metadata.
func Read(c *cursor.Cursor) (image []byte, meta Metadata, err error) {
	const op = "thumbnail.Read"
	start := c.Position()

	magic, err := c.ReadSlice(8)
	if err != nil {
		return nil, Metadata{}, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	for i := range pngMagic {
		if magic[i] != pngMagic[i] {
			return nil, Metadata{}, lceerr.New(lceerr.InvalidSave, op, nil)
		}
	}

	imageEnd := -1
	c.SetOrder(cursor.BigEndian)
	for {
		if c.Eof() {
			return nil, Metadata{}, lceerr.New(lceerr.OutOfBounds, op, nil)
		}
		chunkStart := c.Position()
		length, err := c.ReadUint32()
		if err != nil {
			return nil, Metadata{}, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		typ, err := c.ReadFixedASCII(4)
		if err != nil {
			return nil, Metadata{}, lceerr.New(lceerr.OutOfBounds, op, err)
		}

		if typ == "IEND" {
			if imageEnd == -1 {
				imageEnd = chunkStart
			}
			break
		}
		if typ != "tEXt" {
			if err := c.Skip(int(length) + 4); err != nil {
				return nil, Metadata{}, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			continue
		}

		if imageEnd == -1 {
			imageEnd = chunkStart
		}
		payload, err := c.ReadSlice(int(length))
		if err != nil {
			return nil, Metadata{}, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		meta = ParseTextChunk(payload, meta)
		if _, err := c.ReadUint32(); err != nil { // CRC, not validated
			return nil, Metadata{}, lceerr.New(lceerr.OutOfBounds, op, err)
		}
	}

	image = append([]byte(nil), c.Bytes()[start:imageEnd]...)
	return image, meta, nil
}

// ParseTextChunk decodes the keyword/value runs inside a tEXt chunk's
// payload (the bytes between the 4-byte type and the trailing CRC),
// merging them into base. Unknown keywords are ignored.
func ParseTextChunk(payload []byte, base Metadata) Metadata {
	meta := base
	i := 0
	n := len(payload)
	for i < n {
		for i < n && payload[i] == 0 {
			i++
		}
		keyStart := i
		for i < n && payload[i] != 0 {
			i++
		}
		keyword := string(payload[keyStart:i])

		for i < n && payload[i] == 0 {
			i++
		}
		textStart := i
		for i < n && payload[i] != 0 {
			i++
		}
		text := string(payload[textStart:i])

		if keyword == "" {
			continue
		}
		switch keyword {
		case keySeed:
			meta.DisplaySeed = parseDecimal(text)
		case keyLoads:
			meta.NumLoads = parseDecimal(text)
		case keyHostOptions:
			meta.HostOptions = parseHex(text)
		case keyTexturePack:
			meta.TexturePack = parseHex(text)
		case keyExtraData:
			meta.ExtraData = parseHex(text)
		case keyExploredChunks:
			meta.NumExploredChunks = parseDecimal(text)
		case keyBaseSaveName:
			meta.BaseSaveName = text
		}
	}
	return meta
}

func parseHex(s string) int64 {
	var v int64
	for _, c := range []byte(s) {
		v = v*16 + int64(hexDigit(c))
	}
	return v
}

func hexDigit(c byte) int64 {
	switch {
	case c >= '0' && c <= '9':
		return int64(c - '0')
	case c >= 'a' && c <= 'f':
		return int64(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int64(c-'A') + 10
	default:
		return 0
	}
}

func parseDecimal(s string) int64 {
	neg := false
	i := 0
	if len(s) > 0 && s[0] == '-' {
		neg = true
		i = 1
	}
	var v int64
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v
}

func hexString(v int64) string {
	if v == 0 {
		return "0"
	}
	return strings.ToLower(strconv.FormatInt(v, 16))
}

// WriteTextChunk emits the full tEXt chunk (length, type, payload, CRC) for
// m, in the fixed emission order the console save format expects: seed,
// hostoptions, texturepack, extradata, #loads, explored chunks (only if
// nonzero), and base save name (only if includeBaseSaveName).
func WriteTextChunk(m Metadata, includeBaseSaveName bool) []byte {
	var payload []byte
	add := func(keyword, value string) {
		if len(payload) > 0 {
			payload = append(payload, 0)
		}
		payload = append(payload, keyword...)
		payload = append(payload, 0)
		payload = append(payload, value...)
	}

	add(keySeed, strconv.FormatInt(m.DisplaySeed, 10))
	add(keyHostOptions, hexString(m.HostOptions))
	add(keyTexturePack, hexString(m.TexturePack))
	add(keyExtraData, hexString(m.ExtraData))
	add(keyLoads, strconv.FormatInt(m.NumLoads, 10))
	if m.NumExploredChunks != 0 {
		add(keyExploredChunks, strconv.FormatInt(m.NumExploredChunks, 10))
	}
	if includeBaseSaveName {
		add(keyBaseSaveName, m.BaseSaveName)
	}

	chunk := make([]byte, 0, 4+4+len(payload)+4)
	var lenBuf [4]byte
	putUint32BE(lenBuf[:], uint32(len(payload)))
	chunk = append(chunk, lenBuf[:]...)
	typeAndPayload := append([]byte("tEXt"), payload...)
	chunk = append(chunk, typeAndPayload...)
	var crcBuf [4]byte
	putUint32BE(crcBuf[:], crc32.ChecksumIEEE(typeAndPayload))
	chunk = append(chunk, crcBuf[:]...)
	return chunk
}

// Write appends a fresh tEXt chunk (built from m) and the canonical IEND
// chunk to image, which must be PNG bytes up to (but not including) any
// tEXt/IEND chunk.
func Write(image []byte, m Metadata, includeBaseSaveName bool) []byte {
	out := make([]byte, 0, len(image)+256)
	out = append(out, image...)
	out = append(out, WriteTextChunk(m, includeBaseSaveName)...)
	out = append(out, CanonicalIEND[:]...)
	return out
}

func putUint32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
