package console

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/lce-tools/lcesave/archive"
	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

// zlibEnvelope is shared by WiiU, Switch, and PS4: an 8-byte big-endian
// original-size prefix followed by a zlib stream that decompresses to
// exactly that many bytes.
type zlibEnvelope struct {
	kind Kind
}

func (e zlibEnvelope) Kind() Kind { return e.kind }

func (e zlibEnvelope) Read(raw []byte) (*archive.Listing, error) {
	const op = "console.zlibEnvelope.Read"

	c := cursor.New(raw)
	c.SetOrder(cursor.BigEndian)
	originalSize, err := c.ReadUint64()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	compressed, err := c.ReadSlice(c.Remaining())
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, err)
	}
	defer zr.Close()

	decompressed := make([]byte, originalSize)
	if _, err := io.ReadFull(zr, decompressed); err != nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, err)
	}

	return archive.Read(decompressed)
}

func (e zlibEnvelope) Write(listing *archive.Listing) ([]byte, error) {
	const op = "console.zlibEnvelope.Write"

	blob, err := listing.Write()
	if err != nil {
		return nil, err
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(blob); err != nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, err)
	}
	if err := zw.Close(); err != nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, err)
	}

	w := cursor.NewWriter()
	w.SetOrder(cursor.BigEndian)
	if err := w.WriteUint64(uint64(len(blob))); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteBytes(compressed.Bytes()); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	return w.Bytes()
}

// WiiU is the Wii U outer container: zlib-compressed archive with an
// 8-byte big-endian size prefix.
func WiiU() Console { return zlibEnvelope{kind: KindWiiU} }

// Switch is the Nintendo Switch outer container, structurally identical to
// WiiU's.
func Switch() Console { return zlibEnvelope{kind: KindSwitch} }

// PS4 is the PlayStation 4 outer container, structurally identical to
// WiiU's — detection alone (parent directory "savedata0") distinguishes it
// from Switch.
func PS4() Console { return zlibEnvelope{kind: KindPS4} }
