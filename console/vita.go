package console

import (
	"github.com/lce-tools/lcesave/archive"
	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

const vitaSizeAdjustment = 0x0900

// vita is the PlayStation Vita outer container: a zero u32, an "adjusted
// size" u32 (the first four RLE output bytes plus vitaSizeAdjustment), and
// the RLE-compressed archive. The RLE codec itself is an external
// collaborator.
type vita struct {
	codec RLECodec
}

func Vita(codec RLECodec) Console { return vita{codec: codec} }

func (vita) Kind() Kind { return KindVita }

func (v vita) Read(raw []byte) (*archive.Listing, error) {
	const op = "console.Vita.Read"

	if v.codec == nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, nil)
	}

	c := cursor.New(raw)
	c.SetOrder(cursor.LittleEndian)
	if _, err := c.ReadUint32(); err != nil { // zero prefix
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	adjustedSize, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	decompressedSize := int(adjustedSize) - vitaSizeAdjustment
	if decompressedSize < 0 {
		return nil, lceerr.New(lceerr.InvalidSave, op, nil)
	}

	compressed, err := c.ReadSlice(c.Remaining())
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	decompressed, err := v.codec.Decompress(compressed, decompressedSize)
	if err != nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, err)
	}
	return archive.Read(decompressed)
}

func (v vita) Write(listing *archive.Listing) ([]byte, error) {
	const op = "console.Vita.Write"

	if v.codec == nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, nil)
	}

	blob, err := listing.Write()
	if err != nil {
		return nil, err
	}
	compressed, err := v.codec.Compress(blob)
	if err != nil {
		return nil, lceerr.New(lceerr.DecompressFailed, op, err)
	}

	var leading uint32
	if len(compressed) >= 4 {
		c := cursor.New(compressed[:4])
		c.SetOrder(cursor.LittleEndian)
		leading, _ = c.ReadUint32()
	}

	w := cursor.NewWriter()
	w.SetOrder(cursor.LittleEndian)
	if err := w.WriteUint32(0); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteUint32(leading + vitaSizeAdjustment); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteBytes(compressed); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	return w.Bytes()
}
