package console

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/lce-tools/lcesave/archive"
	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

// ps3 is the PlayStation 3 outer container: a 4-byte big-endian original
// size prefix followed by a zlib stream.
type ps3 struct{}

func PS3() Console { return ps3{} }

func (ps3) Kind() Kind { return KindPS3 }

func (ps3) Read(raw []byte) (*archive.Listing, error) {
	const op = "console.PS3.Read"

	c := cursor.New(raw)
	c.SetOrder(cursor.BigEndian)
	originalSize, err := c.ReadUint32()
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

func (ps3) Write(listing *archive.Listing) ([]byte, error) {
	const op = "console.PS3.Write"

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
	if err := w.WriteUint32(uint32(len(blob))); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteBytes(compressed.Bytes()); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	return w.Bytes()
}

// rpcs3 is the uncompressed PS3 variant: a 4-byte big-endian size prefix
// followed by the raw archive blob with no zlib stage.
type rpcs3 struct{}

func RPCS3() Console { return rpcs3{} }

func (rpcs3) Kind() Kind { return KindRPCS3 }

func (rpcs3) Read(raw []byte) (*archive.Listing, error) {
	const op = "console.RPCS3.Read"

	c := cursor.New(raw)
	c.SetOrder(cursor.BigEndian)
	size, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	payload, err := c.ReadSlice(int(size))
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	return archive.Read(payload)
}

func (rpcs3) Write(listing *archive.Listing) ([]byte, error) {
	const op = "console.RPCS3.Write"

	blob, err := listing.Write()
	if err != nil {
		return nil, err
	}
	w := cursor.NewWriter()
	w.SetOrder(cursor.BigEndian)
	if err := w.WriteUint32(uint32(len(blob))); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteBytes(blob); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	return w.Bytes()
}
