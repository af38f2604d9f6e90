package cursor

import (
	"io"

	"github.com/orcaman/writerseeker"

	"github.com/lce-tools/lcesave/lceerr"
)

// Writer is the write-side counterpart to Cursor. It is backed by an
// in-memory io.WriteSeeker so callers can write a placeholder value (a
// chunk length, a directory offset), keep writing, and later seek back and
// patch the placeholder once the real value is known. The console and
// archive writers in this module compute their header fields up front and
// write sequentially.
type Writer struct {
	ws    writerseeker.WriterSeeker
	order Order
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Order() Order     { return w.order }
func (w *Writer) SetOrder(o Order) { w.order = o }

// Position returns the writer's current offset.
func (w *Writer) Position() int64 {
	pos, _ := w.ws.Seek(0, io.SeekCurrent)
	return pos
}

// Seek moves the write cursor to an absolute offset, for backpatching.
func (w *Writer) Seek(abs int64) error {
	_, err := w.ws.Seek(abs, io.SeekStart)
	if err != nil {
		return lceerr.New(lceerr.OutOfBounds, "Writer.Seek", err)
	}
	return nil
}

// Bytes materializes everything written so far.
func (w *Writer) Bytes() ([]byte, error) {
	r, err := w.ws.BytesReader()
	if err != nil {
		return nil, lceerr.New(lceerr.InvalidArgument, "Writer.Bytes", err)
	}
	return io.ReadAll(r)
}

func (w *Writer) WriteBytes(p []byte) error {
	if _, err := w.ws.Write(p); err != nil {
		return lceerr.New(lceerr.OutOfBounds, "Writer.WriteBytes", err)
	}
	return nil
}

func (w *Writer) WriteUint8(v uint8) error { return w.WriteBytes([]byte{v}) }
func (w *Writer) WriteInt8(v int8) error   { return w.WriteUint8(uint8(v)) }

func (w *Writer) WriteUint16(v uint16) error {
	var b [2]byte
	w.order.byteOrder().PutUint16(b[:], v)
	return w.WriteBytes(b[:])
}
func (w *Writer) WriteInt16(v int16) error { return w.WriteUint16(uint16(v)) }

// WriteUint24 writes a 24-bit integer, big-endian unless little is set.
func (w *Writer) WriteUint24(v uint32, little bool) error {
	var b [3]byte
	if little {
		b[0], b[1], b[2] = byte(v), byte(v>>8), byte(v>>16)
	} else {
		b[0], b[1], b[2] = byte(v>>16), byte(v>>8), byte(v)
	}
	return w.WriteBytes(b[:])
}

func (w *Writer) WriteUint32(v uint32) error {
	var b [4]byte
	w.order.byteOrder().PutUint32(b[:], v)
	return w.WriteBytes(b[:])
}
func (w *Writer) WriteInt32(v int32) error { return w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint64(v uint64) error {
	var b [8]byte
	w.order.byteOrder().PutUint64(b[:], v)
	return w.WriteBytes(b[:])
}
func (w *Writer) WriteInt64(v int64) error { return w.WriteUint64(uint64(v)) }

// WriteWStringPrefixed writes a u16 character count followed by the UTF-16
// encoding of s (per the writer's current Order).
func (w *Writer) WriteWStringPrefixed(s string) error {
	enc, err := w.order.utf16Encoding().NewEncoder().String(s)
	if err != nil {
		return lceerr.New(lceerr.Encoding, "Writer.WriteWStringPrefixed", err)
	}
	if err := w.WriteUint16(uint16(len(enc) / 2)); err != nil {
		return err
	}
	return w.WriteBytes([]byte(enc))
}

// WriteWStringFixed encodes s as UTF-16 (per Order) and writes exactly
// byteLen bytes, NUL-padding or truncating as needed.
func (w *Writer) WriteWStringFixed(s string, byteLen int) error {
	enc, err := w.order.utf16Encoding().NewEncoder().String(s)
	if err != nil {
		return lceerr.New(lceerr.Encoding, "Writer.WriteWStringFixed", err)
	}
	buf := make([]byte, byteLen)
	copy(buf, []byte(enc))
	return w.WriteBytes(buf)
}

// WriteUtf32Fixed encodes s as little-endian UTF-32 and writes exactly
// byteLen bytes, NUL-padding or truncating as needed.
func (w *Writer) WriteUtf32Fixed(s string, byteLen int) error {
	buf := make([]byte, byteLen)
	i := 0
	for _, r := range s {
		if i+4 > byteLen {
			break
		}
		cp := uint32(r)
		buf[i], buf[i+1], buf[i+2], buf[i+3] = byte(cp), byte(cp>>8), byte(cp>>16), byte(cp>>24)
		i += 4
	}
	return w.WriteBytes(buf)
}
