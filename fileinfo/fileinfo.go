// Package fileinfo decodes and encodes the per-console "file info" envelope:
// an optional fixed-width folder-name header followed by the thumbnail PNG
// and its 4J tEXt metadata.
package fileinfo

import (
	"io"

	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
	"github.com/lce-tools/lcesave/thumbnail"
)

// HeaderKind selects the fixed-width folder-name header, if any, that
// precedes the PNG payload for a given console.
type HeaderKind int

const (
	HeaderNone HeaderKind = iota
	HeaderWiiU
	HeaderSwitch
)

const (
	wiiuHeaderBytes   = 256
	switchHeaderBytes = 512
	switchTrailerSize = 8
)

const defaultBaseSaveName = "converted by LCEditor"

// FileInfo is the decoded envelope: the thumbnail metadata, the opaque
// image bytes, and (Switch only) the trailing bytes nobody has documented
// the meaning of but every save still carries.
type FileInfo struct {
	thumbnail.Metadata
	Thumbnail     []byte
	SwitchTrailer [switchTrailerSize]byte
}

// LoadDefaults fills in the fields a freshly converted save needs when the
// source console never populated them.
func (fi *FileInfo) LoadDefaults() {
	if fi.BaseSaveName == "" {
		fi.BaseSaveName = defaultBaseSaveName
	}
}

// Read decodes folderName (when header != HeaderNone) and the thumbnail
// envelope from c.
func Read(c *cursor.Cursor, header HeaderKind) (fi *FileInfo, folderName string, err error) {
	const op = "fileinfo.Read"

	fi = &FileInfo{}
	switch header {
	case HeaderWiiU:
		c.SetOrder(cursor.LittleEndian)
		folderName, err = c.ReadWStringFixed(wiiuHeaderBytes)
		if err != nil {
			return nil, "", lceerr.New(lceerr.OutOfBounds, op, err)
		}
	case HeaderSwitch:
		folderName, err = c.ReadUtf32Fixed(switchHeaderBytes)
		if err != nil {
			return nil, "", lceerr.New(lceerr.OutOfBounds, op, err)
		}
		trailer, err := c.ReadSlice(switchTrailerSize)
		if err != nil {
			return nil, "", lceerr.New(lceerr.OutOfBounds, op, err)
		}
		copy(fi.SwitchTrailer[:], trailer)
	case HeaderNone:
	default:
		return nil, "", lceerr.New(lceerr.InvalidArgument, op, nil)
	}

	image, meta, err := thumbnail.Read(c)
	if err != nil {
		return nil, "", lceerr.New(lceerr.InvalidSave, op, err)
	}
	fi.Thumbnail = image
	fi.Metadata = meta
	return fi, folderName, nil
}

// Write encodes the envelope for header, writing folderName into the
// fixed-width header (when header != HeaderNone) and the thumbnail PNG
// after it. includeBaseSaveName controls whether the 4J_BASESAVENAME key
// is emitted, matching the source console's behavior.
func Write(fi *FileInfo, folderName string, header HeaderKind, includeBaseSaveName bool) ([]byte, error) {
	const op = "fileinfo.Write"

	w := cursor.NewWriter()
	switch header {
	case HeaderWiiU:
		w.SetOrder(cursor.LittleEndian)
		if err := w.WriteWStringFixed(folderName, wiiuHeaderBytes); err != nil {
			return nil, lceerr.New(lceerr.Encoding, op, err)
		}
	case HeaderSwitch:
		if err := w.WriteUtf32Fixed(folderName, switchHeaderBytes); err != nil {
			return nil, lceerr.New(lceerr.Encoding, op, err)
		}
		if err := w.WriteBytes(fi.SwitchTrailer[:]); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
	case HeaderNone:
	default:
		return nil, lceerr.New(lceerr.InvalidArgument, op, nil)
	}

	prefix, err := w.Bytes()
	if err != nil {
		return nil, lceerr.New(lceerr.InvalidArgument, op, err)
	}

	image := fi.Thumbnail
	if len(image) == 0 {
		// A FileInfo with no image still gets the PNG signature so that
		// Read accepts the envelope it produces.
		image = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	}
	return thumbnail.Write(append(prefix, image...), fi.Metadata, includeBaseSaveName), nil
}

// ReadCacheFile decodes a PS Vita CACHE.BIN: a bare thumbnail PNG with no
// folder-name header, stored as its own file alongside a save folder named
// folderName.
func ReadCacheFile(r io.Reader, folderName string) (*FileInfo, error) {
	const op = "fileinfo.ReadCacheFile"

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	c := cursor.New(raw)
	fi, _, err := Read(c, HeaderNone)
	if err != nil {
		return nil, lceerr.New(lceerr.InvalidSave, op, err)
	}
	if fi.BaseSaveName == "" {
		fi.BaseSaveName = folderName
	}
	return fi, nil
}
