// Package stfs reads the Xbox 360 Secure Transacted File System container
// used by .bin saves: a fixed header, a volume descriptor, a three-level
// hash tree, and a file listing whose data blocks are scattered among
// hash-table blocks that a sequential reader must skip.
package stfs

import (
	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

const (
	offHeaderSize       = 0x0340
	offContentType      = 0x0344
	offFileSystem       = 0x03A9
	offVolumeDescriptor = 0x0379
	offDisplayName      = 0x0411
	offThumbnailSize    = 0x1712
	offTitleThumbnail   = 0x571A
	contentTypeSavegame = 1
	fileSystemSTFS      = 0
)

// VolumeDescriptor is the STFS volume descriptor embedded in the header.
type VolumeDescriptor struct {
	Size                  uint8
	BlockSeparation       uint8
	FileTableBlockCount   uint16
	FileTableBlockNum     uint32 // 24-bit on disk
	AllocatedBlockCount   uint32
	UnallocatedBlockCount uint32
}

// Gender returns 1 (male) when BlockSeparation's low bit is set, 0
// (female) otherwise.
func (vd VolumeDescriptor) Gender() int {
	return int(vd.BlockSeparation & 1)
}

// Header is the parsed BIN header plus volume descriptor and thumbnail
// payloads.
type Header struct {
	HeaderSize       uint32
	ContentType      uint32
	FileSystem       uint32
	VolumeDescriptor VolumeDescriptor
	DisplayName      string
	Thumbnail        []byte
	TitleThumbnail   []byte
}

// ReadHeader parses the fixed-offset BIN header from c.
func ReadHeader(c *cursor.Cursor) (*Header, error) {
	const op = "stfs.ReadHeader"
	c.SetOrder(cursor.BigEndian)

	h := &Header{}

	if err := c.Seek(offHeaderSize); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	headerSize, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	h.HeaderSize = headerSize

	if err := c.Seek(offContentType); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	contentType, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	h.ContentType = contentType
	if contentType != contentTypeSavegame {
		return nil, lceerr.New(lceerr.NotASavegame, op, nil)
	}

	if err := c.Seek(offFileSystem); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	fileSystem, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	h.FileSystem = fileSystem
	if fileSystem != fileSystemSTFS {
		return nil, lceerr.New(lceerr.NotSTFS, op, nil)
	}

	if err := c.Seek(offVolumeDescriptor); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	vd, err := readVolumeDescriptor(c)
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	h.VolumeDescriptor = vd

	if err := c.Seek(offDisplayName); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	name, err := c.ReadWStringPrefixed()
	if err != nil {
		return nil, lceerr.New(lceerr.Encoding, op, err)
	}
	h.DisplayName = name

	if err := c.Seek(offThumbnailSize); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	thumbnailSize, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if thumbnailSize != 0 {
		if err := c.Skip(4); err != nil { // alternate size, unused
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		thumb, err := c.ReadSlice(int(thumbnailSize))
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		h.Thumbnail = append([]byte(nil), thumb...)
	} else {
		titleThumbnailSize, err := c.ReadUint32()
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		if titleThumbnailSize != 0 {
			if err := c.Seek(offTitleThumbnail); err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			// The source reuses the earlier (zero) thumbnailImageSize as
			// the read length here; that reads zero bytes every time, so
			// titleThumbnailSize is used instead.
			thumb, err := c.ReadSlice(int(titleThumbnailSize))
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			h.TitleThumbnail = append([]byte(nil), thumb...)
		}
	}

	return h, nil
}

func readVolumeDescriptor(c *cursor.Cursor) (VolumeDescriptor, error) {
	var vd VolumeDescriptor

	size, err := c.ReadUint8()
	if err != nil {
		return vd, err
	}
	vd.Size = size

	if err := c.Skip(1); err != nil { // reserved
		return vd, err
	}

	sep, err := c.ReadUint8()
	if err != nil {
		return vd, err
	}
	vd.BlockSeparation = sep

	ftCount, err := c.ReadUint16()
	if err != nil {
		return vd, err
	}
	vd.FileTableBlockCount = ftCount

	ftBlock, err := c.ReadUint24(false)
	if err != nil {
		return vd, err
	}
	vd.FileTableBlockNum = ftBlock

	if err := c.Skip(20); err != nil { // top hash, not validated
		return vd, err
	}

	c.SetOrder(cursor.LittleEndian)

	allocated, err := c.ReadUint32()
	if err != nil {
		return vd, err
	}
	vd.AllocatedBlockCount = allocated

	unallocated, err := c.ReadUint32()
	if err != nil {
		return vd, err
	}
	vd.UnallocatedBlockCount = unallocated

	c.SetOrder(cursor.BigEndian)

	return vd, nil
}
