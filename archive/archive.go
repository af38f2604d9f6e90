// Package archive implements the console-agnostic inner "file listing"
// archive: a 12-byte header, a run of file payloads, and a trailing
// directory of fixed 144-byte entries.
package archive

import (
	"strings"
	"unicode/utf16"

	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

const (
	headerBytes    = 12
	nameBytes      = 128
	directoryBytes = nameBytes + 4 + 4 + 8
	maxNameRunes   = 64
)

// Bucket classifies a File by name pattern.
type Bucket int

const (
	BucketUnknown Bucket = iota
	BucketLevel
	BucketVillage
	BucketMaps
	BucketStructures
	BucketGRF
	BucketNetherRegions
	BucketEndRegions
	BucketOverworldRegions
	BucketPlayers
)

// File is one entry of the archive: its directory metadata plus payload.
type File struct {
	Name      string
	Size      uint32
	Offset    uint32
	Timestamp uint64
	Payload   []byte
	Bucket    Bucket
}

// Listing is a parsed archive: the version pair plus every file, already
// classified into buckets.
type Listing struct {
	OldestVersion  uint16
	CurrentVersion uint16
	AllFiles       []*File

	OverworldRegions []*File
	NetherRegions    []*File
	EndRegions       []*File
	Level            []*File
	Maps             []*File
	Village          []*File
	Structures       []*File
	GRF              []*File
	Players          []*File
}

func classify(name string) Bucket {
	switch {
	case name == "level.dat":
		return BucketLevel
	case name == "data/villages.dat":
		return BucketVillage
	case strings.HasPrefix(name, "data/map_"):
		return BucketMaps
	case strings.HasPrefix(name, "data/"):
		return BucketStructures
	case strings.HasSuffix(name, ".grf"):
		return BucketGRF
	case strings.HasPrefix(name, "DIM-1") && strings.HasSuffix(name, ".mcr"):
		return BucketNetherRegions
	case strings.HasPrefix(name, "DIM1") && strings.HasSuffix(name, ".mcr"):
		return BucketEndRegions
	case strings.HasPrefix(name, "r") && strings.HasSuffix(name, ".mcr"):
		return BucketOverworldRegions
	case strings.HasPrefix(name, "players/"), !strings.Contains(name, "/"):
		return BucketPlayers
	default:
		return BucketUnknown
	}
}

func (l *Listing) file(f *File) {
	l.AllFiles = append(l.AllFiles, f)
	switch f.Bucket {
	case BucketLevel:
		l.Level = append(l.Level, f)
	case BucketVillage:
		l.Village = append(l.Village, f)
	case BucketMaps:
		l.Maps = append(l.Maps, f)
	case BucketStructures:
		l.Structures = append(l.Structures, f)
	case BucketGRF:
		l.GRF = append(l.GRF, f)
	case BucketNetherRegions:
		l.NetherRegions = append(l.NetherRegions, f)
	case BucketEndRegions:
		l.EndRegions = append(l.EndRegions, f)
	case BucketOverworldRegions:
		l.OverworldRegions = append(l.OverworldRegions, f)
	case BucketPlayers:
		l.Players = append(l.Players, f)
	case BucketUnknown:
		// kept only in AllFiles; no warning is logged.
	}
}

// Read parses a full archive blob.
func Read(raw []byte) (*Listing, error) {
	const op = "archive.Read"

	c := cursor.New(raw)
	c.SetOrder(cursor.LittleEndian)

	indexOffset, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	fileCount, err := c.ReadUint32()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	oldest, err := c.ReadUint16()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	current, err := c.ReadUint16()
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}

	listing := &Listing{OldestVersion: oldest, CurrentVersion: current}

	for i := uint32(0); i < fileCount; i++ {
		if err := c.Seek(int(indexOffset) + int(i)*directoryBytes); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		name, err := c.ReadWStringFixed(nameBytes)
		if err != nil {
			return nil, lceerr.New(lceerr.Encoding, op, err)
		}
		size, err := c.ReadUint32()
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		offset, err := c.ReadUint32()
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		timestamp, err := c.ReadUint64()
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		if size == 0 {
			continue
		}

		if err := c.Seek(int(offset)); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		payload, err := c.ReadSlice(int(size))
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}

		f := &File{
			Name:      name,
			Size:      size,
			Offset:    offset,
			Timestamp: timestamp,
			Payload:   append([]byte(nil), payload...),
			Bucket:    classify(name),
		}
		listing.file(f)
	}

	return listing, nil
}

// Write serializes the archive in AllFiles order: header, payloads (each
// offset recorded as it is emitted), then the directory.
func (l *Listing) Write() ([]byte, error) {
	const op = "archive.Write"

	for _, f := range l.AllFiles {
		if len(utf16.Encode([]rune(f.Name))) > maxNameRunes {
			return nil, lceerr.New(lceerr.InvalidArgument, op, nil)
		}
	}

	var totalPayload int
	for _, f := range l.AllFiles {
		totalPayload += len(f.Payload)
	}
	fileInfoOffset := headerBytes + totalPayload
	fileCount := len(l.AllFiles)
	totalSize := fileInfoOffset + directoryBytes*fileCount

	w := cursor.NewWriter()
	w.SetOrder(cursor.LittleEndian)

	if err := w.WriteUint32(uint32(fileInfoOffset)); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteUint32(uint32(fileCount)); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteUint16(l.OldestVersion); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	if err := w.WriteUint16(l.CurrentVersion); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}

	offsets := make([]uint32, fileCount)
	for i, f := range l.AllFiles {
		offsets[i] = uint32(w.Position())
		if err := w.WriteBytes(f.Payload); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
	}

	for i, f := range l.AllFiles {
		if err := w.WriteWStringFixed(f.Name, nameBytes); err != nil {
			return nil, lceerr.New(lceerr.Encoding, op, err)
		}
		if err := w.WriteUint32(uint32(len(f.Payload))); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		if err := w.WriteUint32(offsets[i]); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		if err := w.WriteUint64(f.Timestamp); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
	}

	out, err := w.Bytes()
	if err != nil {
		return nil, lceerr.New(lceerr.InvalidArgument, op, err)
	}
	if len(out) != totalSize {
		return nil, lceerr.New(lceerr.InvalidArgument, op, nil)
	}
	return out, nil
}
