package stfs

import (
	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

var levelDivisor = [3]int{1, maxLevel0Entries, maxLevel1Entries}

// Open parses a full STFS BIN buffer: header, top hash table, and file
// listing tree.
func Open(raw []byte) (*Package, error) {
	const op = "stfs.Open"

	c := cursor.New(raw)
	header, err := ReadHeader(c)
	if err != nil {
		return nil, err
	}

	gender := header.VolumeDescriptor.Gender()
	step0, step1 := blockStep(gender)
	firstHashTableAddress := int(header.HeaderSize+0xFFF) &^ 0xFFF
	topLevel, err := topLevelFor(header.VolumeDescriptor.AllocatedBlockCount)
	if err != nil {
		return nil, lceerr.New(lceerr.TooManyBlocks, op, err)
	}

	p := &Package{
		raw:                   raw,
		Header:                header,
		gender:                gender,
		step0:                 step0,
		step1:                 step1,
		firstHashTableAddress: firstHashTableAddress,
		topLevel:              topLevel,
	}

	if err := p.loadTopTable(c); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}

	entries, err := p.readFileListing(c)
	if err != nil {
		return nil, err
	}
	p.Root = buildTree(entries)

	return p, nil
}

func (p *Package) loadTopTable(c *cursor.Cursor) error {
	allocated := int(p.Header.VolumeDescriptor.AllocatedBlockCount)
	count := ceilDiv(allocated, levelDivisor[p.topLevel])
	if count > maxLevel0Entries {
		count = maxLevel0Entries
	}

	addr := p.GetHashAddressOfBlock(0, p.topLevel)
	c.SetOrder(cursor.BigEndian)
	if err := c.Seek(addr); err != nil {
		return err
	}

	table := make([]HashEntry, count)
	for i := 0; i < count; i++ {
		hash, err := c.ReadSlice(20)
		if err != nil {
			return err
		}
		status, err := c.ReadUint8()
		if err != nil {
			return err
		}
		next, err := c.ReadUint24(false)
		if err != nil {
			return err
		}
		copy(table[i].Hash[:], hash)
		table[i].Status = status
		table[i].NextBlock = next
	}
	p.topTable = table
	return nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (p *Package) hashEntryForBlock(b int) (HashEntry, error) {
	if b >= int(p.Header.VolumeDescriptor.AllocatedBlockCount) || b >= 0xFFFFFF {
		return HashEntry{}, lceerr.New(lceerr.InvalidBlock, "stfs.hashEntryForBlock", nil)
	}
	addr := p.GetHashAddressOfBlock(b, 0)

	c := cursor.New(p.raw)
	c.SetOrder(cursor.BigEndian)
	if err := c.Seek(addr); err != nil {
		return HashEntry{}, err
	}
	hash, err := c.ReadSlice(20)
	if err != nil {
		return HashEntry{}, err
	}
	status, err := c.ReadUint8()
	if err != nil {
		return HashEntry{}, err
	}
	next, err := c.ReadUint24(false)
	if err != nil {
		return HashEntry{}, err
	}

	var he HashEntry
	copy(he.Hash[:], hash)
	he.Status = status
	he.NextBlock = next
	return he, nil
}

// Extract reads a file entry's full contents, following the consecutive or
// chained block layout its flags select.
func (p *Package) Extract(fe *FileEntry) ([]byte, error) {
	if fe.FileSize == 0 {
		return []byte{}, nil
	}

	c := cursor.New(p.raw)
	if fe.IsConsecutive() {
		return p.extractConsecutive(c, fe)
	}
	return p.extractChained(c, fe)
}

func (p *Package) extractConsecutive(c *cursor.Cursor, fe *FileEntry) ([]byte, error) {
	const op = "stfs.extractConsecutive"

	start := int(fe.StartingBlockNum)
	startAddr := p.BlockToAddress(start)
	if err := c.Seek(startAddr); err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}

	remaining := int(fe.FileSize)
	blocksUntilBoundary := (p.hashBlockLevel0(start) + p.step0) - ((startAddr - p.firstHashTableAddress) / blockSize)
	bytesUntilBoundary := blocksUntilBoundary * blockSize

	out := make([]byte, 0, remaining)
	if bytesUntilBoundary >= remaining {
		buf, err := c.ReadSlice(remaining)
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		return append(out, buf...), nil
	}

	prefix, err := c.ReadSlice(bytesUntilBoundary)
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	out = append(out, prefix...)
	remaining -= bytesUntilBoundary

	const stripe = 0xAA000
	for remaining > stripe {
		skip := p.GetHashTableSkipSize(c.Position())
		if err := c.Skip(skip); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		buf, err := c.ReadSlice(stripe)
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		out = append(out, buf...)
		remaining -= stripe
	}

	if remaining > 0 {
		skip := p.GetHashTableSkipSize(c.Position())
		if err := c.Skip(skip); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		buf, err := c.ReadSlice(remaining)
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		out = append(out, buf...)
	}

	return out, nil
}

func (p *Package) extractChained(c *cursor.Cursor, fe *FileEntry) ([]byte, error) {
	const op = "stfs.extractChained"

	out := make([]byte, 0, fe.FileSize)
	block := fe.StartingBlockNum
	wholeBlocks := int(fe.FileSize) / blockSize
	remainder := int(fe.FileSize) % blockSize

	for i := 0; i < wholeBlocks; i++ {
		addr := p.BlockToAddress(int(block))
		if err := c.Seek(addr); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		buf, err := c.ReadSlice(blockSize)
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		out = append(out, buf...)

		he, err := p.hashEntryForBlock(int(block))
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		block = he.NextBlock
	}

	if remainder > 0 {
		addr := p.BlockToAddress(int(block))
		if err := c.Seek(addr); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		buf, err := c.ReadSlice(remainder)
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		out = append(out, buf...)
	}

	return out, nil
}
