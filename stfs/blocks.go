package stfs

import (
	"github.com/lce-tools/lcesave/lceerr"
)

const (
	blockSize        = 0x1000
	maxLevel0Entries = 0xAA
	maxLevel1Entries = 0x70E4
	maxLevel2Entries = 0x4AF768
	hashEntryBytes   = 24
)

// blockStep returns the level-0 and level-1 hash table spacing constants
// for the given gender (0=female, 1=male).
func blockStep(gender int) (step0, step1 int) {
	if gender == 1 {
		return 0xAC, 0x723A
	}
	return 0xAB, 0x718F
}

// Package is a parsed STFS container: its header, top hash table, and file
// listing tree, bound to the raw backing buffer every block address is
// computed against.
type Package struct {
	raw                   []byte
	Header                *Header
	gender                int
	step0, step1          int
	firstHashTableAddress int
	topLevel              int
	topTable              []HashEntry
	Root                  *Node
}

// HashEntry is one 24-byte hash table record.
type HashEntry struct {
	Hash      [20]byte
	Status    uint8
	NextBlock uint32 // 24-bit
}

func topLevelFor(allocated uint32) (int, error) {
	switch {
	case allocated <= maxLevel0Entries:
		return 0, nil
	case allocated <= maxLevel1Entries:
		return 1, nil
	case allocated <= maxLevel2Entries:
		return 2, nil
	default:
		return 0, lceerr.New(lceerr.TooManyBlocks, "stfs.topLevelFor", nil)
	}
}

// backingData maps logical block number b to its data block index in the
// backing file, not counting the firstHashTableAddress offset.
func backingData(b, gender int) int {
	g := gender
	t := ((b+0xAA)/0xAA)<<g + b
	switch {
	case b < 0xAA:
		return t
	case b < 0x70E4:
		return t + ((b+0x70E4)/0x70E4)<<g
	default:
		return (1 << g) + t + ((b+0x70E4)/0x70E4)<<g
	}
}

// BlockToAddress returns the absolute byte address of data block b.
func (p *Package) BlockToAddress(b int) int {
	return backingData(b, p.gender)*blockSize + p.firstHashTableAddress
}

func (p *Package) hashBlockLevel0(b int) int {
	if b < maxLevel0Entries {
		return 0
	}
	n := (b/maxLevel0Entries)*p.step0 + ((b/maxLevel1Entries)+1)<<p.gender
	if b/maxLevel1Entries == 0 {
		return n
	}
	return n + (1 << p.gender)
}

func (p *Package) hashBlockLevel1(b int) int {
	if b < maxLevel1Entries {
		return p.step0
	}
	return (1 << p.gender) + (b/maxLevel1Entries)*p.step1
}

func (p *Package) hashBlockLevel2() int {
	return p.step1
}

// GetHashAddressOfBlock returns the absolute byte address of the hash
// entry that covers data block b, at the given tree level (0, 1, or 2).
func (p *Package) GetHashAddressOfBlock(b, level int) int {
	var hashBlock int
	switch level {
	case 0:
		hashBlock = p.hashBlockLevel0(b)
	case 1:
		hashBlock = p.hashBlockLevel1(b)
	default:
		hashBlock = p.hashBlockLevel2()
	}

	addr := hashBlock*blockSize + p.firstHashTableAddress + (b%maxLevel0Entries)*hashEntryBytes

	switch level {
	case 0:
		addr += int(p.Header.VolumeDescriptor.BlockSeparation&2) << 0xB
	case 1:
		if idx := b / maxLevel0Entries; idx < len(p.topTable) {
			addr += int(p.topTable[idx].Status&0x40) << 6
		}
	default:
		idx := b / maxLevel1Entries
		if idx < len(p.topTable) {
			addr += int(p.topTable[idx].Status&0x40) << 6
		}
	}
	return addr
}

// GetHashTableSkipSize returns the number of bytes of hash table to skip
// when a sequential read crosses into a hash block at absolute address a.
func (p *Package) GetHashTableSkipSize(a int) int {
	t := (a - p.firstHashTableAddress) / blockSize
	for {
		switch {
		case t == 0:
			return blockSize << p.gender
		case t == p.step1:
			return 0x3000 << p.gender
		case t > p.step1:
			t -= p.step1 + (1 << p.gender)
			continue
		case t == p.step0 || t%p.step1 == 0:
			return 0x2000 << p.gender
		default:
			return blockSize << p.gender
		}
	}
}
