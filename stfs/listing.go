package stfs

import (
	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/lceerr"
)

const (
	rootEntryIndex    = 0xFFFF
	entriesPerBlock   = 64
	listingEntryBytes = 64
)

// FileEntry is one STFS file-table record.
type FileEntry struct {
	EntryIndex       uint32
	Name             string
	Flags            uint8 // bit0 = consecutive, bit1 = directory
	BlocksForFile    uint32
	StartingBlockNum uint32
	PathIndicator    uint16
	FileSize         uint32
	CreatedTimeStamp uint32
	AccessTimeStamp  uint32
}

func (fe *FileEntry) IsDirectory() bool   { return fe.Flags&2 != 0 }
func (fe *FileEntry) IsConsecutive() bool { return fe.Flags&1 != 0 }

// Node is one directory level of the reconstructed file listing tree.
type Node struct {
	Folder   *FileEntry // synthetic entry with EntryIndex 0xFFFF for the root
	Files    []*FileEntry
	Children []*Node
}

func (p *Package) readFileListing(c *cursor.Cursor) ([]*FileEntry, error) {
	const op = "stfs.readFileListing"
	c.SetOrder(cursor.BigEndian)

	var entries []*FileEntry
	block := p.Header.VolumeDescriptor.FileTableBlockNum
	for i := uint16(0); i < p.Header.VolumeDescriptor.FileTableBlockCount; i++ {
		addr := p.BlockToAddress(int(block))
		if err := c.Seek(addr); err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}

		stop := false
		for slot := 0; slot < entriesPerBlock; slot++ {
			if err := c.Seek(addr + slot*listingEntryBytes); err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			name, err := c.ReadFixedASCII(40)
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			nameLen, err := c.ReadUint8()
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			if nameLen&0x3F == 0 {
				continue
			}
			if name == "" {
				stop = true
				break
			}

			blocksForFile, err := c.ReadUint24(true)
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			if err := c.Skip(3); err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			startingBlockNum, err := c.ReadUint24(true)
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			pathIndicator, err := c.ReadUint16()
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			fileSize, err := c.ReadUint32()
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			created, err := c.ReadUint32()
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}
			accessed, err := c.ReadUint32()
			if err != nil {
				return nil, lceerr.New(lceerr.OutOfBounds, op, err)
			}

			entries = append(entries, &FileEntry{
				EntryIndex:       uint32(i)*entriesPerBlock + uint32(slot),
				Name:             name,
				Flags:            nameLen >> 6,
				BlocksForFile:    blocksForFile,
				StartingBlockNum: startingBlockNum,
				PathIndicator:    pathIndicator,
				FileSize:         fileSize,
				CreatedTimeStamp: created,
				AccessTimeStamp:  accessed,
			})
		}
		if stop {
			break
		}

		he, err := p.hashEntryForBlock(int(block))
		if err != nil {
			return nil, lceerr.New(lceerr.OutOfBounds, op, err)
		}
		block = he.NextBlock
	}

	return entries, nil
}

// buildTree reconstructs the folder tree from the flat entry list, seeding
// the root with the synthetic entryIndex 0xFFFF.
func buildTree(entries []*FileEntry) *Node {
	root := &Node{Folder: &FileEntry{EntryIndex: rootEntryIndex, Flags: 2}}
	nodes := map[uint32]*Node{rootEntryIndex: root}

	for _, e := range entries {
		if e.IsDirectory() {
			nodes[e.EntryIndex] = &Node{Folder: e}
		}
	}
	for idx, n := range nodes {
		if idx == rootEntryIndex {
			continue
		}
		parent, ok := nodes[uint32(n.Folder.PathIndicator)]
		if !ok {
			parent = root
		}
		parent.Children = append(parent.Children, n)
	}
	for _, e := range entries {
		if e.IsDirectory() {
			continue
		}
		parent, ok := nodes[uint32(e.PathIndicator)]
		if !ok {
			parent = root
		}
		parent.Files = append(parent.Files, e)
	}
	return root
}

// FindSavegame depth-first searches the tree for a file entry named
// "savegame.dat".
func (p *Package) FindSavegame() (*FileEntry, error) {
	var found *FileEntry
	var walk func(n *Node)
	walk = func(n *Node) {
		if found != nil {
			return
		}
		for _, f := range n.Files {
			if f.Name == "savegame.dat" {
				found = f
				return
			}
		}
		for _, child := range n.Children {
			walk(child)
			if found != nil {
				return
			}
		}
	}
	walk(p.Root)
	if found == nil {
		return nil, lceerr.New(lceerr.NotASavegame, "stfs.FindSavegame", nil)
	}
	return found, nil
}
