package stfs

import (
	"bytes"
	"testing"
)

func fillPattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestConsecutiveExtractAcrossHashBoundary(t *testing.T) {
	// Mirrors the spec scenario: a file starting at block 0xA9 with
	// blocksForFile=3 and the consecutive flag set reads one block, skips
	// a hash-table stripe, then reads the remaining two blocks.
	raw := fillPattern(0xB0000)

	p := &Package{
		raw:                   raw,
		gender:                0,
		step0:                 0xAB,
		step1:                 0x718F,
		firstHashTableAddress: 0,
		Header:                &Header{},
	}

	fe := &FileEntry{
		StartingBlockNum: 0xA9,
		BlocksForFile:    3,
		FileSize:         3 * blockSize,
		Flags:            1,
	}

	out, err := p.Extract(fe)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0x3000 {
		t.Fatalf("len(out) = %#x, want %#x", len(out), 0x3000)
	}

	startAddr := p.BlockToAddress(0xA9)
	if !bytes.Equal(out[:blockSize], raw[startAddr:startAddr+blockSize]) {
		t.Fatalf("first block mismatch")
	}

	skip := p.GetHashTableSkipSize(startAddr + blockSize)
	tailStart := startAddr + blockSize + skip
	if !bytes.Equal(out[blockSize:], raw[tailStart:tailStart+0x2000]) {
		t.Fatalf("tail bytes mismatch after skip of %#x", skip)
	}
}

func TestChainedExtractFollowsNextBlockPointers(t *testing.T) {
	raw := make([]byte, 0x10000)
	raw[23] = 1 // hash entry for block 0: nextBlock = 1
	for i := 0x1000; i < 0x1000+blockSize; i++ {
		raw[i] = 0xAA
	}
	for i := 0x2000; i < 0x2000+100; i++ {
		raw[i] = 0xBB
	}

	p := &Package{
		raw: raw, gender: 0, step0: 0xAB, step1: 0x718F, firstHashTableAddress: 0,
		Header: &Header{VolumeDescriptor: VolumeDescriptor{AllocatedBlockCount: 10}},
	}

	fe := &FileEntry{StartingBlockNum: 0, FileSize: blockSize + 100, Flags: 0}
	out, err := p.Extract(fe)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != blockSize+100 {
		t.Fatalf("len(out) = %d, want %d", len(out), blockSize+100)
	}
	for i, b := range out[:blockSize] {
		if b != 0xAA {
			t.Fatalf("out[%d] = %#x, want 0xAA", i, b)
		}
	}
	for i, b := range out[blockSize:] {
		if b != 0xBB {
			t.Fatalf("out[blockSize+%d] = %#x, want 0xBB", i, b)
		}
	}
}

func TestEmptyConsecutiveFileProducesEmptyOutput(t *testing.T) {
	p := &Package{raw: fillPattern(0x1000), Header: &Header{}}
	fe := &FileEntry{Flags: 1, FileSize: 0}
	out, err := p.Extract(fe)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0", len(out))
	}
}

func TestGenderSelectsBlockStepConstants(t *testing.T) {
	s0, s1 := blockStep(0)
	if s0 != 0xAB || s1 != 0x718F {
		t.Fatalf("female step = (%#x, %#x), want (0xAB, 0x718F)", s0, s1)
	}
	s0, s1 = blockStep(1)
	if s0 != 0xAC || s1 != 0x723A {
		t.Fatalf("male step = (%#x, %#x), want (0xAC, 0x723A)", s0, s1)
	}
}
