package thumbnail

import (
	"testing"

	"github.com/lce-tools/lcesave/cursor"
)

func samplePNG() []byte {
	// Minimal but not-really-valid PNG body; Read only cares about the
	// chunk framing (length/type/CRC), not pixel validity.
	return append([]byte(pngMagic[:]), []byte{
		0x00, 0x00, 0x00, 0x04,
		'I', 'H', 'D', 'R',
		0xDE, 0xAD, 0xBE, 0xEF,
		0x00, 0x00, 0x00, 0x00,
	}...)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	image := samplePNG()
	meta := Metadata{
		DisplaySeed:       -4821,
		NumLoads:          12,
		HostOptions:       0x2A,
		TexturePack:       0,
		ExtraData:         0xFF00,
		NumExploredChunks: 37,
		BaseSaveName:      "converted by LCEditor",
	}

	full := Write(image, meta, true)

	c := cursor.New(full)
	gotImage, gotMeta, err := Read(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(gotImage) != string(image) {
		t.Fatalf("image mismatch: got %x, want %x", gotImage, image)
	}
	if gotMeta != meta {
		t.Fatalf("metadata mismatch: got %+v, want %+v", gotMeta, meta)
	}
}

func TestWriteOmitsZeroExploredChunksAndBaseSaveName(t *testing.T) {
	meta := Metadata{DisplaySeed: 1, NumLoads: 1, HostOptions: 1, TexturePack: 1, ExtraData: 1}
	full := Write(samplePNG(), meta, false)

	c := cursor.New(full)
	_, got, err := Read(c)
	if err != nil {
		t.Fatal(err)
	}
	if got.NumExploredChunks != 0 || got.BaseSaveName != "" {
		t.Fatalf("expected zero-value omitted fields, got %+v", got)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	buf := samplePNG()
	buf[0] = 0
	c := cursor.New(buf)
	if _, _, err := Read(c); err == nil {
		t.Fatal("expected error for bad PNG magic")
	}
}
