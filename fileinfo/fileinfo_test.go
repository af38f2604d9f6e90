package fileinfo

import (
	"bytes"
	"testing"

	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/thumbnail"
)

func TestRoundTripNoHeader(t *testing.T) {
	fi := &FileInfo{
		Metadata: thumbnail.Metadata{DisplaySeed: 55, NumLoads: 3, HostOptions: 1, TexturePack: 2, ExtraData: 3},
	}
	fi.LoadDefaults()

	out, err := Write(fi, "", HeaderNone, true)
	if err != nil {
		t.Fatal(err)
	}

	got, folder, err := Read(cursor.New(out), HeaderNone)
	if err != nil {
		t.Fatal(err)
	}
	if folder != "" {
		t.Fatalf("folder = %q, want empty", folder)
	}
	if got.BaseSaveName != defaultBaseSaveName {
		t.Fatalf("BaseSaveName = %q, want %q", got.BaseSaveName, defaultBaseSaveName)
	}
}

func TestRoundTripWiiUHeader(t *testing.T) {
	fi := &FileInfo{Metadata: thumbnail.Metadata{DisplaySeed: 1, NumLoads: 1}}
	out, err := Write(fi, "MySave", HeaderWiiU, false)
	if err != nil {
		t.Fatal(err)
	}
	_, folder, err := Read(cursor.New(out), HeaderWiiU)
	if err != nil {
		t.Fatal(err)
	}
	if folder != "MySave" {
		t.Fatalf("folder = %q, want MySave", folder)
	}
}

func TestRoundTripSwitchHeaderPreservesTrailer(t *testing.T) {
	fi := &FileInfo{Metadata: thumbnail.Metadata{DisplaySeed: 9}}
	copy(fi.SwitchTrailer[:], []byte{1, 2, 3, 4, 5, 6, 7, 8})

	out, err := Write(fi, "Switch Save", HeaderSwitch, false)
	if err != nil {
		t.Fatal(err)
	}
	got, folder, err := Read(cursor.New(out), HeaderSwitch)
	if err != nil {
		t.Fatal(err)
	}
	if folder != "Switch Save" {
		t.Fatalf("folder = %q, want %q", folder, "Switch Save")
	}
	if !bytes.Equal(got.SwitchTrailer[:], fi.SwitchTrailer[:]) {
		t.Fatalf("trailer mismatch: got %v, want %v", got.SwitchTrailer, fi.SwitchTrailer)
	}
}

func TestReadCacheFileAppliesFolderNameDefault(t *testing.T) {
	fi := &FileInfo{}
	raw, err := Write(fi, "", HeaderNone, false)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadCacheFile(bytes.NewReader(raw), "Vita Folder")
	if err != nil {
		t.Fatal(err)
	}
	if got.BaseSaveName != "Vita Folder" {
		t.Fatalf("BaseSaveName = %q, want %q", got.BaseSaveName, "Vita Folder")
	}
}
