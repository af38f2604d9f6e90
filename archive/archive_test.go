package archive

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fileKey projects a File down to the fields a round trip must preserve
// exactly; Offset is recomputed on every Write and isn't part of that
// contract.
type fileKey struct {
	Name    string
	Payload []byte
	Bucket  Bucket
}

func keysOf(files []*File) []fileKey {
	keys := make([]fileKey, len(files))
	for i, f := range files {
		keys[i] = fileKey{Name: f.Name, Payload: f.Payload, Bucket: f.Bucket}
	}
	return keys
}

func sampleListing() *Listing {
	l := &Listing{OldestVersion: 1, CurrentVersion: 9}
	l.file(&File{Name: "level.dat", Payload: []byte("level-bytes"), Bucket: BucketLevel})
	l.file(&File{Name: "r.0.0.mcr", Payload: []byte("region-bytes"), Bucket: BucketOverworldRegions})
	l.file(&File{Name: "DIM-1.r.0.0.mcr", Payload: []byte("nether-bytes"), Bucket: BucketNetherRegions})
	l.file(&File{Name: "Steve", Payload: []byte("player-bytes"), Bucket: BucketPlayers})
	return l
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	l := sampleListing()
	out, err := l.Write()
	if err != nil {
		t.Fatal(err)
	}

	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(keysOf(l.AllFiles), keysOf(got.AllFiles)); diff != "" {
		t.Fatalf("AllFiles mismatch (-want +got):\n%s", diff)
	}

	out2, err := got.Write()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, out2) {
		t.Fatalf("write(read(write(L))) != write(L)")
	}
}

func TestZeroSizeEntrySkippedOnRead(t *testing.T) {
	l := &Listing{}
	l.file(&File{Name: "empty.dat", Payload: nil})
	out, err := l.Write()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.AllFiles) != 0 {
		t.Fatalf("expected zero-size entry to be skipped, got %d files", len(got.AllFiles))
	}
}

func TestClassifyBuckets(t *testing.T) {
	cases := map[string]Bucket{
		"level.dat":           BucketLevel,
		"data/villages.dat":   BucketVillage,
		"data/map_12":         BucketMaps,
		"data/something":      BucketStructures,
		"banner.grf":          BucketGRF,
		"DIM-1r.0.0.mcr":      BucketNetherRegions,
		"DIM1r.0.0.mcr":       BucketEndRegions,
		"r.0.0.mcr":           BucketOverworldRegions,
		"players/Steve":       BucketPlayers,
		"Steve":               BucketPlayers,
		"unrecognized/nested": BucketUnknown,
	}
	for name, want := range cases {
		if got := classify(name); got != want {
			t.Errorf("classify(%q) = %v, want %v", name, got, want)
		}
	}
}
