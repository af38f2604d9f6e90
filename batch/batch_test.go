package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lce-tools/lcesave/archive"
	"github.com/lce-tools/lcesave/console"
)

func writeSampleDAT(t *testing.T, path string) {
	t.Helper()
	listing := &archive.Listing{OldestVersion: 1, CurrentVersion: 1}
	raw, err := console.Xbox360DAT().Write(listing)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestConvertAllRunsIndependentJobs(t *testing.T) {
	dir := t.TempDir()

	const n = 5
	jobs := make([]Job, n)
	for i := 0; i < n; i++ {
		in := filepath.Join(dir, "in", string(rune('a'+i))+".dat")
		out := filepath.Join(dir, "out", string(rune('a'+i))+".dat")
		if err := os.MkdirAll(filepath.Dir(in), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			t.Fatal(err)
		}
		writeSampleDAT(t, in)
		jobs[i] = Job{
			SavePath:    in,
			OutSavePath: out,
			Target:      console.KindXbox360DAT,
		}
	}

	results := ConvertAll(jobs, 2)
	if len(results) != n {
		t.Fatalf("len(results) = %d, want %d", len(results), n)
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("job %d: %v", i, r.Err)
		}
		if r.Save.Console != console.KindXbox360DAT {
			t.Fatalf("job %d: Console = %v, want Xbox360DAT", i, r.Save.Console)
		}
		if _, err := os.Stat(jobs[i].OutSavePath); err != nil {
			t.Fatalf("job %d: %v", i, err)
		}
	}
}

func TestConvertAllReportsPerJobFailure(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.dat")
	writeSampleDAT(t, good)

	jobs := []Job{
		{SavePath: good, OutSavePath: filepath.Join(dir, "good-out.dat"), Target: console.KindXbox360DAT},
		{SavePath: filepath.Join(dir, "missing.dat"), OutSavePath: filepath.Join(dir, "missing-out.dat"), Target: console.KindXbox360DAT},
	}

	results := ConvertAll(jobs, 0)
	if results[0].Err != nil {
		t.Fatalf("job 0: unexpected error %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatal("job 1: expected error for missing input file")
	}
}
