// Package batch fans independent save conversions out across a bounded
// pool of goroutines. It adds no new semantics over the root lcesave
// package: every Job is read, (optionally) re-targeted, and written
// through the same lcesave.Read/lcesave.Write calls a sequential caller
// would use. Nothing is shared between goroutines — each Job gets its
// own Cursor, Package, and Listing values.
package batch

import (
	"golang.org/x/sync/errgroup"

	"github.com/lce-tools/lcesave"
	"github.com/lce-tools/lcesave/console"
)

// Job describes one save conversion: read SavePath (detecting its
// console from ParentDir), then write it back out as Target at
// OutSavePath. InfoPath/OutInfoPath may be empty when the source or
// target console carries no FileInfo companion file. RLE is forwarded
// to lcesave.Read/Write and is only required for PS Vita saves.
type Job struct {
	SavePath    string
	ParentDir   string
	InfoPath    string
	OutSavePath string
	OutInfoPath string
	Target      console.Kind
	RLE         console.RLECodec
}

// Result carries the outcome of one Job, indexed back to it positionally
// so a caller can correlate failures without needing Job to be
// comparable.
type Result struct {
	Save *lcesave.Save
	Err  error
}

// ConvertAll runs every job concurrently, capped at limit simultaneous
// conversions (limit <= 0 means unbounded). It always returns len(jobs)
// results in job order; a failing job does not stop the others.
func ConvertAll(jobs []Job, limit int) []Result {
	results := make([]Result, len(jobs))

	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			results[i] = convertOne(job)
			return nil
		})
	}
	eg.Wait()

	return results
}

func convertOne(job Job) Result {
	save, err := lcesave.Read(job.SavePath, job.ParentDir, job.InfoPath, job.RLE)
	if err != nil {
		return Result{Err: err}
	}
	if err := lcesave.Write(save, job.OutSavePath, job.OutInfoPath, job.Target, job.RLE); err != nil {
		return Result{Err: err}
	}
	return Result{Save: save}
}
