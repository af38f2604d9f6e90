package archive

import (
	"io"

	"github.com/cavaliercoder/go-cpio"

	"github.com/lce-tools/lcesave/lceerr"
)

// WriteCPIO exports the listing as a cpio archive for inspection outside
// the console container formats — one entry per file, named by its
// archive-relative path.
func (l *Listing) WriteCPIO(w io.Writer) error {
	const op = "archive.WriteCPIO"

	cw := cpio.NewWriter(w)
	for _, f := range l.AllFiles {
		hdr := &cpio.Header{
			Name: f.Name,
			Size: int64(len(f.Payload)),
			Mode: cpio.ModeRegular | cpio.FileMode(0o644),
		}
		if err := cw.WriteHeader(hdr); err != nil {
			return lceerr.New(lceerr.InvalidArgument, op, err)
		}
		if _, err := cw.Write(f.Payload); err != nil {
			return lceerr.New(lceerr.InvalidArgument, op, err)
		}
	}
	if err := cw.Close(); err != nil {
		return lceerr.New(lceerr.InvalidArgument, op, err)
	}
	return nil
}
