package console

import (
	"github.com/lce-tools/lcesave/archive"
	"github.com/lce-tools/lcesave/lceerr"
	"github.com/lce-tools/lcesave/stfs"
)

// xbox360DAT is a thin framing wrapper around the archive codec: the
// archive's own 12-byte header and directory already carry everything a
// DAT file needs, so no extra outer framing is added.
type xbox360DAT struct{}

func Xbox360DAT() Console { return xbox360DAT{} }

func (xbox360DAT) Kind() Kind { return KindXbox360DAT }

func (xbox360DAT) Read(raw []byte) (*archive.Listing, error) {
	return archive.Read(raw)
}

func (xbox360DAT) Write(listing *archive.Listing) ([]byte, error) {
	return listing.Write()
}

// xbox360BIN delegates to the STFS container to locate and extract
// savegame.dat, then hands its bytes to the archive codec. Reassembling an
// STFS package on write is out of scope; Write always fails.
type xbox360BIN struct{}

func Xbox360BIN() Console { return xbox360BIN{} }

func (xbox360BIN) Kind() Kind { return KindXbox360BIN }

func (xbox360BIN) Read(raw []byte) (*archive.Listing, error) {
	const op = "console.Xbox360BIN.Read"

	pkg, err := stfs.Open(raw)
	if err != nil {
		return nil, err
	}
	entry, err := pkg.FindSavegame()
	if err != nil {
		return nil, err
	}
	blob, err := pkg.Extract(entry)
	if err != nil {
		return nil, lceerr.New(lceerr.OutOfBounds, op, err)
	}
	return archive.Read(blob)
}

func (xbox360BIN) Write(listing *archive.Listing) ([]byte, error) {
	return nil, lceerr.New(lceerr.InvalidArgument, "console.Xbox360BIN.Write", nil)
}
