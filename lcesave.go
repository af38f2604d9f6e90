// Package lcesave is the dispatcher that ties console detection, the
// per-console outer container, and the FileInfo preview envelope together
// into the two operations a caller actually wants: read a save from disk,
// write one back out for a (possibly different) target console.
package lcesave

import (
	"os"

	"github.com/google/renameio"

	"github.com/lce-tools/lcesave/archive"
	"github.com/lce-tools/lcesave/console"
	"github.com/lce-tools/lcesave/cursor"
	"github.com/lce-tools/lcesave/fileinfo"
	"github.com/lce-tools/lcesave/lceerr"
)

// Save bundles everything read out of a console container.
type Save struct {
	Console    console.Kind
	FolderName string
	Listing    *archive.Listing
	FileInfo   *fileinfo.FileInfo
}

func headerKindFor(k console.Kind) fileinfo.HeaderKind {
	switch k {
	case console.KindWiiU:
		return fileinfo.HeaderWiiU
	case console.KindSwitch:
		return fileinfo.HeaderSwitch
	default:
		return fileinfo.HeaderNone
	}
}

// includeBaseSaveName reports whether the thumbnail's 4J_BASESAVENAME key
// is emitted for kind's preview envelope.
func includeBaseSaveName(k console.Kind) bool {
	switch k {
	case console.KindWiiU, console.KindSwitch, console.KindVita:
		return false
	default:
		return true
	}
}

func consoleFor(kind console.Kind, rle console.RLECodec) (console.Console, error) {
	const op = "lcesave.consoleFor"
	switch kind {
	case console.KindWiiU:
		return console.WiiU(), nil
	case console.KindSwitch:
		return console.Switch(), nil
	case console.KindPS4:
		return console.PS4(), nil
	case console.KindPS3:
		return console.PS3(), nil
	case console.KindRPCS3:
		return console.RPCS3(), nil
	case console.KindVita:
		if rle == nil {
			return nil, lceerr.New(lceerr.InvalidArgument, op, nil)
		}
		return console.Vita(rle), nil
	case console.KindXbox360DAT:
		return console.Xbox360DAT(), nil
	case console.KindXbox360BIN:
		return console.Xbox360BIN(), nil
	default:
		return nil, lceerr.New(lceerr.InvalidSave, op, nil)
	}
}

// Read detects savePath's console container, decodes its archive listing,
// and — for consoles that carry one — decodes the companion FileInfo
// envelope at infoPath. parentDir is savePath's parent directory name,
// needed to disambiguate Switch from PS4. rle is required only for Vita
// saves; pass nil otherwise.
func Read(savePath, parentDir, infoPath string, rle console.RLECodec) (*Save, error) {
	const op = "lcesave.Read"

	raw, err := os.ReadFile(savePath)
	if err != nil {
		return nil, lceerr.New(lceerr.InvalidArgument, op, err)
	}
	if len(raw) < 12 {
		return nil, lceerr.New(lceerr.InvalidSave, op, nil)
	}

	kind, err := console.Detect(raw[:12], parentDir)
	if err != nil {
		return nil, err
	}
	c, err := consoleFor(kind, rle)
	if err != nil {
		return nil, err
	}
	listing, err := c.Read(raw)
	if err != nil {
		return nil, err
	}

	save := &Save{Console: kind, Listing: listing}

	if infoPath != "" {
		infoRaw, err := os.ReadFile(infoPath)
		if err != nil {
			return nil, lceerr.New(lceerr.InvalidArgument, op, err)
		}
		fi, folderName, err := fileinfo.Read(cursor.New(infoRaw), headerKindFor(kind))
		if err != nil {
			return nil, err
		}
		save.FileInfo = fi
		save.FolderName = folderName
	}

	return save, nil
}

// Write encodes save for target, atomically replacing savePath (and
// infoPath, when infoPath is non-empty and save carries a FileInfo).
func Write(save *Save, savePath, infoPath string, target console.Kind, rle console.RLECodec) error {
	const op = "lcesave.Write"

	c, err := consoleFor(target, rle)
	if err != nil {
		return err
	}
	raw, err := c.Write(save.Listing)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(savePath, raw, 0o644); err != nil {
		return lceerr.New(lceerr.InvalidArgument, op, err)
	}

	if infoPath == "" || save.FileInfo == nil {
		return nil
	}
	save.FileInfo.LoadDefaults()
	infoRaw, err := fileinfo.Write(save.FileInfo, save.FolderName, headerKindFor(target), includeBaseSaveName(target))
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(infoPath, infoRaw, 0o644); err != nil {
		return lceerr.New(lceerr.InvalidArgument, op, err)
	}
	return nil
}
