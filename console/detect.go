package console

import (
	"encoding/binary"

	"github.com/lce-tools/lcesave/lceerr"
)

const zlibMagic = 0x789C
const xbox360BinMagic = 0x434F4E20 // "CON "

// declaredDestSize is the decompressed-size threshold that separates WiiU
// saves (consistently large) from Switch/PS4 saves (consistently small).
const declaredDestSize = 0x00100000

// Detect classifies a save container from its first 12 bytes, the way the
// original heuristic reads them as a handful of overlapping integers at
// different widths and endiannesses. parentDir is the save folder's parent
// directory name, needed only to break the Switch/PS4 tie.
func Detect(header []byte, parentDir string) (Kind, error) {
	const op = "console.Detect"
	if len(header) < 12 {
		return KindUnknown, lceerr.New(lceerr.InvalidSave, op, nil)
	}

	int1LE := binary.LittleEndian.Uint32(header[0:4])
	int2LE := binary.LittleEndian.Uint32(header[4:8])
	int2BE := binary.BigEndian.Uint32(header[4:8])
	int3BE := binary.BigEndian.Uint32(header[8:12])
	short5BE := binary.BigEndian.Uint16(header[8:10])
	int1BE := binary.BigEndian.Uint32(header[0:4])

	if int1LE <= 2 {
		if short5BE == zlibMagic {
			if int2BE >= declaredDestSize {
				return KindWiiU, nil
			}
			if parentDir == "savedata0" {
				return KindPS4, nil
			}
			return KindSwitch, nil
		}
		indexDiff := int64(int2BE) - int64(int3BE)
		if indexDiff > 0 && indexDiff < 65536 {
			return KindVita, nil
		}
		return KindPS3, nil
	}

	if int2LE <= 2 {
		return KindXbox360DAT, nil
	}
	if int2LE < 100 {
		return KindRPCS3, nil
	}
	if int1BE == xbox360BinMagic {
		return KindXbox360BIN, nil
	}

	return KindUnknown, lceerr.New(lceerr.InvalidSave, op, nil)
}
