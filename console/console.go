// Package console implements the per-console outer save container: the
// reader/writer for each platform's wrapper around the inner archive, and
// the header-sniffing detector that identifies a container from its first
// twelve bytes.
package console

import (
	"github.com/lce-tools/lcesave/archive"
)

// Kind tags which console container a save belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindXbox360DAT
	KindXbox360BIN
	KindPS3
	KindRPCS3
	KindPS4
	KindVita
	KindWiiU
	KindSwitch
	KindXbox1
)

func (k Kind) String() string {
	switch k {
	case KindXbox360DAT:
		return "Xbox360DAT"
	case KindXbox360BIN:
		return "Xbox360BIN"
	case KindPS3:
		return "PS3"
	case KindRPCS3:
		return "RPCS3"
	case KindPS4:
		return "PS4"
	case KindVita:
		return "Vita"
	case KindWiiU:
		return "WiiU"
	case KindSwitch:
		return "Switch"
	case KindXbox1:
		return "Xbox1"
	default:
		return "Unknown"
	}
}

// RLECodec is the external collaborator that compresses and decompresses
// the PS Vita archive payload. The container format only prepends and
// consumes the size header around whatever bytes this codec produces.
type RLECodec interface {
	Decompress(src []byte, decompressedSize int) ([]byte, error)
	Compress(src []byte) ([]byte, error)
}

// Console reads and writes one platform's outer save container.
type Console interface {
	Kind() Kind
	Read(raw []byte) (*archive.Listing, error)
	Write(listing *archive.Listing) ([]byte, error)
}
