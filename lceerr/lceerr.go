// Package lceerr defines the stable, language-neutral error kinds shared by
// every package in this module, so a caller can distinguish "ran off the end
// of the buffer" from "this isn't a savegame" without string-matching error
// messages.
package lceerr

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind identifies the category of failure. Kinds are stable across
// versions of this module; new kinds may be added but existing ones never
// change meaning.
type Kind int

const (
	// OutOfBounds is raised by any cursor read or write past the buffer end.
	OutOfBounds Kind = iota
	// InvalidSave is raised when the console detector fails every branch.
	InvalidSave
	// NotASavegame is raised when an STFS content type field is not 1.
	NotASavegame
	// NotSTFS is raised when an STFS file-system field is not 0.
	NotSTFS
	// InvalidBlock is raised for an STFS block number >= allocated or >= 0xFFFFFF.
	InvalidBlock
	// TooManyBlocks is raised when allocated blocks exceed 0x4AF768.
	TooManyBlocks
	// Encoding is raised when a wide-string decode fails.
	Encoding
	// DecompressFailed is raised when a zlib/RLE codec returns an error.
	DecompressFailed
	// InvalidArgument is raised when write settings are incomplete or unsupported.
	InvalidArgument
)

var names = map[Kind]string{
	OutOfBounds:      "out of bounds",
	InvalidSave:      "invalid save",
	NotASavegame:     "not a savegame",
	NotSTFS:          "not STFS",
	InvalidBlock:     "invalid block",
	TooManyBlocks:    "too many blocks",
	Encoding:         "encoding error",
	DecompressFailed: "decompress failed",
	InvalidArgument:  "invalid argument",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown error kind"
}

// Error is the concrete error type every package in this module returns.
// It carries the Kind so callers can branch on failure category with Is,
// the operation that failed, and (optionally) the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error of the given kind for operation op, optionally
// wrapping a lower-level cause.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
