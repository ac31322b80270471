package uasset

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEndOfData is returned by Cursor reads that would run past
// the end of the buffer. It is recovered by the enclosing table or row
// loop and never aborts a whole decode.
var ErrUnexpectedEndOfData = errors.New("unexpected end of data")

// ErrIterationCap is reported when a property or row loop hits its safety
// cap on corrupt data. The loop stops and the result so far is kept.
var ErrIterationCap = errors.New("iteration cap exceeded")

// StructuralError is the only fatal decode error. It means the header
// buffer is not a cooked package at all (wrong magic tag).
type StructuralError struct {
	Magic uint32
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("not a package file: magic 0x%08X (want 0x%08X)", e.Magic, PackageFileTag)
}
