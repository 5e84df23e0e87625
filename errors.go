// Copyright (c) 2024 Neomantra Corp

package dbz

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrBadMagic is returned when the prelude's magic number falls outside the
// zstd skippable-frame range.
type ErrBadMagic struct {
	Magic uint32
}

func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("bad prelude magic 0x%08X, expected a zstd skippable-frame magic in [0x184D2A50, 0x184D2A60)", e.Magic)
}

// ErrTruncatedMetadata is returned when a fixed or variable-length metadata
// region runs past the end of the metadata buffer.
type ErrTruncatedMetadata struct {
	Section string // e.g. "fixed header", "symbols", "mappings[3].intervals"
	Index   int    // element index within Section, or -1 if not applicable
	Want    int    // bytes required
	Have    int    // bytes available
}

func (e *ErrTruncatedMetadata) Error() string {
	where := e.Section
	if e.Index >= 0 {
		where = fmt.Sprintf("%s[%d]", e.Section, e.Index)
	}
	return fmt.Sprintf("truncated metadata in %s: need %s, have %s",
		where, humanize.Bytes(uint64(e.Want)), humanize.Bytes(uint64(e.Have)))
}

// ErrUnsupportedVersion is returned when a metadata prelude declares a
// version newer than this package knows how to decode.
type ErrUnsupportedVersion struct {
	Version uint8
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported DBZ version %d, this package reads up to version %d", e.Version, SchemaVersion)
}

// ErrUnsupported is returned for recognized-but-unimplemented features, such
// as a non-zero schema-definition length.
type ErrUnsupported struct {
	Feature string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("unsupported feature: %s", e.Feature)
}

// ErrUnknownEnum is returned when a numeric enum value has no known mapping.
type ErrUnknownEnum struct {
	Kind  string // e.g. "Schema", "SType", "Compression"
	Value uint64
}

func (e *ErrUnknownEnum) Error() string {
	return fmt.Sprintf("unknown %s value %d", e.Kind, e.Value)
}

// ErrInvalidUTF8 is returned when a fixed-width symbol field, after trimming
// trailing NUL bytes, is not valid UTF-8.
type ErrInvalidUTF8 struct {
	Bytes []byte
}

func (e *ErrInvalidUTF8) Error() string {
	return fmt.Sprintf("invalid UTF-8 in symbol field: %v", e.Bytes)
}

// ErrInvalidDate is returned when a packed YYYYMMDD date fails month or
// calendar-day validation.
type ErrInvalidDate struct {
	Raw    uint32
	Reason string // "month" or "day"
}

func (e *ErrInvalidDate) Error() string {
	return fmt.Sprintf("invalid date %d: invalid %s", e.Raw, e.Reason)
}

// ErrTypeMismatch is returned when a record's header rtype disagrees with
// the type-ID the caller's requested record variant expects. A header
// whose length field doesn't match the variant's fixed size is reported
// as ErrTruncatedMetadata instead.
type ErrTypeMismatch struct {
	Expected RType
	Found    RType
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("record type mismatch: expected rtype 0x%02X, found 0x%02X", uint8(e.Expected), uint8(e.Found))
}

// ErrIO wraps an underlying stream failure with the operation that caused it.
type ErrIO struct {
	Op    string
	Cause error
}

func (e *ErrIO) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Cause)
}

func (e *ErrIO) Unwrap() error {
	return e.Cause
}

func wrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ErrIO{Op: op, Cause: err}
}

// ErrNoMetadata is returned when an operation needs metadata that hasn't
// been read or written yet, and by Decode and Visit when the Reader holds
// no current record.
var ErrNoMetadata = fmt.Errorf("no metadata available")

// ErrNoLayout is returned by the record-layout registry for schemas with no
// fixed-size record variant (Definition, Statistics, Status).
var ErrNoLayout = fmt.Errorf("schema has no fixed record layout")
