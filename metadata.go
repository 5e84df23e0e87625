// Copyright (c) 2024 Neomantra Corp
//
// DBZ metadata framing: an 8-byte zstd skippable-frame prelude followed
// by a 96-byte fixed header and four variable-length symbol sections.
//
// Adapted from the original dbz-lib read/write algorithm, carried over
// to this Go codec's byte-slice-and-offset style.

package dbz

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	// MagicLow and MagicHigh bound the zstd skippable-frame magic range
	// that a valid DBZ prelude's first four bytes must fall within.
	MagicLow  uint32 = 0x184D2A50
	MagicHigh uint32 = 0x184D2A60

	PreludeSize         = 8
	VersionCstrLen      = 4
	DatasetCstrLen      = 16
	SymbolCstrLen       = 22
	ReservedLen         = 39
	FixedMetadataLen    = 96
	mappingIntervalSize = 4 + 4 + SymbolCstrLen // start_date + end_date + symbol
)

// Metadata describes a DBZ artifact: the fixed header plus its four
// variable-length symbol sections. Values are immutable once decoded;
// see UpdateMetadataFields for the narrow in-place update path.
type Metadata struct {
	Version     uint8
	Dataset     string
	Schema      Schema
	Start       uint64
	End         uint64
	Limit       uint64
	RecordCount uint64
	Compression Compression
	StypeIn     SType
	StypeOut    SType
	Symbols     []string
	Partial     []string
	NotFound    []string
	Mappings    []SymbolMapping
}

// SymbolMapping is a native symbol and the mapping intervals that resolve
// it to an external symbol over various date ranges.
type SymbolMapping struct {
	Native    string
	Intervals []MappingInterval
}

// MappingInterval is the resolved symbol for one calendar-date range.
type MappingInterval struct {
	StartDate Date
	EndDate   Date
	Symbol    string
}

///////////////////////////////////////////////////////////////////////////////

// ReadMetadata reads the 8-byte prelude and the fixed-plus-variable
// metadata payload from r, per the read algorithm: verify the prelude
// magic, read frame_size bytes, then parse the fixed region followed by
// the four variable-length sections.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	var prelude [PreludeSize]byte
	if _, err := io.ReadFull(r, prelude[:]); err != nil {
		return nil, wrapIO("read prelude", err)
	}
	magic := readU32(prelude[0:4])
	if magic < MagicLow || magic >= MagicHigh {
		return nil, &ErrBadMagic{Magic: magic}
	}
	frameSize := readU32(prelude[4:8])
	if frameSize < FixedMetadataLen {
		return nil, &ErrTruncatedMetadata{Section: "fixed header", Index: -1, Want: FixedMetadataLen, Have: int(frameSize)}
	}

	buf := make([]byte, frameSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wrapIO("read metadata payload", err)
	}
	return decodeMetadata(buf)
}

func decodeMetadata(b []byte) (*Metadata, error) {
	if len(b) < FixedMetadataLen {
		return nil, &ErrTruncatedMetadata{Section: "fixed header", Index: -1, Want: FixedMetadataLen, Have: len(b)}
	}

	if string(b[0:3]) != "DBZ" {
		return nil, fmt.Errorf("invalid version string %q, expected \"DBZ\"", b[0:3])
	}
	version := b[3]
	if version > SchemaVersion {
		return nil, &ErrUnsupportedVersion{Version: version}
	}

	m := &Metadata{Version: version}
	pos := VersionCstrLen

	m.Dataset = trimSymbolBytes(b[pos : pos+DatasetCstrLen])
	pos += DatasetCstrLen

	schemaVal := readU16(b[pos : pos+2])
	schema, err := SchemaTryFromUint(schemaVal)
	if err != nil {
		return nil, err
	}
	m.Schema = schema
	pos += 2

	m.Start = readU64(b[pos : pos+8])
	pos += 8
	m.End = readU64(b[pos : pos+8])
	pos += 8
	m.Limit = readU64(b[pos : pos+8])
	pos += 8
	m.RecordCount = readU64(b[pos : pos+8])
	pos += 8

	compression, err := CompressionTryFromUint(readU8(b[pos : pos+1]))
	if err != nil {
		return nil, err
	}
	m.Compression = compression
	pos++

	stypeIn, err := STypeTryFromUint(readU8(b[pos : pos+1]))
	if err != nil {
		return nil, err
	}
	m.StypeIn = stypeIn
	pos++

	stypeOut, err := STypeTryFromUint(readU8(b[pos : pos+1]))
	if err != nil {
		return nil, err
	}
	m.StypeOut = stypeOut
	pos++

	pos += ReservedLen // skip reserved

	if pos+4 > len(b) {
		return nil, &ErrTruncatedMetadata{Section: "schema definition length", Index: -1, Want: 4, Have: len(b) - pos}
	}
	sdl := readU32(b[pos : pos+4])
	pos += 4
	if sdl != 0 {
		return nil, &ErrUnsupported{Feature: "schema definitions"}
	}

	m.Symbols, pos, err = decodeSymbolArray(b, pos, "symbols")
	if err != nil {
		return nil, err
	}
	m.Partial, pos, err = decodeSymbolArray(b, pos, "partial")
	if err != nil {
		return nil, err
	}
	m.NotFound, pos, err = decodeSymbolArray(b, pos, "not_found")
	if err != nil {
		return nil, err
	}
	m.Mappings, _, err = decodeMappings(b, pos)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func trimSymbolBytes(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

// decodeSymbol reads one zero-padded SymbolCstrLen-byte symbol field at
// b[pos:], validating it as UTF-8 after trimming trailing NULs.
func decodeSymbol(b []byte, pos int, section string, index int) (string, int, error) {
	if pos+SymbolCstrLen > len(b) {
		return "", pos, &ErrTruncatedMetadata{Section: section, Index: index, Want: SymbolCstrLen, Have: len(b) - pos}
	}
	raw := b[pos : pos+SymbolCstrLen]
	trimmed := bytes.TrimRight(raw, "\x00")
	if !utf8.Valid(trimmed) {
		return "", pos, &ErrInvalidUTF8{Bytes: append([]byte(nil), raw...)}
	}
	return string(trimmed), pos + SymbolCstrLen, nil
}

func decodeSymbolArray(b []byte, pos int, section string) ([]string, int, error) {
	if pos+4 > len(b) {
		return nil, pos, &ErrTruncatedMetadata{Section: section, Index: -1, Want: 4, Have: len(b) - pos}
	}
	count := int(readU32(b[pos : pos+4]))
	pos += 4
	if pos+count*SymbolCstrLen > len(b) {
		return nil, pos, &ErrTruncatedMetadata{Section: section, Index: -1, Want: count * SymbolCstrLen, Have: len(b) - pos}
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		sym, next, err := decodeSymbol(b, pos, section, i)
		if err != nil {
			return nil, pos, err
		}
		out = append(out, sym)
		pos = next
	}
	return out, pos, nil
}

func decodeMappings(b []byte, pos int) ([]SymbolMapping, int, error) {
	if pos+4 > len(b) {
		return nil, pos, &ErrTruncatedMetadata{Section: "mappings", Index: -1, Want: 4, Have: len(b) - pos}
	}
	count := int(readU32(b[pos : pos+4]))
	pos += 4
	out := make([]SymbolMapping, 0, count)
	for i := 0; i < count; i++ {
		mapping, next, err := decodeMapping(b, pos, i)
		if err != nil {
			return nil, pos, err
		}
		out = append(out, mapping)
		pos = next
	}
	return out, pos, nil
}

func decodeMapping(b []byte, pos int, index int) (SymbolMapping, int, error) {
	native, pos, err := decodeSymbol(b, pos, "mappings", index)
	if err != nil {
		return SymbolMapping{}, pos, err
	}
	section := fmt.Sprintf("mappings[%d].intervals", index)
	if pos+4 > len(b) {
		return SymbolMapping{}, pos, &ErrTruncatedMetadata{Section: section, Index: -1, Want: 4, Have: len(b) - pos}
	}
	intervalCount := int(readU32(b[pos : pos+4]))
	pos += 4
	if pos+intervalCount*mappingIntervalSize > len(b) {
		return SymbolMapping{}, pos, &ErrTruncatedMetadata{Section: section, Index: -1, Want: intervalCount * mappingIntervalSize, Have: len(b) - pos}
	}

	intervals := make([]MappingInterval, 0, intervalCount)
	for j := 0; j < intervalCount; j++ {
		startRaw := readU32(b[pos : pos+4])
		pos += 4
		startDate, err := DecodeDate(startRaw)
		if err != nil {
			return SymbolMapping{}, pos, fmt.Errorf("mappings[%d].intervals[%d] start_date: %w", index, j, err)
		}
		endRaw := readU32(b[pos : pos+4])
		pos += 4
		endDate, err := DecodeDate(endRaw)
		if err != nil {
			return SymbolMapping{}, pos, fmt.Errorf("mappings[%d].intervals[%d] end_date: %w", index, j, err)
		}
		symbol, next, err := decodeSymbol(b, pos, section, j)
		if err != nil {
			return SymbolMapping{}, pos, err
		}
		pos = next
		intervals = append(intervals, MappingInterval{StartDate: startDate, EndDate: endDate, Symbol: symbol})
	}
	return SymbolMapping{Native: native, Intervals: intervals}, pos, nil
}

///////////////////////////////////////////////////////////////////////////////

// WriteMetadata encodes m to w: the payload (the zero-initialized fixed
// region with each field overwritten at its offset, sdl=0, then the four
// variable-length sections) is built in memory first, so the prelude is
// written with its final frame_size before the payload.
func WriteMetadata(w io.Writer, m *Metadata) error {
	buf := encodeMetadataPayload(m)

	var prelude [PreludeSize]byte
	putU32(prelude[0:4], MagicLow)
	putU32(prelude[4:8], uint32(len(buf)))

	if _, err := w.Write(prelude[:]); err != nil {
		return wrapIO("write prelude", err)
	}
	if _, err := w.Write(buf); err != nil {
		return wrapIO("write metadata payload", err)
	}
	return nil
}

func encodeMetadataPayload(m *Metadata) []byte {
	var buf bytes.Buffer
	fixed := make([]byte, FixedMetadataLen)

	fixed[0], fixed[1], fixed[2] = 'D', 'B', 'Z'
	fixed[3] = m.Version

	copy(fixed[4:4+DatasetCstrLen], []byte(m.Dataset))

	pos := VersionCstrLen + DatasetCstrLen
	putU16(fixed[pos:pos+2], uint16(m.Schema))
	pos += 2
	putU64(fixed[pos:pos+8], m.Start)
	pos += 8
	putU64(fixed[pos:pos+8], m.End)
	pos += 8
	putU64(fixed[pos:pos+8], m.Limit)
	pos += 8
	putU64(fixed[pos:pos+8], m.RecordCount)
	pos += 8
	fixed[pos] = uint8(m.Compression)
	pos++
	fixed[pos] = uint8(m.StypeIn)
	pos++
	fixed[pos] = uint8(m.StypeOut)
	pos++
	// reserved bytes [pos:pos+ReservedLen] stay zero
	buf.Write(fixed)

	var sdl [4]byte
	putU32(sdl[:], 0) // schema_definition_length, right after the fixed region
	buf.Write(sdl[:])

	encodeSymbolArray(&buf, m.Symbols)
	encodeSymbolArray(&buf, m.Partial)
	encodeSymbolArray(&buf, m.NotFound)
	encodeMappings(&buf, m.Mappings)

	return buf.Bytes()
}

func encodeSymbol(buf *bytes.Buffer, symbol string) {
	cstr := make([]byte, SymbolCstrLen)
	copy(cstr, symbol)
	buf.Write(cstr)
}

func encodeSymbolArray(buf *bytes.Buffer, symbols []string) {
	var count [4]byte
	putU32(count[:], uint32(len(symbols)))
	buf.Write(count[:])
	for _, s := range symbols {
		encodeSymbol(buf, s)
	}
}

func encodeMappings(buf *bytes.Buffer, mappings []SymbolMapping) {
	var count [4]byte
	putU32(count[:], uint32(len(mappings)))
	buf.Write(count[:])
	for _, m := range mappings {
		encodeSymbol(buf, m.Native)
		var icount [4]byte
		putU32(icount[:], uint32(len(m.Intervals)))
		buf.Write(icount[:])
		for _, iv := range m.Intervals {
			var dates [8]byte
			putU32(dates[0:4], iv.StartDate.EncodeYMD())
			putU32(dates[4:8], iv.EndDate.EncodeYMD())
			buf.Write(dates[:])
			encodeSymbol(buf, iv.Symbol)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////

// UpdateMetadataFields rewrites the start/end/limit/record_count fields
// of an already-encoded artifact in place, seeking to each field's
// absolute file offset and overwriting 8 little-endian bytes. No other
// byte of the file is touched, and the compressed body is never
// revisited.
func UpdateMetadataFields(w io.WriteSeeker, start, end, limit, recordCount uint64) error {
	fields := []struct {
		offset int64
		value  uint64
	}{
		{PreludeSize + 22, start},
		{PreludeSize + 30, end},
		{PreludeSize + 38, limit},
		{PreludeSize + 46, recordCount},
	}
	for _, f := range fields {
		if _, err := w.Seek(f.offset, io.SeekStart); err != nil {
			return wrapIO("seek to metadata field", err)
		}
		var b [8]byte
		putU64(b[:], f.value)
		if _, err := w.Write(b[:]); err != nil {
			return wrapIO("write metadata field", err)
		}
	}
	return nil
}
