// Copyright (c) 2024 Neomantra Corp

package dbz

import "encoding/binary"

// Little-endian fixed-width scalar readers over a byte slice. Callers are
// responsible for bounds-checking before calling these; they panic on a
// short slice rather than returning an error, since every call site already
// validates length against a known record or section size.

func readU8(b []byte) uint8 {
	return b[0]
}

func readI8(b []byte) int8 {
	return int8(b[0])
}

func readU16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

func readU32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func readI32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

func readU64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

func readI64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

func putU8(b []byte, v uint8) {
	b[0] = v
}

func putI8(b []byte, v int8) {
	b[0] = byte(v)
}

func putU16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

func putU32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

func putI32(b []byte, v int32) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}

func putU64(b []byte, v uint64) {
	binary.LittleEndian.PutUint64(b, v)
}

func putI64(b []byte, v int64) {
	binary.LittleEndian.PutUint64(b, uint64(v))
}
