// Copyright (c) 2024 Neomantra Corp
//
// Record stream writer: serializes Metadata followed by a compressed
// body of fixed-size typed records.
//
// Adapted from compressed_io.go's wrapping conventions, generalized to
// this codec's metadata-then-zstd-body write algorithm.

package dbz

import (
	"io"
	"log/slog"

	"github.com/klauspost/compress/zstd"
)

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

// WithWriterLogger overrides the Writer's diagnostic logger.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithEncoderLevel sets the zstd compression level used for the record
// body. Default is the zstd package's default level.
func WithEncoderLevel(level zstd.EncoderLevel) WriterOption {
	return func(w *Writer) {
		w.encoderLevel = level
		w.hasLevel = true
	}
}

// Writer serializes a Metadata header followed by a zstd-compressed
// stream of fixed-size records of a single variant. One Writer owns its
// sink and zstd encoder exclusively; it is not safe for concurrent use.
type Writer struct {
	sink         io.Writer
	logger       *slog.Logger
	encoderLevel zstd.EncoderLevel
	hasLevel     bool

	metadata   *Metadata
	encoder    *zstd.Encoder
	recordSize uint16
	wantRType  RType
}

// NewWriter creates a Writer over sink. Call WriteHeader once before
// any WriteRecord calls.
func NewWriter(sink io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		sink:   sink,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewWriterToFile opens filename for writing and wraps it in a Writer,
// optionally zstd-compressing the whole artifact a second time for
// transport (see NewReaderFromFile for the symmetric case).
func NewWriterToFile(filename string, useZstd bool, opts ...WriterOption) (*Writer, func(), error) {
	sink, closer, err := MakeCompressedWriter(filename, useZstd)
	if err != nil {
		return nil, nil, err
	}
	return NewWriter(sink, opts...), closer, nil
}

// WriteHeader validates that m.Schema's record layout is consistent,
// writes the metadata to the sink, then opens the zstd encoder for the
// record body. Must be called exactly once, before any WriteRecord.
func (w *Writer) WriteHeader(m *Metadata) error {
	size, rtype, err := LayoutForSchema(m.Schema)
	if err != nil {
		return err
	}
	if err := WriteMetadata(w.sink, m); err != nil {
		return err
	}

	var opts []zstd.EOption
	if w.hasLevel {
		opts = append(opts, zstd.WithEncoderLevel(w.encoderLevel))
	}
	encoder, err := zstd.NewWriter(w.sink, opts...)
	if err != nil {
		return wrapIO("init zstd encoder", err)
	}

	w.metadata = m
	w.encoder = encoder
	w.recordSize = size
	w.wantRType = rtype
	return nil
}

// WriteRecord validates that rec's RType matches the schema declared in
// the metadata passed to WriteHeader, then writes exactly RSize() raw
// little-endian bytes to the compressed body.
func WriteRecord[R Record, RP RecordPtr[R]](w *Writer, rec RP) error {
	if w.encoder == nil {
		return ErrNoMetadata
	}
	if rec.RType() != w.wantRType {
		return &ErrTypeMismatch{Expected: w.wantRType, Found: rec.RType()}
	}
	buf := make([]byte, rec.RSize())
	if err := rec.ToBytes(buf); err != nil {
		return err
	}
	if _, err := w.encoder.Write(buf); err != nil {
		return wrapIO("write record", err)
	}
	return nil
}

// Close finishes the zstd encoder, flushing its final frame. It does not
// close the underlying sink; callers own that lifecycle.
func (w *Writer) Close() error {
	if w.encoder == nil {
		return nil
	}
	if err := w.encoder.Close(); err != nil {
		return wrapIO("close zstd encoder", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// WriteSlice writes metadata followed by every record in records, then
// closes the encoder. metadata.RecordCount is set to len(records) before
// writing, matching the write-from-scratch convention: record_count is
// the input list's length, not a caller-supplied advisory value.
func WriteSlice[R Record, RP RecordPtr[R]](sink io.Writer, metadata *Metadata, records []R, opts ...WriterOption) error {
	metadata.RecordCount = uint64(len(records))
	w := NewWriter(sink, opts...)
	if err := w.WriteHeader(metadata); err != nil {
		return err
	}
	for i := range records {
		rp := RP(&records[i])
		if err := WriteRecord[R, RP](w, rp); err != nil {
			return err
		}
	}
	return w.Close()
}
