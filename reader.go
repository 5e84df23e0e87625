// Copyright (c) 2024 Neomantra Corp
//
// Record stream reader: wraps a buffered, zstd-decompressing source and
// exposes a lazy, forward-only sequence of typed records.
//
// Adapted from NimbleMarkets/dbn-go's DbnScanner, generalized to this
// codec's fixed schema-bound record size and stricter rtype check.

package dbz

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zstd"
)

const (
	defaultDecodeBufferSize = 16 * 1024
	maxRecordSize           = 512 // larger than the biggest defined record, Mbp10Msg
)

// ReaderOption configures a Reader at construction time.
type ReaderOption func(*Reader)

// WithReaderLogger overrides the Reader's diagnostic logger. Diagnostics
// are never used for control flow; they are best-effort breadcrumbs for
// operators.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) {
		r.logger = logger
	}
}

// WithReaderBufferSize overrides the buffered reader's internal buffer size.
func WithReaderBufferSize(size int) ReaderOption {
	return func(r *Reader) {
		r.bufferSize = size
	}
}

// Reader decodes a DBZ artifact: its metadata, then a lazy sequence of
// fixed-size records via Next/Record. One Reader owns its source and
// zstd decoder exclusively; it is not safe for concurrent use.
type Reader struct {
	src        io.Reader
	bufferSize int
	logger     *slog.Logger

	metadata  *Metadata
	decoder   *zstd.Decoder
	bufReader *bufio.Reader

	recordSize uint16
	wantRType  RType

	scratch    []byte
	lastSize   int
	i          uint64
	lastErr    error
}

// NewReader creates a Reader over src, which must be positioned at the
// start of a DBZ artifact (the 8-byte prelude). Metadata is read lazily,
// on the first call to Metadata or Next.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		src:        src,
		bufferSize: defaultDecodeBufferSize,
		logger:     slog.Default(),
		scratch:    make([]byte, maxRecordSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewReaderFromFile opens filename and wraps it in a Reader, decompressing
// with zstd if useZstd is set or the filename ends in ".zst" or ".zstd"
// (delegates file-open
// and optional whole-stream zstd wrapping to MakeCompressedReader; DBZ
// artifacts wrap their own zstd body internally, so useZstd is normally
// false here — this convenience constructor exists for reading a DBZ
// artifact that has itself been zstd-compressed a second time for
// transport).
func NewReaderFromFile(filename string, useZstd bool, opts ...ReaderOption) (*Reader, io.Closer, error) {
	src, closer, err := MakeCompressedReader(filename, useZstd)
	if err != nil {
		return nil, nil, err
	}
	return NewReader(src, opts...), closer, nil
}

// Metadata returns the artifact's metadata, reading it from the source
// on first call.
func (r *Reader) Metadata() (*Metadata, error) {
	if r.metadata != nil {
		return r.metadata, nil
	}
	if err := r.readMetadata(); err != nil {
		return nil, err
	}
	return r.metadata, nil
}

func (r *Reader) readMetadata() error {
	m, err := ReadMetadata(r.src)
	if err != nil {
		r.lastErr = err
		return err
	}
	size, rtype, err := LayoutForSchema(m.Schema)
	if err != nil {
		r.lastErr = err
		return err
	}
	r.metadata = m
	r.recordSize = size
	r.wantRType = rtype
	r.bufReader = bufio.NewReaderSize(r.src, r.bufferSize)
	decoder, err := zstd.NewReader(r.bufReader)
	if err != nil {
		r.lastErr = wrapIO("init zstd decoder", err)
		return r.lastErr
	}
	r.decoder = decoder
	return nil
}

// Error returns the error that ended the most recent Next, or nil. May
// be io.EOF for a clean end of stream.
func (r *Reader) Error() error {
	return r.lastErr
}

// Remaining reports the advisory count of records not yet read, per the
// metadata's record_count. It is not adjusted by truncation or excess
// records in the body.
func (r *Reader) Remaining() uint64 {
	if r.metadata == nil || r.metadata.RecordCount < r.i {
		return 0
	}
	return r.metadata.RecordCount - r.i
}

// Next reads and validates the next record's raw bytes into the Reader's
// internal scratch buffer. Call Record to decode those bytes into a
// typed value. Returns false at end-of-stream or on error; inspect Error
// for the cause.
func (r *Reader) Next() bool {
	if r.metadata == nil {
		if err := r.readMetadata(); err != nil {
			return false
		}
	}

	n, err := io.ReadFull(r.decoder, r.scratch[:r.recordSize])
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			if err == io.ErrUnexpectedEOF {
				r.logger.Warn("truncated record at end of stream",
					"index", r.i, "have", n, "want", r.recordSize)
			}
			r.lastErr = io.EOF
		} else {
			r.lastErr = wrapIO("read record", err)
		}
		r.lastSize = 0
		return false
	}

	rtype := RType(r.scratch[1])
	if rtype != r.wantRType {
		r.lastErr = &ErrTypeMismatch{Expected: r.wantRType, Found: rtype}
		r.lastSize = 0
		return false
	}

	r.lastErr = nil
	r.lastSize = n
	r.i++
	return true
}

// Decode parses the Reader's current record (populated by the last
// successful Next) as R. This is a plain function because receiver
// methods cannot be generic.
func Decode[R Record, RP RecordPtr[R]](r *Reader) (*R, error) {
	if r.lastSize == 0 {
		return nil, ErrNoMetadata
	}
	var rp RP = new(R)
	if err := rp.Fill_Raw(r.scratch[:r.lastSize]); err != nil {
		return nil, err
	}
	return rp, nil
}

// Visit decodes the Reader's current record and dispatches it to the
// matching Visitor callback based on the metadata's schema.
func (r *Reader) Visit(visitor Visitor) error {
	if r.lastSize == 0 {
		return ErrNoMetadata
	}
	switch r.wantRType {
	case RType_Mbo:
		var rec TickMsg
		if err := rec.Fill_Raw(r.scratch[:r.lastSize]); err != nil {
			return err
		}
		return visitor.OnMbo(&rec)
	case RType_Mbp0:
		var rec TradeMsg
		if err := rec.Fill_Raw(r.scratch[:r.lastSize]); err != nil {
			return err
		}
		return visitor.OnTrade(&rec)
	case RType_Mbp1:
		var rec Mbp1Msg
		if err := rec.Fill_Raw(r.scratch[:r.lastSize]); err != nil {
			return err
		}
		return visitor.OnMbp1(&rec)
	case RType_Mbp10:
		var rec Mbp10Msg
		if err := rec.Fill_Raw(r.scratch[:r.lastSize]); err != nil {
			return err
		}
		return visitor.OnMbp10(&rec)
	case RType_Ohlcv1S, RType_Ohlcv1M, RType_Ohlcv1H, RType_Ohlcv1D:
		var rec OhlcvMsg
		if err := rec.Fill_Raw(r.scratch[:r.lastSize]); err != nil {
			return err
		}
		return visitor.OnOhlcv(&rec)
	default:
		return &ErrUnknownEnum{Kind: "RType", Value: uint64(r.wantRType)}
	}
}

// Close releases the Reader's zstd decoder. It does not close the
// underlying source; callers own that lifecycle.
func (r *Reader) Close() {
	if r.decoder != nil {
		r.decoder.Close()
	}
}

///////////////////////////////////////////////////////////////////////////////

// ReadToSlice reads an entire DBZ artifact from src and decodes every
// record as R, returning them alongside the artifact's metadata.
func ReadToSlice[R Record, RP RecordPtr[R]](src io.Reader) ([]R, *Metadata, error) {
	r := NewReader(src)
	defer r.Close()

	records := make([]R, 0)
	for r.Next() {
		rec, err := Decode[R, RP](r)
		if err != nil {
			return records, r.metadata, err
		}
		records = append(records, *rec)
	}
	err := r.Error()
	if err == io.EOF {
		err = nil
	}
	return records, r.metadata, err
}
