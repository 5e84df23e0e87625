// Copyright (c) 2024 Neomantra Corp
//
// DBZ record layouts.
//
// Adapted from DataBento's dbz-lib:
//   https://github.com/databento/dbz/blob/main/rust/dbz-lib/src/record.rs
//
// Encoding is little-endian throughout.

package dbz

///////////////////////////////////////////////////////////////////////////////

// Record is the marker interface implemented by every fixed-size tick
// record variant.
type Record interface {
}

// RecordPtr constrains a pointer-to-T to also carry the registry
// information the reader and writer need: its wire type-ID, its byte
// size, and raw encode/decode. T itself is unconstrained and Record is an
// empty interface, so it is this method set that limits which types can
// be used.
type RecordPtr[T any] interface {
	*T
	Record

	RType() RType
	RSize() uint16
	Fill_Raw([]byte) error
	ToBytes([]byte) error
}

///////////////////////////////////////////////////////////////////////////////

// RHeader is the 16-byte header common to every record variant.
type RHeader struct {
	Length      uint8 // record length in 32-bit words
	RType       RType // wire type-ID
	PublisherID uint16
	ProductID   uint32
	TsEvent     uint64 // matching-engine timestamp, ns since UNIX epoch
}

const RHeaderSize = 16

func fillRHeaderRaw(b []byte, h *RHeader) error {
	if len(b) < RHeaderSize {
		return &ErrTruncatedMetadata{Section: "record header", Index: -1, Want: RHeaderSize, Have: len(b)}
	}
	h.Length = readU8(b[0:1])
	h.RType = RType(readU8(b[1:2]))
	h.PublisherID = readU16(b[2:4])
	h.ProductID = readU32(b[4:8])
	h.TsEvent = readU64(b[8:16])
	return nil
}

func (h *RHeader) toBytes(b []byte, rtype RType, size uint16) {
	putU8(b[0:1], uint8(size/4))
	putU8(b[1:2], uint8(rtype))
	putU16(b[2:4], h.PublisherID)
	putU32(b[4:8], h.ProductID)
	putU64(b[8:16], h.TsEvent)
}

// checkRHeader validates a freshly-decoded header against the expected
// type-ID and fixed size, per the record layout registry's constructor
// contract: buffer[1] == T and buffer[0]*4 == S.
func checkRHeader(h RHeader, expected RType, size uint16) error {
	if h.RType != expected {
		return &ErrTypeMismatch{Expected: expected, Found: h.RType}
	}
	if have := uint16(h.Length) * 4; have != size {
		return &ErrTruncatedMetadata{Section: "record header length", Index: -1, Want: int(size), Have: int(have)}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// TickMsg is a market-by-order (Mbo) tick: a single resting order event.
type TickMsg struct {
	Header    RHeader
	OrderID   uint64
	Price     int64
	Size      uint32
	Flags     int8
	ChannelID uint8
	Action    Action
	Side      Side
	TsRecv    uint64
	TsInDelta int32
	Sequence  uint32
}

const TickMsgSize = RHeaderSize + 40

func (*TickMsg) RType() RType {
	return RType_Mbo
}

func (*TickMsg) RSize() uint16 {
	return TickMsgSize
}

func (r *TickMsg) Fill_Raw(b []byte) error {
	if len(b) < TickMsgSize {
		return &ErrTruncatedMetadata{Section: "TickMsg", Index: -1, Want: TickMsgSize, Have: len(b)}
	}
	if err := fillRHeaderRaw(b[0:RHeaderSize], &r.Header); err != nil {
		return err
	}
	if err := checkRHeader(r.Header, RType_Mbo, TickMsgSize); err != nil {
		return err
	}
	body := b[RHeaderSize:]
	r.OrderID = readU64(body[0:8])
	r.Price = readI64(body[8:16])
	r.Size = readU32(body[16:20])
	r.Flags = readI8(body[20:21])
	r.ChannelID = readU8(body[21:22])
	r.Action = Action(readI8(body[22:23]))
	r.Side = Side(readI8(body[23:24]))
	r.TsRecv = readU64(body[24:32])
	r.TsInDelta = readI32(body[32:36])
	r.Sequence = readU32(body[36:40])
	return nil
}

func (r *TickMsg) ToBytes(b []byte) error {
	if len(b) < TickMsgSize {
		return &ErrTruncatedMetadata{Section: "TickMsg", Index: -1, Want: TickMsgSize, Have: len(b)}
	}
	r.Header.toBytes(b[0:RHeaderSize], RType_Mbo, TickMsgSize)
	body := b[RHeaderSize:]
	putU64(body[0:8], r.OrderID)
	putI64(body[8:16], r.Price)
	putU32(body[16:20], r.Size)
	putI8(body[20:21], r.Flags)
	putU8(body[21:22], r.ChannelID)
	putI8(body[22:23], int8(r.Action))
	putI8(body[23:24], int8(r.Side))
	putU64(body[24:32], r.TsRecv)
	putI32(body[32:36], r.TsInDelta)
	putU32(body[36:40], r.Sequence)
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// TradeMsg is a trades-schema (depth-0) tick: one executed trade.
type TradeMsg struct {
	Header    RHeader
	Price     int64
	Size      uint32
	Action    Action
	Side      Side
	Flags     int8
	Depth     uint8
	TsRecv    uint64
	TsInDelta int32
	Sequence  uint32
}

const TradeMsgSize = RHeaderSize + 32

func (*TradeMsg) RType() RType {
	return RType_Mbp0
}

func (*TradeMsg) RSize() uint16 {
	return TradeMsgSize
}

func (r *TradeMsg) Fill_Raw(b []byte) error {
	if len(b) < TradeMsgSize {
		return &ErrTruncatedMetadata{Section: "TradeMsg", Index: -1, Want: TradeMsgSize, Have: len(b)}
	}
	if err := fillRHeaderRaw(b[0:RHeaderSize], &r.Header); err != nil {
		return err
	}
	if err := checkRHeader(r.Header, RType_Mbp0, TradeMsgSize); err != nil {
		return err
	}
	body := b[RHeaderSize:]
	r.Price = readI64(body[0:8])
	r.Size = readU32(body[8:12])
	r.Action = Action(readI8(body[12:13]))
	r.Side = Side(readI8(body[13:14]))
	r.Flags = readI8(body[14:15])
	r.Depth = readU8(body[15:16])
	r.TsRecv = readU64(body[16:24])
	r.TsInDelta = readI32(body[24:28])
	r.Sequence = readU32(body[28:32])
	return nil
}

func (r *TradeMsg) ToBytes(b []byte) error {
	if len(b) < TradeMsgSize {
		return &ErrTruncatedMetadata{Section: "TradeMsg", Index: -1, Want: TradeMsgSize, Have: len(b)}
	}
	r.Header.toBytes(b[0:RHeaderSize], RType_Mbp0, TradeMsgSize)
	body := b[RHeaderSize:]
	putI64(body[0:8], r.Price)
	putU32(body[8:12], r.Size)
	putI8(body[12:13], int8(r.Action))
	putI8(body[13:14], int8(r.Side))
	putI8(body[14:15], r.Flags)
	putU8(body[15:16], r.Depth)
	putU64(body[16:24], r.TsRecv)
	putI32(body[24:28], r.TsInDelta)
	putU32(body[28:32], r.Sequence)
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// BidAskPair is one (bid, ask) book level carried by Mbp1Msg/Mbp10Msg.
type BidAskPair struct {
	BidPx int64
	AskPx int64
	BidSz uint32
	AskSz uint32
	BidCt uint32
	AskCt uint32
}

const BidAskPairSize = 32

func fillBidAskPair(b []byte, p *BidAskPair) {
	p.BidPx = readI64(b[0:8])
	p.AskPx = readI64(b[8:16])
	p.BidSz = readU32(b[16:20])
	p.AskSz = readU32(b[20:24])
	p.BidCt = readU32(b[24:28])
	p.AskCt = readU32(b[28:32])
}

func (p *BidAskPair) toBytes(b []byte) {
	putI64(b[0:8], p.BidPx)
	putI64(b[8:16], p.AskPx)
	putU32(b[16:20], p.BidSz)
	putU32(b[20:24], p.AskSz)
	putU32(b[24:28], p.BidCt)
	putU32(b[28:32], p.AskCt)
}

///////////////////////////////////////////////////////////////////////////////

// Mbp1Msg is a market-by-price depth-1 tick: a trade-shaped event plus the
// single best bid/ask level at the time of the event. Also used for the
// Tbbo schema.
type Mbp1Msg struct {
	Header    RHeader
	Price     int64
	Size      uint32
	Action    Action
	Side      Side
	Flags     int8
	Depth     uint8
	TsRecv    uint64
	TsInDelta int32
	Sequence  uint32
	Levels    [1]BidAskPair
}

const Mbp1MsgSize = RHeaderSize + 32 + BidAskPairSize

func (*Mbp1Msg) RType() RType {
	return RType_Mbp1
}

func (*Mbp1Msg) RSize() uint16 {
	return Mbp1MsgSize
}

func (r *Mbp1Msg) Fill_Raw(b []byte) error {
	if len(b) < Mbp1MsgSize {
		return &ErrTruncatedMetadata{Section: "Mbp1Msg", Index: -1, Want: Mbp1MsgSize, Have: len(b)}
	}
	if err := fillRHeaderRaw(b[0:RHeaderSize], &r.Header); err != nil {
		return err
	}
	if err := checkRHeader(r.Header, RType_Mbp1, Mbp1MsgSize); err != nil {
		return err
	}
	body := b[RHeaderSize:]
	r.Price = readI64(body[0:8])
	r.Size = readU32(body[8:12])
	r.Action = Action(readI8(body[12:13]))
	r.Side = Side(readI8(body[13:14]))
	r.Flags = readI8(body[14:15])
	r.Depth = readU8(body[15:16])
	r.TsRecv = readU64(body[16:24])
	r.TsInDelta = readI32(body[24:28])
	r.Sequence = readU32(body[28:32])
	fillBidAskPair(body[32:64], &r.Levels[0])
	return nil
}

func (r *Mbp1Msg) ToBytes(b []byte) error {
	if len(b) < Mbp1MsgSize {
		return &ErrTruncatedMetadata{Section: "Mbp1Msg", Index: -1, Want: Mbp1MsgSize, Have: len(b)}
	}
	r.Header.toBytes(b[0:RHeaderSize], RType_Mbp1, Mbp1MsgSize)
	body := b[RHeaderSize:]
	putI64(body[0:8], r.Price)
	putU32(body[8:12], r.Size)
	putI8(body[12:13], int8(r.Action))
	putI8(body[13:14], int8(r.Side))
	putI8(body[14:15], r.Flags)
	putU8(body[15:16], r.Depth)
	putU64(body[16:24], r.TsRecv)
	putI32(body[24:28], r.TsInDelta)
	putU32(body[28:32], r.Sequence)
	r.Levels[0].toBytes(body[32:64])
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// Mbp10Msg is a market-by-price depth-10 tick: a trade-shaped event plus
// the ten best bid/ask levels at the time of the event.
type Mbp10Msg struct {
	Header    RHeader
	Price     int64
	Size      uint32
	Action    Action
	Side      Side
	Flags     int8
	Depth     uint8
	TsRecv    uint64
	TsInDelta int32
	Sequence  uint32
	Levels    [10]BidAskPair
}

const Mbp10MsgSize = RHeaderSize + 32 + 10*BidAskPairSize

func (*Mbp10Msg) RType() RType {
	return RType_Mbp10
}

func (*Mbp10Msg) RSize() uint16 {
	return Mbp10MsgSize
}

func (r *Mbp10Msg) Fill_Raw(b []byte) error {
	if len(b) < Mbp10MsgSize {
		return &ErrTruncatedMetadata{Section: "Mbp10Msg", Index: -1, Want: Mbp10MsgSize, Have: len(b)}
	}
	if err := fillRHeaderRaw(b[0:RHeaderSize], &r.Header); err != nil {
		return err
	}
	if err := checkRHeader(r.Header, RType_Mbp10, Mbp10MsgSize); err != nil {
		return err
	}
	body := b[RHeaderSize:]
	r.Price = readI64(body[0:8])
	r.Size = readU32(body[8:12])
	r.Action = Action(readI8(body[12:13]))
	r.Side = Side(readI8(body[13:14]))
	r.Flags = readI8(body[14:15])
	r.Depth = readU8(body[15:16])
	r.TsRecv = readU64(body[16:24])
	r.TsInDelta = readI32(body[24:28])
	r.Sequence = readU32(body[28:32])
	for i := 0; i < 10; i++ {
		off := 32 + i*BidAskPairSize
		fillBidAskPair(body[off:off+BidAskPairSize], &r.Levels[i])
	}
	return nil
}

func (r *Mbp10Msg) ToBytes(b []byte) error {
	if len(b) < Mbp10MsgSize {
		return &ErrTruncatedMetadata{Section: "Mbp10Msg", Index: -1, Want: Mbp10MsgSize, Have: len(b)}
	}
	r.Header.toBytes(b[0:RHeaderSize], RType_Mbp10, Mbp10MsgSize)
	body := b[RHeaderSize:]
	putI64(body[0:8], r.Price)
	putU32(body[8:12], r.Size)
	putI8(body[12:13], int8(r.Action))
	putI8(body[13:14], int8(r.Side))
	putI8(body[14:15], r.Flags)
	putU8(body[15:16], r.Depth)
	putU64(body[16:24], r.TsRecv)
	putI32(body[24:28], r.TsInDelta)
	putU32(body[28:32], r.Sequence)
	for i := 0; i < 10; i++ {
		off := 32 + i*BidAskPairSize
		r.Levels[i].toBytes(body[off : off+BidAskPairSize])
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// OhlcvMsg is one OHLC candlestick (open, high, low, close, volume) for a
// schema's bar interval (1s, 1m, 1h, 1d). The interval is carried in the
// record header's RType, since all four intervals share this layout.
type OhlcvMsg struct {
	Header RHeader
	Open   int64
	High   int64
	Low    int64
	Close  int64
	Volume uint64
}

const OhlcvMsgSize = RHeaderSize + 40

// RType returns the candle interval most recently decoded into or set on
// this record; it defaults to the 1-second bar for a zero-value OhlcvMsg.
func (r *OhlcvMsg) RType() RType {
	switch r.Header.RType {
	case RType_Ohlcv1S, RType_Ohlcv1M, RType_Ohlcv1H, RType_Ohlcv1D:
		return r.Header.RType
	default:
		return RType_Ohlcv1S
	}
}

func (*OhlcvMsg) RSize() uint16 {
	return OhlcvMsgSize
}

func isOhlcvRType(t RType) bool {
	switch t {
	case RType_Ohlcv1S, RType_Ohlcv1M, RType_Ohlcv1H, RType_Ohlcv1D:
		return true
	default:
		return false
	}
}

func (r *OhlcvMsg) Fill_Raw(b []byte) error {
	if len(b) < OhlcvMsgSize {
		return &ErrTruncatedMetadata{Section: "OhlcvMsg", Index: -1, Want: OhlcvMsgSize, Have: len(b)}
	}
	if err := fillRHeaderRaw(b[0:RHeaderSize], &r.Header); err != nil {
		return err
	}
	if !isOhlcvRType(r.Header.RType) {
		return &ErrTypeMismatch{Expected: RType_Ohlcv1S, Found: r.Header.RType}
	}
	if have := uint16(r.Header.Length) * 4; have != OhlcvMsgSize {
		return &ErrTruncatedMetadata{Section: "record header length", Index: -1, Want: OhlcvMsgSize, Have: int(have)}
	}
	body := b[RHeaderSize:]
	r.Open = readI64(body[0:8])
	r.High = readI64(body[8:16])
	r.Low = readI64(body[16:24])
	r.Close = readI64(body[24:32])
	r.Volume = readU64(body[32:40])
	return nil
}

func (r *OhlcvMsg) ToBytes(b []byte) error {
	if len(b) < OhlcvMsgSize {
		return &ErrTruncatedMetadata{Section: "OhlcvMsg", Index: -1, Want: OhlcvMsgSize, Have: len(b)}
	}
	r.Header.toBytes(b[0:RHeaderSize], r.RType(), OhlcvMsgSize)
	body := b[RHeaderSize:]
	putI64(body[0:8], r.Open)
	putI64(body[8:16], r.High)
	putI64(body[16:24], r.Low)
	putI64(body[24:32], r.Close)
	putU64(body[32:40], r.Volume)
	return nil
}
