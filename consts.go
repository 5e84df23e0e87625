// Copyright (c) 2024 Neomantra Corp
//
// Adapted from DataBento's DBN/DBZ:
//   https://github.com/databento/dbn/blob/main/rust/dbn/src/enums.rs
//   https://github.com/databento/dbz/blob/main/rust/dbz-lib/src/read.rs
//

package dbz

// SchemaVersion is the highest DBZ metadata version this package can read.
const SchemaVersion uint8 = 1

// Schema is the data record schema, identifying which tick type a stream
// holds and, through the record registry, the fixed size and type-ID of its
// records.
type Schema uint16

const (
	Schema_Mbo        Schema = 0
	Schema_Mbp1       Schema = 1
	Schema_Mbp10      Schema = 2
	Schema_Tbbo       Schema = 3
	Schema_Trades     Schema = 4
	Schema_Ohlcv1S    Schema = 5
	Schema_Ohlcv1M    Schema = 6
	Schema_Ohlcv1H    Schema = 7
	Schema_Ohlcv1D    Schema = 8
	Schema_Definition Schema = 9
	Schema_Statistics Schema = 10
	Schema_Status     Schema = 11
)

// String returns the short ASCII name of the Schema, or "" if unknown.
func (s Schema) String() string {
	switch s {
	case Schema_Mbo:
		return "mbo"
	case Schema_Mbp1:
		return "mbp-1"
	case Schema_Mbp10:
		return "mbp-10"
	case Schema_Tbbo:
		return "tbbo"
	case Schema_Trades:
		return "trades"
	case Schema_Ohlcv1S:
		return "ohlcv-1s"
	case Schema_Ohlcv1M:
		return "ohlcv-1m"
	case Schema_Ohlcv1H:
		return "ohlcv-1h"
	case Schema_Ohlcv1D:
		return "ohlcv-1d"
	case Schema_Definition:
		return "definition"
	case Schema_Statistics:
		return "statistics"
	case Schema_Status:
		return "status"
	default:
		return ""
	}
}

// SchemaTryFromUint converts a numeric wire value to a Schema.
func SchemaTryFromUint(v uint16) (Schema, error) {
	s := Schema(v)
	if s.String() == "" {
		return 0, &ErrUnknownEnum{Kind: "Schema", Value: uint64(v)}
	}
	return s, nil
}

// ParseSchema converts a Schema's short name back into a Schema.
func ParseSchema(text string) (Schema, error) {
	for _, s := range []Schema{
		Schema_Mbo, Schema_Mbp1, Schema_Mbp10, Schema_Tbbo, Schema_Trades,
		Schema_Ohlcv1S, Schema_Ohlcv1M, Schema_Ohlcv1H, Schema_Ohlcv1D,
		Schema_Definition, Schema_Statistics, Schema_Status,
	} {
		if s.String() == text {
			return s, nil
		}
	}
	return 0, &ErrUnknownEnum{Kind: "Schema", Value: 0}
}

///////////////////////////////////////////////////////////////////////////////

// SType is a symbology type: the namespace in which a symbol is interpreted.
type SType uint8

const (
	SType_InstrumentId SType = 0
	SType_RawSymbol    SType = 1
	SType_Smart        SType = 2
	SType_Continuous   SType = 3
	SType_Parent       SType = 4
	SType_Nasdaq       SType = 5
	SType_Cms          SType = 6
)

// String returns the short ASCII name of the SType, or "" if unknown.
func (t SType) String() string {
	switch t {
	case SType_InstrumentId:
		return "instrument_id"
	case SType_RawSymbol:
		return "raw_symbol"
	case SType_Smart:
		return "smart"
	case SType_Continuous:
		return "continuous"
	case SType_Parent:
		return "parent"
	case SType_Nasdaq:
		return "nasdaq"
	case SType_Cms:
		return "cms"
	default:
		return ""
	}
}

// STypeTryFromUint converts a numeric wire value to an SType.
func STypeTryFromUint(v uint8) (SType, error) {
	t := SType(v)
	if t.String() == "" {
		return 0, &ErrUnknownEnum{Kind: "SType", Value: uint64(v)}
	}
	return t, nil
}

// ParseSType converts an SType's short name back into an SType.
func ParseSType(text string) (SType, error) {
	for _, t := range []SType{
		SType_InstrumentId, SType_RawSymbol, SType_Smart, SType_Continuous,
		SType_Parent, SType_Nasdaq, SType_Cms,
	} {
		if t.String() == text {
			return t, nil
		}
	}
	return 0, &ErrUnknownEnum{Kind: "SType", Value: 0}
}

///////////////////////////////////////////////////////////////////////////////

// Compression is the data output compression mode.
type Compression uint8

const (
	Compression_None Compression = 0
	Compression_ZStd Compression = 1
)

// String returns the short ASCII name of the Compression, or "" if unknown.
func (c Compression) String() string {
	switch c {
	case Compression_None:
		return "none"
	case Compression_ZStd:
		return "zstd"
	default:
		return ""
	}
}

// CompressionTryFromUint converts a numeric wire value to a Compression.
func CompressionTryFromUint(v uint8) (Compression, error) {
	c := Compression(v)
	if c.String() == "" {
		return 0, &ErrUnknownEnum{Kind: "Compression", Value: uint64(v)}
	}
	return c, nil
}

// ParseCompression converts a Compression's short name back into a Compression.
func ParseCompression(text string) (Compression, error) {
	for _, c := range []Compression{Compression_None, Compression_ZStd} {
		if c.String() == text {
			return c, nil
		}
	}
	return 0, &ErrUnknownEnum{Kind: "Compression", Value: 0}
}

///////////////////////////////////////////////////////////////////////////////

// RType is the sentinel value for a record's wire type, stored in every
// record header's rtype byte.
type RType uint8

const (
	RType_Mbp0    RType = 0x00 // Trades / MBP depth-0
	RType_Mbp1    RType = 0x01 // MBP depth-1, also used for Tbbo
	RType_Mbp10   RType = 0x0A // MBP depth-10
	RType_Ohlcv1S RType = 0x20
	RType_Ohlcv1M RType = 0x21
	RType_Ohlcv1H RType = 0x22
	RType_Ohlcv1D RType = 0x23
	RType_Mbo     RType = 0xA0 // Market by order
)

// String returns the short ASCII name of the RType, or "" if unknown.
func (t RType) String() string {
	switch t {
	case RType_Mbp0:
		return "mbp0"
	case RType_Mbp1:
		return "mbp1"
	case RType_Mbp10:
		return "mbp10"
	case RType_Ohlcv1S:
		return "ohlcv1s"
	case RType_Ohlcv1M:
		return "ohlcv1m"
	case RType_Ohlcv1H:
		return "ohlcv1h"
	case RType_Ohlcv1D:
		return "ohlcv1d"
	case RType_Mbo:
		return "mbo"
	default:
		return ""
	}
}

// RTypeTryFromUint converts a numeric wire value to an RType.
func RTypeTryFromUint(v uint8) (RType, error) {
	t := RType(v)
	if t.String() == "" {
		return 0, &ErrUnknownEnum{Kind: "RType", Value: uint64(v)}
	}
	return t, nil
}

///////////////////////////////////////////////////////////////////////////////

// Action is the event action field carried by MBO and trade-shaped records.
type Action int8

const (
	Action_Modify Action = 'M'
	Action_Trade  Action = 'T'
	Action_Fill   Action = 'F'
	Action_Cancel Action = 'C'
	Action_Add    Action = 'A'
	Action_Clear  Action = 'R'
)

// String returns the single-character name of the Action, or "" if unknown.
func (a Action) String() string {
	switch a {
	case Action_Modify, Action_Trade, Action_Fill, Action_Cancel, Action_Add, Action_Clear:
		return string(rune(a))
	default:
		return ""
	}
}

// ActionTryFromInt8 converts a numeric wire value to an Action.
func ActionTryFromInt8(v int8) (Action, error) {
	a := Action(v)
	if a.String() == "" {
		return 0, &ErrUnknownEnum{Kind: "Action", Value: uint64(uint8(v))}
	}
	return a, nil
}

///////////////////////////////////////////////////////////////////////////////

// Side is the side that initiates an order book event.
type Side int8

const (
	Side_Ask  Side = 'A'
	Side_Bid  Side = 'B'
	Side_None Side = 'N'
)

// String returns the single-character name of the Side, or "" if unknown.
func (s Side) String() string {
	switch s {
	case Side_Ask, Side_Bid, Side_None:
		return string(rune(s))
	default:
		return ""
	}
}

// SideTryFromInt8 converts a numeric wire value to a Side.
func SideTryFromInt8(v int8) (Side, error) {
	s := Side(v)
	if s.String() == "" {
		return 0, &ErrUnknownEnum{Kind: "Side", Value: uint64(uint8(v))}
	}
	return s, nil
}
