// Copyright (c) 2024 Neomantra Corp

package dbz

// recordLayout describes one schema's fixed-size wire record: its byte
// size and type-ID, used by the reader and writer to validate records
// without the caller needing to know the concrete Go type up front.
type recordLayout struct {
	Size  uint16
	RType RType
}

// schemaLayouts maps each Schema to its record layout. Definition,
// Statistics, and Status have no fixed-size record variant in this
// codec; they round-trip through the Schema enum but are rejected by
// LayoutForSchema.
var schemaLayouts = map[Schema]recordLayout{
	Schema_Mbo:     {Size: TickMsgSize, RType: RType_Mbo},
	Schema_Mbp1:    {Size: Mbp1MsgSize, RType: RType_Mbp1},
	Schema_Tbbo:    {Size: Mbp1MsgSize, RType: RType_Mbp1},
	Schema_Mbp10:   {Size: Mbp10MsgSize, RType: RType_Mbp10},
	Schema_Trades:  {Size: TradeMsgSize, RType: RType_Mbp0},
	Schema_Ohlcv1S: {Size: OhlcvMsgSize, RType: RType_Ohlcv1S},
	Schema_Ohlcv1M: {Size: OhlcvMsgSize, RType: RType_Ohlcv1M},
	Schema_Ohlcv1H: {Size: OhlcvMsgSize, RType: RType_Ohlcv1H},
	Schema_Ohlcv1D: {Size: OhlcvMsgSize, RType: RType_Ohlcv1D},
}

// LayoutForSchema resolves a Schema to its fixed record size and type-ID.
// Definition, Statistics, and Status return ErrNoLayout, since they carry
// no fixed-size record layout in this codec.
func LayoutForSchema(s Schema) (size uint16, rtype RType, err error) {
	l, ok := schemaLayouts[s]
	if !ok {
		switch s {
		case Schema_Definition, Schema_Statistics, Schema_Status:
			return 0, 0, ErrNoLayout
		default:
			return 0, 0, &ErrUnsupported{Feature: "record layout for schema " + s.String()}
		}
	}
	return l.Size, l.RType, nil
}
