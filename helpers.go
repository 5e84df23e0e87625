// Copyright (c) 2024 Neomantra Corp

package dbz

import "time"

// FixedPriceScale is the denominator of the fixed-point prices carried by
// TradeMsg, Mbp1Msg, Mbp10Msg, TickMsg, and OhlcvMsg.
const FixedPriceScale float64 = 1_000_000_000.0

// Fixed9ToFloat64 converts a fixed-point price (scaled by 1e9) to a float64.
func Fixed9ToFloat64(fixed int64) float64 {
	return float64(fixed) / FixedPriceScale
}

// TimestampToSecNanos splits a nanosecond UNIX timestamp into seconds and
// the remaining nanoseconds within that second.
func TimestampToSecNanos(tsNanos uint64) (int64, int64) {
	secs := int64(tsNanos / 1e9)
	nanos := int64(tsNanos) - secs*1e9
	return secs, nanos
}

// TimestampToTime converts a nanosecond UNIX timestamp, as used by ts_event,
// ts_recv, start, and end, to a time.Time.
func TimestampToTime(tsNanos uint64) time.Time {
	secs, nanos := TimestampToSecNanos(tsNanos)
	return time.Unix(secs, nanos)
}
