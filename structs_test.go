// Copyright (c) 2024 Neomantra Corp

package dbz_test

import (
	"github.com/neomantra/dbz-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Records", func() {
	Context("TickMsg", func() {
		It("round-trips through ToBytes/Fill_Raw", func() {
			rec := dbz.TickMsg{
				Header:    dbz.RHeader{PublisherID: 1, ProductID: 42, TsEvent: 1700000000000000000},
				OrderID:   123456789,
				Price:     2600000000000,
				Size:      10,
				Flags:     0,
				ChannelID: 3,
				Action:    'A',
				Side:      'B',
				TsRecv:    1700000000000000100,
				TsInDelta: 500,
				Sequence:  7,
			}
			buf := make([]byte, dbz.TickMsgSize)
			Expect(rec.ToBytes(buf)).To(Succeed())

			var got dbz.TickMsg
			Expect(got.Fill_Raw(buf)).To(Succeed())
			Expect(got.OrderID).To(Equal(rec.OrderID))
			Expect(got.Price).To(Equal(rec.Price))
			Expect(got.Size).To(Equal(rec.Size))
			Expect(got.Action).To(Equal(rec.Action))
			Expect(got.Side).To(Equal(rec.Side))
			Expect(got.TsRecv).To(Equal(rec.TsRecv))
			Expect(got.Sequence).To(Equal(rec.Sequence))
			Expect(got.Header.RType).To(Equal(dbz.RType_Mbo))
		})

		It("rejects a buffer bearing the wrong rtype", func() {
			var other dbz.TradeMsg
			buf := make([]byte, dbz.TradeMsgSize)
			Expect(other.ToBytes(buf)).To(Succeed())

			var got dbz.TickMsg
			padded := append(buf, make([]byte, dbz.TickMsgSize-dbz.TradeMsgSize)...)
			err := got.Fill_Raw(padded)
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&dbz.ErrTypeMismatch{}))
		})
	})

	Context("TradeMsg", func() {
		It("round-trips through ToBytes/Fill_Raw", func() {
			rec := dbz.TradeMsg{
				Header:    dbz.RHeader{Length: dbz.TradeMsgSize / 4, RType: dbz.RType_Mbp0, PublisherID: 2, ProductID: 9, TsEvent: 1},
				Price:     100000000000,
				Size:      5,
				Action:    'T',
				Side:      'A',
				Flags:     0,
				Depth:     0,
				TsRecv:    2,
				TsInDelta: 10,
				Sequence:  99,
			}
			buf := make([]byte, dbz.TradeMsgSize)
			Expect(rec.ToBytes(buf)).To(Succeed())

			var got dbz.TradeMsg
			Expect(got.Fill_Raw(buf)).To(Succeed())
			Expect(got).To(Equal(rec))
		})
	})

	Context("Mbp1Msg", func() {
		It("round-trips including its single book level", func() {
			rec := dbz.Mbp1Msg{
				Header: dbz.RHeader{ProductID: 1},
				Price:  100,
				Size:   1,
				Action: 'T',
				Side:   'B',
				Levels: [1]dbz.BidAskPair{
					{BidPx: 99, AskPx: 101, BidSz: 5, AskSz: 6, BidCt: 1, AskCt: 2},
				},
			}
			buf := make([]byte, dbz.Mbp1MsgSize)
			Expect(rec.ToBytes(buf)).To(Succeed())

			var got dbz.Mbp1Msg
			Expect(got.Fill_Raw(buf)).To(Succeed())
			Expect(got.Levels[0]).To(Equal(rec.Levels[0]))
			Expect(got.Header.RType).To(Equal(dbz.RType_Mbp1))
		})
	})

	Context("Mbp10Msg", func() {
		It("round-trips all ten book levels", func() {
			var rec dbz.Mbp10Msg
			rec.Header.ProductID = 7
			for i := 0; i < 10; i++ {
				rec.Levels[i] = dbz.BidAskPair{
					BidPx: int64(100 - i), AskPx: int64(100 + i),
					BidSz: uint32(i), AskSz: uint32(i + 1),
					BidCt: uint32(i + 2), AskCt: uint32(i + 3),
				}
			}
			buf := make([]byte, dbz.Mbp10MsgSize)
			Expect(rec.ToBytes(buf)).To(Succeed())

			var got dbz.Mbp10Msg
			Expect(got.Fill_Raw(buf)).To(Succeed())
			Expect(got.Levels).To(Equal(rec.Levels))
		})
	})

	Context("OhlcvMsg", func() {
		It("preserves whichever bar-interval rtype it was encoded with", func() {
			rec := dbz.OhlcvMsg{
				Header: dbz.RHeader{RType: dbz.RType_Ohlcv1H, ProductID: 3},
				Open:   100, High: 110, Low: 95, Close: 105, Volume: 42,
			}
			buf := make([]byte, dbz.OhlcvMsgSize)
			Expect(rec.ToBytes(buf)).To(Succeed())

			var got dbz.OhlcvMsg
			Expect(got.Fill_Raw(buf)).To(Succeed())
			Expect(got.Header.RType).To(Equal(dbz.RType_Ohlcv1H))
			Expect(got.Open).To(Equal(rec.Open))
			Expect(got.Volume).To(Equal(rec.Volume))
		})

		It("defaults to the 1-second bar's rtype for a zero-value record", func() {
			var rec dbz.OhlcvMsg
			Expect(rec.RType()).To(Equal(dbz.RType_Ohlcv1S))
		})
	})

	Context("sizes", func() {
		It("matches the wire sizes of the DBZ record variants", func() {
			Expect(uint16(dbz.TickMsgSize)).To(Equal(uint16(56)))
			Expect(uint16(dbz.TradeMsgSize)).To(Equal(uint16(48)))
			Expect(uint16(dbz.Mbp1MsgSize)).To(Equal(uint16(80)))
			Expect(uint16(dbz.Mbp10MsgSize)).To(Equal(uint16(368)))
			Expect(uint16(dbz.OhlcvMsgSize)).To(Equal(uint16(56)))
		})
	})
})
