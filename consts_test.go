// Copyright (c) 2024 Neomantra Corp

package dbz_test

import (
	"github.com/neomantra/dbz-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Enum closure", func() {
	Context("Schema", func() {
		all := []dbz.Schema{
			dbz.Schema_Mbo, dbz.Schema_Mbp1, dbz.Schema_Mbp10, dbz.Schema_Tbbo,
			dbz.Schema_Trades, dbz.Schema_Ohlcv1S, dbz.Schema_Ohlcv1M,
			dbz.Schema_Ohlcv1H, dbz.Schema_Ohlcv1D, dbz.Schema_Definition,
			dbz.Schema_Statistics, dbz.Schema_Status,
		}

		It("round-trips every value through its numeric wire form", func() {
			for _, s := range all {
				got, err := dbz.SchemaTryFromUint(uint16(s))
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(s))
			}
		})

		It("round-trips every value through its short name", func() {
			for _, s := range all {
				got, err := dbz.ParseSchema(s.String())
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(s))
			}
		})

		It("rejects an unknown numeric value", func() {
			_, err := dbz.SchemaTryFromUint(999)
			Expect(err).To(BeAssignableToTypeOf(&dbz.ErrUnknownEnum{}))
		})
	})

	Context("SType", func() {
		all := []dbz.SType{
			dbz.SType_InstrumentId, dbz.SType_RawSymbol, dbz.SType_Smart,
			dbz.SType_Continuous, dbz.SType_Parent, dbz.SType_Nasdaq, dbz.SType_Cms,
		}

		It("round-trips every value through its numeric wire form", func() {
			for _, t := range all {
				got, err := dbz.STypeTryFromUint(uint8(t))
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(t))
			}
		})

		It("round-trips every value through its short name", func() {
			for _, t := range all {
				got, err := dbz.ParseSType(t.String())
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(t))
			}
		})
	})

	Context("Compression", func() {
		all := []dbz.Compression{dbz.Compression_None, dbz.Compression_ZStd}

		It("round-trips every value through its numeric wire form", func() {
			for _, c := range all {
				got, err := dbz.CompressionTryFromUint(uint8(c))
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(c))
			}
		})

		It("round-trips every value through its short name", func() {
			for _, c := range all {
				got, err := dbz.ParseCompression(c.String())
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(c))
			}
		})
	})

	Context("RType", func() {
		all := []dbz.RType{
			dbz.RType_Mbp0, dbz.RType_Mbp1, dbz.RType_Mbp10,
			dbz.RType_Ohlcv1S, dbz.RType_Ohlcv1M, dbz.RType_Ohlcv1H, dbz.RType_Ohlcv1D,
			dbz.RType_Mbo,
		}

		It("round-trips every value through its numeric wire form", func() {
			for _, rt := range all {
				got, err := dbz.RTypeTryFromUint(uint8(rt))
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(rt))
			}
		})
	})

	Context("Action", func() {
		all := []dbz.Action{
			dbz.Action_Modify, dbz.Action_Trade, dbz.Action_Fill,
			dbz.Action_Cancel, dbz.Action_Add, dbz.Action_Clear,
		}

		It("round-trips every value through its numeric wire form", func() {
			for _, a := range all {
				got, err := dbz.ActionTryFromInt8(int8(a))
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(a))
			}
		})
	})

	Context("Side", func() {
		all := []dbz.Side{dbz.Side_Ask, dbz.Side_Bid, dbz.Side_None}

		It("round-trips every value through its numeric wire form", func() {
			for _, s := range all {
				got, err := dbz.SideTryFromInt8(int8(s))
				Expect(err).ToNot(HaveOccurred())
				Expect(got).To(Equal(s))
			}
		})
	})
})
