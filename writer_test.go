// Copyright (c) 2024 Neomantra Corp

package dbz_test

import (
	"bytes"

	"github.com/neomantra/dbz-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Writer", func() {
	Context("WriteHeader / WriteRecord", func() {
		It("rejects a record variant that doesn't match the header's schema", func() {
			var buf bytes.Buffer
			w := dbz.NewWriter(&buf)
			Expect(w.WriteHeader(tradesMetadata(1))).To(Succeed())

			var mbo dbz.TickMsg
			mbo.Header.ProductID = 1
			err := dbz.WriteRecord[dbz.TickMsg](w, &mbo)
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&dbz.ErrTypeMismatch{}))
		})

		It("produces an artifact a Reader can read back", func() {
			var buf bytes.Buffer
			w := dbz.NewWriter(&buf)
			meta := tradesMetadata(2)
			Expect(w.WriteHeader(meta)).To(Succeed())

			t1 := dbz.TradeMsg{Header: dbz.RHeader{ProductID: 1}, Price: 10, Size: 1, Action: 'T', Side: 'B'}
			t2 := dbz.TradeMsg{Header: dbz.RHeader{ProductID: 1}, Price: 20, Size: 2, Action: 'T', Side: 'A'}
			Expect(dbz.WriteRecord[dbz.TradeMsg](w, &t1)).To(Succeed())
			Expect(dbz.WriteRecord[dbz.TradeMsg](w, &t2)).To(Succeed())
			Expect(w.Close()).To(Succeed())

			got, readMeta, err := dbz.ReadToSlice[dbz.TradeMsg](&buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(readMeta.Dataset).To(Equal("GLBX.MDP3"))
			Expect(got).To(HaveLen(2))
			Expect(got[0].Price).To(Equal(int64(10)))
			Expect(got[1].Price).To(Equal(int64(20)))
		})
	})

	Context("WriteSlice", func() {
		It("sets record_count from the slice length", func() {
			trades := []dbz.TradeMsg{
				{Header: dbz.RHeader{ProductID: 1}},
				{Header: dbz.RHeader{ProductID: 1}},
				{Header: dbz.RHeader{ProductID: 1}},
			}
			meta := tradesMetadata(999) // deliberately wrong, must be overwritten
			var buf bytes.Buffer
			Expect(dbz.WriteSlice[dbz.TradeMsg](&buf, meta, trades)).To(Succeed())
			Expect(meta.RecordCount).To(Equal(uint64(3)))

			got, _, err := dbz.ReadToSlice[dbz.TradeMsg](&buf)
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(HaveLen(3))
		})
	})
})
