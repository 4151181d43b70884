package nrbf_test

import (
	nrbf "github.com/nrbf-go/nrbf-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tag enum exhaustiveness (P4)", func() {
	Context("RecordType", func() {
		It("accepts exactly {0..17, 21, 22} and rejects everything else", func() {
			accepted := map[byte]bool{}
			for _, b := range []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 21, 22} {
				accepted[b] = true
			}
			for b := 0; b <= 255; b++ {
				_, err := nrbf.RecordTypeFromByte(byte(b))
				if accepted[byte(b)] {
					Expect(err).To(BeNil(), "byte %d should be accepted", b)
				} else {
					Expect(err).ToNot(BeNil(), "byte %d should be rejected", b)
				}
			}
		})

		It("round-trips String()/RecordTypeFromName for every accepted value", func() {
			for _, b := range []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 21, 22} {
				rt, err := nrbf.RecordTypeFromByte(b)
				Expect(err).To(BeNil())
				back, err := nrbf.RecordTypeFromName(rt.String())
				Expect(err).To(BeNil())
				Expect(back).To(Equal(rt))
			}
		})
	})

	Context("BinaryType", func() {
		It("accepts exactly {0..7} and rejects everything else", func() {
			for b := 0; b <= 255; b++ {
				_, err := nrbf.BinaryTypeFromByte(byte(b))
				if b <= 7 {
					Expect(err).To(BeNil(), "byte %d should be accepted", b)
				} else {
					Expect(err).ToNot(BeNil(), "byte %d should be rejected", b)
				}
			}
		})
	})

	Context("PrimitiveType", func() {
		It("accepts exactly {1..3, 5..18} and rejects everything else, including the reserved value 4", func() {
			accepted := map[byte]bool{}
			for _, b := range []byte{1, 2, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18} {
				accepted[b] = true
			}
			for b := 0; b <= 255; b++ {
				_, err := nrbf.PrimitiveTypeFromByte(byte(b))
				if accepted[byte(b)] {
					Expect(err).To(BeNil(), "byte %d should be accepted", b)
				} else {
					Expect(err).ToNot(BeNil(), "byte %d should be rejected", b)
				}
			}
			_, err := nrbf.PrimitiveTypeFromByte(4)
			Expect(err).ToNot(BeNil())
		})

		It("round-trips String()/PrimitiveTypeFromName for every accepted value", func() {
			for _, b := range []byte{1, 2, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18} {
				pt, err := nrbf.PrimitiveTypeFromByte(b)
				Expect(err).To(BeNil())
				back, err := nrbf.PrimitiveTypeFromName(pt.String())
				Expect(err).To(BeNil())
				Expect(back).To(Equal(pt))
			}
		})
	})
})
