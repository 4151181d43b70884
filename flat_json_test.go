package nrbf_test

import (
	"bytes"

	nrbf "github.com/nrbf-go/nrbf-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Flat JSON projection (P2)", func() {
	It("round-trips a mixed record sequence including wide-int primitives", func() {
		records := []nrbf.Record{
			&nrbf.SerializationHeader{RootId: 1, HeaderId: -1, MajorVersion: 1, MinorVersion: 0},
			&nrbf.BinaryLibrary{LibraryId: 2, LibraryName: "mscorlib"},
			&nrbf.MemberPrimitiveTyped{
				PrimitiveTypeEnum: nrbf.PrimitiveTypeInt64,
				Value:             nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeInt64, Int64: -9223372036854775000},
			},
			&nrbf.MemberPrimitiveTyped{
				PrimitiveTypeEnum: nrbf.PrimitiveTypeUInt64,
				Value:             nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeUInt64, UInt64: 18446744073709551000},
			},
			&nrbf.MemberPrimitiveTyped{
				PrimitiveTypeEnum: nrbf.PrimitiveTypeDateTime,
				Value:             nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeDateTime, DateTime: 637000000000000000},
			},
			&nrbf.MemberPrimitiveTyped{
				PrimitiveTypeEnum: nrbf.PrimitiveTypeTimeSpan,
				Value:             nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeTimeSpan, TimeSpan: -600000000},
			},
			&nrbf.BinaryObjectString{ObjectId: 3, Value: "héllo"},
			&nrbf.MessageEnd{},
		}

		var buf bytes.Buffer
		Expect(nrbf.FlatEncode(&buf, records)).To(Succeed())

		decoded, err := nrbf.FlatDecode(&buf)
		Expect(err).To(BeNil())
		Expect(decoded).To(Equal(records))
	})

	It("preserves Decimal as opaque hex and Null as a zero-width primitive", func() {
		records := []nrbf.Record{
			&nrbf.MemberPrimitiveTyped{
				PrimitiveTypeEnum: nrbf.PrimitiveTypeDecimal,
				Value:             nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeDecimal, Decimal: "0123456789abcdef0123456789abcdef"},
			},
			&nrbf.MemberPrimitiveTyped{
				PrimitiveTypeEnum: nrbf.PrimitiveTypeNull,
				Value:             nrbf.NullPrimitive(),
			},
			&nrbf.ObjectNull{},
		}

		var buf bytes.Buffer
		Expect(nrbf.FlatEncode(&buf, records)).To(Succeed())

		decoded, err := nrbf.FlatDecode(&buf)
		Expect(err).To(BeNil())
		Expect(decoded).To(Equal(records))
	})
})
