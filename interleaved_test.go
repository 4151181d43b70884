package nrbf_test

import (
	"bytes"

	nrbf "github.com/nrbf-go/nrbf-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func primitiveAdditionalInfo(t nrbf.PrimitiveType) nrbf.AdditionalTypeInfo {
	return nrbf.AdditionalTypeInfo{Primitive: &t}
}

func primitiveValue(v nrbf.PrimitiveValue) nrbf.ObjectValue {
	return nrbf.ObjectValue{Primitive: &v}
}

var _ = Describe("Interleaved JSON projection", func() {
	Context("class-shaped round trip", func() {
		It("preserves member order and typed primitive widths", func() {
			records := []nrbf.Record{
				&nrbf.SystemClassWithMembersAndTypes{
					ClassInfo: nrbf.ClassInfo{
						ObjectId:    1,
						Name:        "Widget",
						MemberCount: 2,
						MemberNames: []string{"Count", "Label"},
					},
					MemberTypeInfo: nrbf.MemberTypeInfo{
						BinaryTypes: []nrbf.BinaryType{nrbf.BinaryTypePrimitive, nrbf.BinaryTypePrimitive},
						AdditionalInfos: []nrbf.AdditionalTypeInfo{
							primitiveAdditionalInfo(nrbf.PrimitiveTypeInt32),
							primitiveAdditionalInfo(nrbf.PrimitiveTypeString),
						},
					},
					MemberValues: []nrbf.ObjectValue{
						primitiveValue(nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeInt32, Int32: 42}),
						primitiveValue(nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeString, String: "hello"}),
					},
				},
			}

			var buf bytes.Buffer
			Expect(nrbf.WriteInterleaved(&buf, records)).To(Succeed())

			decoded, err := nrbf.ParseInterleaved(buf.Bytes())
			Expect(err).To(BeNil())
			Expect(decoded).To(Equal(records))
		})
	})

	Context("ParseInterleavedStrict", func() {
		It("errors instead of guessing when a ClassWithId's metadata id is unknown", func() {
			data := []byte(`[{"$record":"ClassWithId","object_id":2,"metadata_id":999,"$values":[1]}]`)

			_, err := nrbf.ParseInterleavedStrict(data)
			Expect(err).ToNot(BeNil())
		})

		It("still decodes when the metadata id is registered earlier in the same document", func() {
			records := []nrbf.Record{
				&nrbf.SystemClassWithMembersAndTypes{
					ClassInfo: nrbf.ClassInfo{
						ObjectId:    7,
						Name:        "Widget",
						MemberCount: 1,
						MemberNames: []string{"Count"},
					},
					MemberTypeInfo: nrbf.MemberTypeInfo{
						BinaryTypes:     []nrbf.BinaryType{nrbf.BinaryTypePrimitive},
						AdditionalInfos: []nrbf.AdditionalTypeInfo{primitiveAdditionalInfo(nrbf.PrimitiveTypeInt32)},
					},
					MemberValues: []nrbf.ObjectValue{
						primitiveValue(nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeInt32, Int32: 42}),
					},
				},
				&nrbf.ClassWithId{ObjectId: 8, MetadataId: 7, MemberValues: []nrbf.ObjectValue{
					primitiveValue(nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeInt32, Int32: 99}),
				}},
			}

			var buf bytes.Buffer
			Expect(nrbf.WriteInterleaved(&buf, records)).To(Succeed())

			decoded, err := nrbf.ParseInterleavedStrict(buf.Bytes())
			Expect(err).To(BeNil())
			Expect(decoded).To(Equal(records))
		})
	})
})
