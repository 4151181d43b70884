package nrbf_test

import (
	nrbf "github.com/nrbf-go/nrbf-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PrimitiveValue/ObjectValue", func() {
	It("NullPrimitive is IsNull and carries no other payload", func() {
		v := nrbf.NullPrimitive()
		Expect(v.Type).To(Equal(nrbf.PrimitiveTypeNull))
		Expect(v.IsNull()).To(BeTrue())
		Expect(v).To(Equal(nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeNull}))
	})

	It("a non-null ObjectValue is not IsNull even when Primitive is set to zero values", func() {
		ov := nrbf.ObjectValue{Primitive: &nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeInt32, Int32: 0}}
		Expect(ov.IsNull()).To(BeFalse())
	})

	It("an ObjectValue wrapping Primitive(Null) is IsNull", func() {
		null := nrbf.NullPrimitive()
		ov := nrbf.ObjectValue{Primitive: &null}
		Expect(ov.IsNull()).To(BeTrue())
	})

	It("an ObjectValue wrapping a Record is never IsNull", func() {
		ov := nrbf.ObjectValue{Record: &nrbf.MessageEnd{}}
		Expect(ov.IsNull()).To(BeFalse())
	})
})
