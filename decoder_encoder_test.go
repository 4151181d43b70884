package nrbf_test

import (
	"bytes"

	nrbf "github.com/nrbf-go/nrbf-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decoder/Encoder concrete scenarios (spec §8)", func() {
	It("scenario 1: empty header stream decodes to SerializationHeader, MessageEnd", func() {
		data := []byte{
			0x00, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0,
			0x0B,
		}
		dec := nrbf.NewDecoder(bytes.NewReader(data))
		records, err := dec.All()
		Expect(err).To(BeNil())
		Expect(records).To(Equal([]nrbf.Record{
			&nrbf.SerializationHeader{RootId: 0, HeaderId: 0, MajorVersion: 1, MinorVersion: 0},
			&nrbf.MessageEnd{},
		}))
	})

	It("scenario 2: BinaryLibrary populates the library registry", func() {
		data := []byte{0x0C, 2, 0, 0, 0, 3, 'f', 'o', 'o'}
		dec := nrbf.NewDecoder(bytes.NewReader(data))
		rec, err := dec.DecodeNext()
		Expect(err).To(BeNil())
		Expect(rec).To(Equal(&nrbf.BinaryLibrary{LibraryId: 2, LibraryName: "foo"}))
		Expect(dec.LibraryRegistry()).To(Equal(map[int32]string{2: "foo"}))
	})

	It("scenario 3: ObjectNullMultiple inside ArraySingleObject expands to logical null slots", func() {
		var buf bytes.Buffer

		buf.WriteByte(0x10) // RecordTypeArraySingleObject
		buf.Write([]byte{9, 0, 0, 0})  // object_id = 9
		buf.Write([]byte{5, 0, 0, 0})  // length = 5
		buf.WriteByte(0x09)            // MemberReference tag
		buf.Write([]byte{1, 0, 0, 0})  // id_ref = 1
		buf.WriteByte(0x0E)            // ObjectNullMultiple tag
		buf.Write([]byte{3, 0, 0, 0})  // count = 3
		buf.WriteByte(0x09)            // MemberReference tag
		buf.Write([]byte{2, 0, 0, 0})  // id_ref = 2

		dec := nrbf.NewDecoder(&buf)
		rec, err := dec.DecodeNext()
		Expect(err).To(BeNil())

		arr, ok := rec.(*nrbf.ArraySingleObject)
		Expect(ok).To(BeTrue())
		Expect(arr.Length).To(Equal(int32(5)))
		Expect(arr.ElementValues).To(HaveLen(5))
		Expect(arr.ElementValues[0].Record).To(Equal(&nrbf.MemberReference{IdRef: 1}))
		Expect(arr.ElementValues[1].IsNull()).To(BeTrue())
		Expect(arr.ElementValues[2].IsNull()).To(BeTrue())
		Expect(arr.ElementValues[3].IsNull()).To(BeTrue())
		Expect(arr.ElementValues[4].Record).To(Equal(&nrbf.MemberReference{IdRef: 2}))
	})

	It("scenario 4: ClassWithId inherits a prior typed class's member layout", func() {
		var buf bytes.Buffer

		buf.WriteByte(0x04)            // RecordTypeSystemClassWithMembersAndTypes
		buf.Write([]byte{7, 0, 0, 0})  // object_id = 7
		buf.WriteByte(6)               // name length = 6
		buf.WriteString("Widget")
		buf.Write([]byte{1, 0, 0, 0}) // member_count = 1
		buf.WriteByte(3)              // member name length
		buf.WriteString("Num")
		buf.WriteByte(0x00)            // BinaryTypePrimitive
		buf.WriteByte(0x08)            // PrimitiveTypeInt32
		buf.Write([]byte{42, 0, 0, 0}) // value = 42

		buf.WriteByte(0x01)           // RecordTypeClassWithId
		buf.Write([]byte{8, 0, 0, 0}) // object_id = 8
		buf.Write([]byte{7, 0, 0, 0}) // metadata_id = 7
		buf.Write([]byte{99, 0, 0, 0})

		dec := nrbf.NewDecoder(&buf)
		first, err := dec.DecodeNext()
		Expect(err).To(BeNil())
		Expect(first).To(BeAssignableToTypeOf(&nrbf.SystemClassWithMembersAndTypes{}))

		second, err := dec.DecodeNext()
		Expect(err).To(BeNil())
		withId, ok := second.(*nrbf.ClassWithId)
		Expect(ok).To(BeTrue())
		Expect(withId.MemberValues).To(HaveLen(1))
		Expect(*withId.MemberValues[0].Primitive).To(Equal(nrbf.PrimitiveValue{Type: nrbf.PrimitiveTypeInt32, Int32: 99}))
	})

	It("scenario 6: VLQ length prefixes for 200 and 16384", func() {
		var buf bytes.Buffer
		buf.WriteByte(0x06)           // RecordTypeBinaryObjectString
		buf.Write([]byte{1, 0, 0, 0}) // object_id
		buf.Write([]byte{0xC8, 0x01}) // VLQ(200)
		buf.WriteString(string(make([]byte, 200)))

		dec := nrbf.NewDecoder(&buf)
		rec, err := dec.DecodeNext()
		Expect(err).To(BeNil())
		s, ok := rec.(*nrbf.BinaryObjectString)
		Expect(ok).To(BeTrue())
		Expect(s.Value).To(HaveLen(200))

		var buf2 bytes.Buffer
		buf2.WriteByte(0x06)
		buf2.Write([]byte{1, 0, 0, 0})
		buf2.Write([]byte{0x80, 0x80, 0x01}) // VLQ(16384)
		buf2.WriteString(string(make([]byte, 16384)))

		dec2 := nrbf.NewDecoder(&buf2)
		rec2, err := dec2.DecodeNext()
		Expect(err).To(BeNil())
		s2 := rec2.(*nrbf.BinaryObjectString)
		Expect(s2.Value).To(HaveLen(16384))
	})

	It("P1: encode(decode(S)) == S for a small mixed stream", func() {
		data := []byte{
			0x00, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0,
			0x0C, 2, 0, 0, 0, 3, 'f', 'o', 'o',
			0x0B,
		}
		dec := nrbf.NewDecoder(bytes.NewReader(data))
		records, err := dec.All()
		Expect(err).To(BeNil())

		var buf bytes.Buffer
		enc := nrbf.NewEncoder(&buf)
		for _, rec := range records {
			Expect(enc.Encode(rec)).To(Succeed())
		}
		Expect(enc.Flush()).To(Succeed())
		Expect(buf.Bytes()).To(Equal(data))
	})
})
