package nrbf_test

import (
	"bytes"
	"strings"

	nrbf "github.com/nrbf-go/nrbf-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("VarInt and length-prefixed strings", func() {
	Context("ReadVarInt/WriteVarInt round trip", func() {
		It("round-trips small and large values through the public Encoder/Decoder surface", func() {
			// BinaryObjectString's length prefix is itself a VLQ value, so a
			// round trip through the decoder/encoder exercises readVarInt
			// and writeVarInt without exposing them directly.
			for _, n := range []int{0, 1, 127, 128, 16384, 2097151, 5 << 20} {
				value := strings.Repeat("x", n)
				rec := &nrbf.BinaryObjectString{ObjectId: 1, Value: value}

				var buf bytes.Buffer
				enc := nrbf.NewEncoder(&buf)
				Expect(enc.Encode(rec)).To(Succeed())
				Expect(enc.Flush()).To(Succeed())

				dec := nrbf.NewDecoder(&buf)
				decoded, err := dec.DecodeNext()
				Expect(err).To(BeNil())
				Expect(decoded).To(Equal(rec))
			}
		})
	})

	Context("string length ceiling", func() {
		It("rejects a BinaryObjectString whose declared length exceeds MaxStringLength", func() {
			var buf bytes.Buffer
			buf.WriteByte(6) // RecordTypeBinaryObjectString
			buf.Write([]byte{1, 0, 0, 0})
			// VLQ-encode a length one past the cap (256<<20 + 1): 4 continuation bytes and a final byte.
			n := uint32(nrbf.MaxStringLength + 1)
			for i := 0; i < 4; i++ {
				buf.WriteByte(byte(n&0x7f) | 0x80)
				n >>= 7
			}
			buf.WriteByte(byte(n & 0x7f))

			dec := nrbf.NewDecoder(&buf)
			_, err := dec.DecodeNext()
			Expect(err).ToNot(BeNil())
		})
	})
})
