package nrbf_test

import (
	"bytes"
	"errors"

	nrbf "github.com/nrbf-go/nrbf-go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingVisitor struct {
	nrbf.NullVisitor
	libraryNames []string
	streamEnded  bool
}

func (v *countingVisitor) OnBinaryLibrary(record *nrbf.BinaryLibrary) error {
	v.libraryNames = append(v.libraryNames, record.LibraryName)
	return nil
}

func (v *countingVisitor) OnStreamEnd() error {
	v.streamEnded = true
	return nil
}

var _ = Describe("Visitor dispatch", func() {
	It("routes each record to its matching On* method and calls OnStreamEnd at a clean boundary", func() {
		data := []byte{
			0x0C, 1, 0, 0, 0, 3, 'o', 'n', 'e',
			0x0C, 2, 0, 0, 0, 3, 't', 'w', 'o',
			0x0B,
		}
		dec := nrbf.NewDecoder(bytes.NewReader(data))
		v := &countingVisitor{}

		Expect(nrbf.Walk(dec, v)).To(Succeed())
		Expect(v.libraryNames).To(Equal([]string{"one", "two"}))
		Expect(v.streamEnded).To(BeTrue())
	})

	It("propagates a visitor error without calling OnStreamEnd", func() {
		data := []byte{0x0C, 1, 0, 0, 0, 3, 'o', 'n', 'e', 0x0B}
		dec := nrbf.NewDecoder(bytes.NewReader(data))

		v := &erroringVisitor{}
		err := nrbf.Walk(dec, v)
		Expect(err).To(HaveOccurred())
		Expect(v.streamEnded).To(BeFalse())
	})
})

type erroringVisitor struct {
	countingVisitor
}

var errBoom = errors.New("boom")

func (v *erroringVisitor) OnBinaryLibrary(record *nrbf.BinaryLibrary) error {
	return errBoom
}
