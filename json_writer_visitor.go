// Copyright (c) 2026 nrbf-go Authors

package nrbf

import (
	"io"

	"github.com/segmentio/encoding/json"
)

// JSONLinesVisitor is a Visitor that writes each record as a single line of
// Flat JSON to its Writer, suitable for streaming a large NRBF file through
// `jq` one record at a time rather than materializing a JSON array.
type JSONLinesVisitor struct {
	writer io.Writer
}

// NewJSONLinesVisitor creates a JSONLinesVisitor writing to w.
func NewJSONLinesVisitor(w io.Writer) *JSONLinesVisitor {
	return &JSONLinesVisitor{writer: w}
}

func (v *JSONLinesVisitor) writeLine(value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if _, err := v.writer.Write(b); err != nil {
		return err
	}
	_, err = v.writer.Write([]byte{'\n'})
	return err
}

func (v *JSONLinesVisitor) OnSerializationHeader(record *SerializationHeader) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnBinaryLibrary(record *BinaryLibrary) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnClassWithMembersAndTypes(record *ClassWithMembersAndTypes) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnSystemClassWithMembersAndTypes(record *SystemClassWithMembersAndTypes) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnClassWithMembers(record *ClassWithMembers) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnSystemClassWithMembers(record *SystemClassWithMembers) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnClassWithId(record *ClassWithId) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnBinaryObjectString(record *BinaryObjectString) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnBinaryArray(record *BinaryArray) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnArraySinglePrimitive(record *ArraySinglePrimitive) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnArraySingleObject(record *ArraySingleObject) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnArraySingleString(record *ArraySingleString) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnMemberPrimitiveTyped(record *MemberPrimitiveTyped) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnMemberReference(record *MemberReference) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnObjectNull(record *ObjectNull) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnObjectNullMultiple(record *ObjectNullMultiple) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnObjectNullMultiple256(record *ObjectNullMultiple256) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnMessageEnd(record *MessageEnd) error {
	return v.writeLine(recordToFlatValue(record))
}
func (v *JSONLinesVisitor) OnStreamEnd() error { return nil }
