// Copyright (c) 2026 nrbf-go Authors

package nrbf

// NullVisitor is a no-op Visitor implementation, useful as an embeddable
// base for a Visitor that only cares about a handful of record variants.
type NullVisitor struct{}

func (v *NullVisitor) OnSerializationHeader(record *SerializationHeader) error { return nil }
func (v *NullVisitor) OnBinaryLibrary(record *BinaryLibrary) error             { return nil }
func (v *NullVisitor) OnClassWithMembersAndTypes(record *ClassWithMembersAndTypes) error {
	return nil
}
func (v *NullVisitor) OnSystemClassWithMembersAndTypes(record *SystemClassWithMembersAndTypes) error {
	return nil
}
func (v *NullVisitor) OnClassWithMembers(record *ClassWithMembers) error { return nil }
func (v *NullVisitor) OnSystemClassWithMembers(record *SystemClassWithMembers) error {
	return nil
}
func (v *NullVisitor) OnClassWithId(record *ClassWithId) error               { return nil }
func (v *NullVisitor) OnBinaryObjectString(record *BinaryObjectString) error { return nil }
func (v *NullVisitor) OnBinaryArray(record *BinaryArray) error               { return nil }
func (v *NullVisitor) OnArraySinglePrimitive(record *ArraySinglePrimitive) error {
	return nil
}
func (v *NullVisitor) OnArraySingleObject(record *ArraySingleObject) error { return nil }
func (v *NullVisitor) OnArraySingleString(record *ArraySingleString) error { return nil }
func (v *NullVisitor) OnMemberPrimitiveTyped(record *MemberPrimitiveTyped) error {
	return nil
}
func (v *NullVisitor) OnMemberReference(record *MemberReference) error { return nil }
func (v *NullVisitor) OnObjectNull(record *ObjectNull) error           { return nil }
func (v *NullVisitor) OnObjectNullMultiple(record *ObjectNullMultiple) error {
	return nil
}
func (v *NullVisitor) OnObjectNullMultiple256(record *ObjectNullMultiple256) error {
	return nil
}
func (v *NullVisitor) OnMessageEnd(record *MessageEnd) error { return nil }
func (v *NullVisitor) OnStreamEnd() error                    { return nil }
