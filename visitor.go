// Copyright (c) 2026 nrbf-go Authors

package nrbf

import "io"

// Visitor receives one callback per concrete Record variant as a stream is
// walked, mirroring the teacher's per-schema dispatch style even though NRBF
// has a single closed Record sum type rather than many distinct top-level
// schemas.
type Visitor interface {
	OnSerializationHeader(record *SerializationHeader) error
	OnBinaryLibrary(record *BinaryLibrary) error
	OnClassWithMembersAndTypes(record *ClassWithMembersAndTypes) error
	OnSystemClassWithMembersAndTypes(record *SystemClassWithMembersAndTypes) error
	OnClassWithMembers(record *ClassWithMembers) error
	OnSystemClassWithMembers(record *SystemClassWithMembers) error
	OnClassWithId(record *ClassWithId) error
	OnBinaryObjectString(record *BinaryObjectString) error
	OnBinaryArray(record *BinaryArray) error
	OnArraySinglePrimitive(record *ArraySinglePrimitive) error
	OnArraySingleObject(record *ArraySingleObject) error
	OnArraySingleString(record *ArraySingleString) error
	OnMemberPrimitiveTyped(record *MemberPrimitiveTyped) error
	OnMemberReference(record *MemberReference) error
	OnObjectNull(record *ObjectNull) error
	OnObjectNullMultiple(record *ObjectNullMultiple) error
	OnObjectNullMultiple256(record *ObjectNullMultiple256) error
	OnMessageEnd(record *MessageEnd) error

	OnStreamEnd() error
}

// Walk decodes records from d one at a time, dispatching each to the
// matching Visitor method, until a clean end-of-stream (which invokes
// OnStreamEnd) or a decode/visitor error.
func Walk(d *Decoder, visitor Visitor) error {
	for {
		rec, err := d.DecodeNext()
		if err == io.EOF {
			return visitor.OnStreamEnd()
		}
		if err != nil {
			return err
		}
		if err := dispatchVisitor(rec, visitor); err != nil {
			return err
		}
	}
}

func dispatchVisitor(rec Record, visitor Visitor) error {
	switch r := rec.(type) {
	case *SerializationHeader:
		return visitor.OnSerializationHeader(r)
	case *BinaryLibrary:
		return visitor.OnBinaryLibrary(r)
	case *ClassWithMembersAndTypes:
		return visitor.OnClassWithMembersAndTypes(r)
	case *SystemClassWithMembersAndTypes:
		return visitor.OnSystemClassWithMembersAndTypes(r)
	case *ClassWithMembers:
		return visitor.OnClassWithMembers(r)
	case *SystemClassWithMembers:
		return visitor.OnSystemClassWithMembers(r)
	case *ClassWithId:
		return visitor.OnClassWithId(r)
	case *BinaryObjectString:
		return visitor.OnBinaryObjectString(r)
	case *BinaryArray:
		return visitor.OnBinaryArray(r)
	case *ArraySinglePrimitive:
		return visitor.OnArraySinglePrimitive(r)
	case *ArraySingleObject:
		return visitor.OnArraySingleObject(r)
	case *ArraySingleString:
		return visitor.OnArraySingleString(r)
	case *MemberPrimitiveTyped:
		return visitor.OnMemberPrimitiveTyped(r)
	case *MemberReference:
		return visitor.OnMemberReference(r)
	case *ObjectNull:
		return visitor.OnObjectNull(r)
	case *ObjectNullMultiple:
		return visitor.OnObjectNullMultiple(r)
	case *ObjectNullMultiple256:
		return visitor.OnObjectNullMultiple256(r)
	case *MessageEnd:
		return visitor.OnMessageEnd(r)
	default:
		return invalidRecordTypeError(byte(rec.RecordType()))
	}
}
