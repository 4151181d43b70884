// Copyright (c) 2026 nrbf-go Authors

package nrbf

// Record is the closed sum type over every NRBF record variant (spec §3).
// The record set is closed by design (spec §9 "Dynamic dispatch"): callers
// are expected to type-switch on the concrete type rather than treat Record
// as an open interface for polymorphic dispatch.
type Record interface {
	RecordType() RecordType
}

// SerializationHeader is the stream-opening record (RecordType 0).
type SerializationHeader struct {
	RootId       int32
	HeaderId     int32
	MajorVersion int32
	MinorVersion int32
}

func (r *SerializationHeader) RecordType() RecordType { return RecordTypeSerializedStreamHeader }

// BinaryLibrary associates a library-id with an assembly name (RecordType 12).
type BinaryLibrary struct {
	LibraryId   int32
	LibraryName string
}

func (r *BinaryLibrary) RecordType() RecordType { return RecordTypeBinaryLibrary }

// ClassWithMembersAndTypes is a fully typed class record with an explicit
// library reference (RecordType 5).
type ClassWithMembersAndTypes struct {
	ClassInfo      ClassInfo
	MemberTypeInfo MemberTypeInfo
	LibraryId      int32
	MemberValues   []ObjectValue
}

func (r *ClassWithMembersAndTypes) RecordType() RecordType {
	return RecordTypeClassWithMembersAndTypes
}

// SystemClassWithMembersAndTypes is a fully typed class record for a system
// (mscorlib) type, which carries no library-id (RecordType 4).
type SystemClassWithMembersAndTypes struct {
	ClassInfo      ClassInfo
	MemberTypeInfo MemberTypeInfo
	MemberValues   []ObjectValue
}

func (r *SystemClassWithMembersAndTypes) RecordType() RecordType {
	return RecordTypeSystemClassWithMembersAndTypes
}

// ClassWithMembers is an untyped class record: members are read by
// recursively decoding the next record (RecordType 3).
type ClassWithMembers struct {
	ClassInfo    ClassInfo
	LibraryId    int32
	MemberValues []ObjectValue
}

func (r *ClassWithMembers) RecordType() RecordType { return RecordTypeClassWithMembers }

// SystemClassWithMembers is the system-type analogue of ClassWithMembers,
// with no library-id (RecordType 2).
type SystemClassWithMembers struct {
	ClassInfo    ClassInfo
	MemberValues []ObjectValue
}

func (r *SystemClassWithMembers) RecordType() RecordType { return RecordTypeSystemClassWithMembers }

// ClassWithId references a previously-seen typed or untyped class by its
// object-id, reusing that class's layout (RecordType 1).
type ClassWithId struct {
	ObjectId     int32
	MetadataId   int32
	MemberValues []ObjectValue
}

func (r *ClassWithId) RecordType() RecordType { return RecordTypeClassWithId }

// BinaryObjectString is a standalone length-prefixed string object
// (RecordType 6).
type BinaryObjectString struct {
	ObjectId int32
	Value    string
}

func (r *BinaryObjectString) RecordType() RecordType { return RecordTypeBinaryObjectString }

// BinaryArray is a multi-dimensional, possibly-non-zero-based array
// (RecordType 7). LowerBounds is only populated when BinaryArrayTypeEnum is
// one of the bounded array-type-enum values (3, 4, 5 — see decodeBinaryArray).
type BinaryArray struct {
	ObjectId             int32
	BinaryArrayTypeEnum  byte
	Rank                 int32
	Lengths              []int32
	LowerBounds          []int32
	TypeEnum             BinaryType
	AdditionalTypeInfo   AdditionalTypeInfo
	ElementValues        []ObjectValue
}

func (r *BinaryArray) RecordType() RecordType { return RecordTypeBinaryArray }

// ArraySinglePrimitive is a flat array of raw, untagged primitive values
// (RecordType 15).
type ArraySinglePrimitive struct {
	ObjectId          int32
	Length            int32
	PrimitiveTypeEnum PrimitiveType
	ElementValues     []PrimitiveValue
}

func (r *ArraySinglePrimitive) RecordType() RecordType { return RecordTypeArraySinglePrimitive }

// ArraySingleObject is a flat array whose elements are ObjectValues
// (RecordType 16).
type ArraySingleObject struct {
	ObjectId      int32
	Length        int32
	ElementValues []ObjectValue
}

func (r *ArraySingleObject) RecordType() RecordType { return RecordTypeArraySingleObject }

// ArraySingleString is a flat array of string ObjectValues (RecordType 17).
type ArraySingleString struct {
	ObjectId      int32
	Length        int32
	ElementValues []ObjectValue
}

func (r *ArraySingleString) RecordType() RecordType { return RecordTypeArraySingleString }

// MemberPrimitiveTyped is a standalone typed primitive value (RecordType 8).
type MemberPrimitiveTyped struct {
	PrimitiveTypeEnum PrimitiveType
	Value             PrimitiveValue
}

func (r *MemberPrimitiveTyped) RecordType() RecordType { return RecordTypeMemberPrimitiveTyped }

// MemberReference is a back-reference to a previously-seen object-id
// (RecordType 9).
type MemberReference struct {
	IdRef int32
}

func (r *MemberReference) RecordType() RecordType { return RecordTypeMemberReference }

// ObjectNull is a single null slot (RecordType 10).
type ObjectNull struct{}

func (r *ObjectNull) RecordType() RecordType { return RecordTypeObjectNull }

// ObjectNullMultiple is a run of null slots with an int32 count
// (RecordType 14).
type ObjectNullMultiple struct {
	NullCount int32
}

func (r *ObjectNullMultiple) RecordType() RecordType { return RecordTypeObjectNullMultiple }

// ObjectNullMultiple256 is a run of null slots with a byte count
// (RecordType 13).
type ObjectNullMultiple256 struct {
	NullCount byte
}

func (r *ObjectNullMultiple256) RecordType() RecordType { return RecordTypeObjectNullMultiple256 }

// MessageEnd is the stream-closing record (RecordType 11).
type MessageEnd struct{}

func (r *MessageEnd) RecordType() RecordType { return RecordTypeMessageEnd }

// arrayBoundedTypeEnums are the BinaryArray.BinaryArrayTypeEnum values that
// carry an explicit LowerBounds sequence alongside Lengths (spec §4.1).
var arrayBoundedTypeEnums = map[byte]bool{3: true, 4: true, 5: true}
