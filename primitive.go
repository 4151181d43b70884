// Copyright (c) 2026 nrbf-go Authors

package nrbf

// PrimitiveValue is a tagged union over the PrimitiveType variants (spec §3).
// Exactly one field is meaningful, selected by Type; Null carries no payload.
//
// Char preserves the reference decoder's single-byte-as-codepoint behavior
// rather than reading a variable-length UTF-8 code unit, per the byte-exact
// fidelity choice recorded in SPEC_FULL.md/DESIGN.md.
type PrimitiveValue struct {
	Type PrimitiveType

	Bool     bool
	Byte     byte
	Char     rune
	Decimal  string // 16 raw bytes, opaque lowercase hex; never parsed
	Double   float64
	Int16    int16
	Int32    int32
	Int64    int64
	SByte    int8
	Single   float32
	TimeSpan int64
	DateTime uint64
	UInt16   uint16
	UInt32   uint32
	UInt64   uint64
	String   string
}

// NullPrimitive is the zero-width Null primitive value.
func NullPrimitive() PrimitiveValue {
	return PrimitiveValue{Type: PrimitiveTypeNull}
}

// IsNull reports whether v holds the Null primitive.
func (v PrimitiveValue) IsNull() bool {
	return v.Type == PrimitiveTypeNull
}

// AdditionalTypeInfo carries the extra type data that accompanies a
// BinaryType tag for a class member or array element (spec §3).
//
//   - Primitive / PrimitiveArray -> Primitive is set (the PrimitiveType tag)
//   - SystemClass                -> Name is set
//   - Class                      -> Name and LibraryId are set
//   - otherwise (String, Object, ObjectArray, StringArray) -> none set
type AdditionalTypeInfo struct {
	Primitive *PrimitiveType
	Name      *string
	LibraryId *int32
}

func additionalInfoPrimitive(t PrimitiveType) AdditionalTypeInfo {
	return AdditionalTypeInfo{Primitive: &t}
}

func additionalInfoSystemClass(name string) AdditionalTypeInfo {
	return AdditionalTypeInfo{Name: &name}
}

func additionalInfoClass(name string, libraryId int32) AdditionalTypeInfo {
	return AdditionalTypeInfo{Name: &name, LibraryId: &libraryId}
}

// MemberTypeInfo holds the per-member BinaryType/AdditionalTypeInfo tables
// of a typed class record. The two slices always have equal length.
type MemberTypeInfo struct {
	BinaryTypes     []BinaryType
	AdditionalInfos []AdditionalTypeInfo
}

// ClassInfo is the (object-id, type-name, member-names) triple shared by
// every class-shaped record (spec §3).
type ClassInfo struct {
	ObjectId    int32
	Name        string
	MemberCount int32
	MemberNames []string
}

// ObjectValue is the sum type carried by class members and array elements:
// either an inline Primitive, or a nested Record. Record is an interface
// value, which already gives the heap indirection the recursive sum type
// requires (spec §9 "Recursive sum types").
type ObjectValue struct {
	Primitive *PrimitiveValue
	Record    Record
}

func objectValueOfPrimitive(v PrimitiveValue) ObjectValue {
	return ObjectValue{Primitive: &v}
}

func objectValueOfRecord(r Record) ObjectValue {
	return ObjectValue{Record: r}
}

// IsNull reports whether v is an inline Primitive(Null).
func (v ObjectValue) IsNull() bool {
	return v.Primitive != nil && v.Primitive.IsNull()
}
