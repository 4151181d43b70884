// Copyright (c) 2026 nrbf-go Authors

package nrbf

import "fmt"

// RecordType is the one-byte discriminator leading every NRBF record.
type RecordType uint8

const (
	RecordTypeSerializedStreamHeader   RecordType = 0
	RecordTypeClassWithId               RecordType = 1
	RecordTypeSystemClassWithMembers    RecordType = 2
	RecordTypeClassWithMembers          RecordType = 3
	RecordTypeSystemClassWithMembersAndTypes RecordType = 4
	RecordTypeClassWithMembersAndTypes  RecordType = 5
	RecordTypeBinaryObjectString        RecordType = 6
	RecordTypeBinaryArray                RecordType = 7
	RecordTypeMemberPrimitiveTyped       RecordType = 8
	RecordTypeMemberReference            RecordType = 9
	RecordTypeObjectNull                 RecordType = 10
	RecordTypeMessageEnd                 RecordType = 11
	RecordTypeBinaryLibrary               RecordType = 12
	RecordTypeObjectNullMultiple256       RecordType = 13
	RecordTypeObjectNullMultiple          RecordType = 14
	RecordTypeArraySinglePrimitive        RecordType = 15
	RecordTypeArraySingleObject           RecordType = 16
	RecordTypeArraySingleString           RecordType = 17
	RecordTypeBinaryMethodCall            RecordType = 21
	RecordTypeBinaryMethodReturn          RecordType = 22
)

// RecordTypeFromByte validates b against the closed set of recognised
// RecordType discriminants (spec P4: Ok iff b in {0..17, 21, 22}).
func RecordTypeFromByte(b byte) (RecordType, error) {
	switch b {
	case 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 21, 22:
		return RecordType(b), nil
	default:
		return 0, invalidRecordTypeError(b)
	}
}

func (t RecordType) String() string {
	switch t {
	case RecordTypeSerializedStreamHeader:
		return "SerializationHeader"
	case RecordTypeClassWithId:
		return "ClassWithId"
	case RecordTypeSystemClassWithMembers:
		return "SystemClassWithMembers"
	case RecordTypeClassWithMembers:
		return "ClassWithMembers"
	case RecordTypeSystemClassWithMembersAndTypes:
		return "SystemClassWithMembersAndTypes"
	case RecordTypeClassWithMembersAndTypes:
		return "ClassWithMembersAndTypes"
	case RecordTypeBinaryObjectString:
		return "BinaryObjectString"
	case RecordTypeBinaryArray:
		return "BinaryArray"
	case RecordTypeMemberPrimitiveTyped:
		return "MemberPrimitiveTyped"
	case RecordTypeMemberReference:
		return "MemberReference"
	case RecordTypeObjectNull:
		return "ObjectNull"
	case RecordTypeMessageEnd:
		return "MessageEnd"
	case RecordTypeBinaryLibrary:
		return "BinaryLibrary"
	case RecordTypeObjectNullMultiple256:
		return "ObjectNullMultiple256"
	case RecordTypeObjectNullMultiple:
		return "ObjectNullMultiple"
	case RecordTypeArraySinglePrimitive:
		return "ArraySinglePrimitive"
	case RecordTypeArraySingleObject:
		return "ArraySingleObject"
	case RecordTypeArraySingleString:
		return "ArraySingleString"
	case RecordTypeBinaryMethodCall:
		return "BinaryMethodCall"
	case RecordTypeBinaryMethodReturn:
		return "BinaryMethodReturn"
	default:
		return fmt.Sprintf("RecordType(%d)", uint8(t))
	}
}

// RecordTypeFromName reverse-parses the symbolic names produced by
// RecordType.String, used by the Flat JSON projection to read the
// "record" discriminator back into an enum value.
func RecordTypeFromName(name string) (RecordType, error) {
	for b := 0; b <= 22; b++ {
		rt, err := RecordTypeFromByte(byte(b))
		if err == nil && rt.String() == name {
			return rt, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown record type name %q", ErrInvalidRecordType, name)
}

// BinaryType is the one-byte discriminator for member/array element layout.
type BinaryType uint8

const (
	BinaryTypePrimitive     BinaryType = 0
	BinaryTypeString        BinaryType = 1
	BinaryTypeObject        BinaryType = 2
	BinaryTypeSystemClass   BinaryType = 3
	BinaryTypeClass         BinaryType = 4
	BinaryTypeObjectArray   BinaryType = 5
	BinaryTypeStringArray   BinaryType = 6
	BinaryTypePrimitiveArray BinaryType = 7
)

// BinaryTypeFromByte validates b against the closed {0..7} range.
func BinaryTypeFromByte(b byte) (BinaryType, error) {
	if b > 7 {
		return 0, invalidBinaryTypeError(b)
	}
	return BinaryType(b), nil
}

func (t BinaryType) String() string {
	switch t {
	case BinaryTypePrimitive:
		return "Primitive"
	case BinaryTypeString:
		return "String"
	case BinaryTypeObject:
		return "Object"
	case BinaryTypeSystemClass:
		return "SystemClass"
	case BinaryTypeClass:
		return "Class"
	case BinaryTypeObjectArray:
		return "ObjectArray"
	case BinaryTypeStringArray:
		return "StringArray"
	case BinaryTypePrimitiveArray:
		return "PrimitiveArray"
	default:
		return fmt.Sprintf("BinaryType(%d)", uint8(t))
	}
}

// BinaryTypeFromName reverse-parses BinaryType.String output.
func BinaryTypeFromName(name string) (BinaryType, error) {
	for b := 0; b <= 7; b++ {
		bt := BinaryType(b)
		if bt.String() == name {
			return bt, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown binary type name %q", ErrInvalidBinaryType, name)
}

// PrimitiveType is the one-byte discriminator for a PrimitiveValue's kind.
// Value 4 is reserved/unused by the format.
type PrimitiveType uint8

const (
	PrimitiveTypeBoolean  PrimitiveType = 1
	PrimitiveTypeByte     PrimitiveType = 2
	PrimitiveTypeChar     PrimitiveType = 3
	// 4 is unused.
	PrimitiveTypeDecimal  PrimitiveType = 5
	PrimitiveTypeDouble   PrimitiveType = 6
	PrimitiveTypeInt16    PrimitiveType = 7
	PrimitiveTypeInt32    PrimitiveType = 8
	PrimitiveTypeInt64    PrimitiveType = 9
	PrimitiveTypeSByte    PrimitiveType = 10
	PrimitiveTypeSingle   PrimitiveType = 11
	PrimitiveTypeTimeSpan PrimitiveType = 12
	PrimitiveTypeDateTime PrimitiveType = 13
	PrimitiveTypeUInt16   PrimitiveType = 14
	PrimitiveTypeUInt32   PrimitiveType = 15
	PrimitiveTypeUInt64   PrimitiveType = 16
	PrimitiveTypeNull     PrimitiveType = 17
	PrimitiveTypeString   PrimitiveType = 18
)

// PrimitiveTypeFromByte validates b against the closed {1..3, 5..18} range.
func PrimitiveTypeFromByte(b byte) (PrimitiveType, error) {
	switch {
	case b >= 1 && b <= 3:
		return PrimitiveType(b), nil
	case b >= 5 && b <= 18:
		return PrimitiveType(b), nil
	default:
		return 0, invalidPrimitiveTypeError(b)
	}
}

func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveTypeBoolean:
		return "Boolean"
	case PrimitiveTypeByte:
		return "Byte"
	case PrimitiveTypeChar:
		return "Char"
	case PrimitiveTypeDecimal:
		return "Decimal"
	case PrimitiveTypeDouble:
		return "Double"
	case PrimitiveTypeInt16:
		return "Int16"
	case PrimitiveTypeInt32:
		return "Int32"
	case PrimitiveTypeInt64:
		return "Int64"
	case PrimitiveTypeSByte:
		return "SByte"
	case PrimitiveTypeSingle:
		return "Single"
	case PrimitiveTypeTimeSpan:
		return "TimeSpan"
	case PrimitiveTypeDateTime:
		return "DateTime"
	case PrimitiveTypeUInt16:
		return "UInt16"
	case PrimitiveTypeUInt32:
		return "UInt32"
	case PrimitiveTypeUInt64:
		return "UInt64"
	case PrimitiveTypeNull:
		return "Null"
	case PrimitiveTypeString:
		return "String"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", uint8(t))
	}
}

// PrimitiveTypeFromName reverse-parses PrimitiveType.String output.
func PrimitiveTypeFromName(name string) (PrimitiveType, error) {
	for _, b := range []byte{1, 2, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18} {
		pt := PrimitiveType(b)
		if pt.String() == name {
			return pt, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown primitive type name %q", ErrInvalidPrimitiveType, name)
}

// primitiveFixedWidth returns the fixed wire width, in bytes, of primitive
// type t, or -1 if t has a variable or non-applicable width (String, Null).
func primitiveFixedWidth(t PrimitiveType) int {
	switch t {
	case PrimitiveTypeBoolean, PrimitiveTypeByte, PrimitiveTypeChar, PrimitiveTypeSByte:
		return 1
	case PrimitiveTypeInt16, PrimitiveTypeUInt16:
		return 2
	case PrimitiveTypeInt32, PrimitiveTypeUInt32, PrimitiveTypeSingle:
		return 4
	case PrimitiveTypeInt64, PrimitiveTypeUInt64, PrimitiveTypeDouble, PrimitiveTypeTimeSpan, PrimitiveTypeDateTime:
		return 8
	case PrimitiveTypeDecimal:
		return 16
	default:
		return -1
	}
}
