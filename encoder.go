// Copyright (c) 2026 nrbf-go Authors

package nrbf

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
)

// DefaultEncodeBufferSize mirrors DefaultDecodeBufferSize.
const DefaultEncodeBufferSize = 64 * 1024

// Encoder is the byte-exact inverse of Decoder (spec §4.2, P1): encoding
// every record Decoder can produce, in order, reproduces the original byte
// stream exactly. Encoder does not maintain a class-metadata registry —
// every record it is given already carries everything needed to serialize
// it, including ClassWithId, whose member encoding is resolved purely from
// the shape of its own MemberValues (see encodeMemberValue).
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder constructs an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriterSize(w, DefaultEncodeBufferSize)}
}

// Flush writes any buffered bytes to the underlying writer.
func (e *Encoder) Flush() error { return e.w.Flush() }

///////////////////////////////////////////////////////////////////////////////
// low-level byte writing

func (e *Encoder) writeByte(b byte) error { return e.w.WriteByte(b) }

func (e *Encoder) writeBytes(buf []byte) error {
	_, err := e.w.Write(buf)
	return err
}

func (e *Encoder) writeI32(v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return e.writeBytes(buf[:])
}

func (e *Encoder) writeString(s string) error {
	return writeLengthPrefixedString(e.w, s)
}

func (e *Encoder) writeTag(rt RecordType) error { return e.writeByte(byte(rt)) }

///////////////////////////////////////////////////////////////////////////////
// top-level dispatch

// Encode writes one record's full wire representation, tag byte included.
func (e *Encoder) Encode(rec Record) error {
	switch r := rec.(type) {
	case *SerializationHeader:
		return e.encodeSerializationHeader(r)
	case *BinaryLibrary:
		return e.encodeBinaryLibrary(r)
	case *ClassWithMembersAndTypes:
		return e.encodeClassWithMembersAndTypes(r)
	case *SystemClassWithMembersAndTypes:
		return e.encodeSystemClassWithMembersAndTypes(r)
	case *ClassWithMembers:
		return e.encodeClassWithMembers(r)
	case *SystemClassWithMembers:
		return e.encodeSystemClassWithMembers(r)
	case *ClassWithId:
		return e.encodeClassWithId(r)
	case *BinaryObjectString:
		return e.encodeBinaryObjectString(r)
	case *BinaryArray:
		return e.encodeBinaryArray(r)
	case *ArraySinglePrimitive:
		return e.encodeArraySinglePrimitive(r)
	case *ArraySingleObject:
		return e.encodeArraySingleObject(r)
	case *ArraySingleString:
		return e.encodeArraySingleString(r)
	case *MemberPrimitiveTyped:
		return e.encodeMemberPrimitiveTyped(r)
	case *MemberReference:
		return e.encodeMemberReference(r)
	case *ObjectNull:
		return e.writeTag(RecordTypeObjectNull)
	case *MessageEnd:
		return e.writeTag(RecordTypeMessageEnd)
	case *ObjectNullMultiple:
		return e.encodeObjectNullMultiple(r)
	case *ObjectNullMultiple256:
		return e.encodeObjectNullMultiple256(r)
	default:
		return fmt.Errorf("nrbf: unknown record type %T", rec)
	}
}

func (e *Encoder) encodeClassInfo(ci ClassInfo) error {
	if err := e.writeI32(ci.ObjectId); err != nil {
		return err
	}
	if err := e.writeString(ci.Name); err != nil {
		return err
	}
	if err := e.writeI32(ci.MemberCount); err != nil {
		return err
	}
	for _, name := range ci.MemberNames {
		if err := e.writeString(name); err != nil {
			return err
		}
	}
	return nil
}

// encodeMemberTypeInfo writes all BinaryType tags, then all AdditionalTypeInfo
// values — mirrors the two-pass read order exactly (spec SUPPLEMENTED
// FEATURES, grounded on original_source/src/encoder.rs).
func (e *Encoder) encodeMemberTypeInfo(mti MemberTypeInfo) error {
	for _, bt := range mti.BinaryTypes {
		if err := e.writeByte(byte(bt)); err != nil {
			return err
		}
	}
	for i, info := range mti.AdditionalInfos {
		if err := e.encodeAdditionalTypeInfo(mti.BinaryTypes[i], info); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeAdditionalTypeInfo(bt BinaryType, info AdditionalTypeInfo) error {
	switch bt {
	case BinaryTypePrimitive, BinaryTypePrimitiveArray:
		return e.writeByte(byte(*info.Primitive))
	case BinaryTypeSystemClass:
		return e.writeString(*info.Name)
	case BinaryTypeClass:
		if err := e.writeString(*info.Name); err != nil {
			return err
		}
		return e.writeI32(*info.LibraryId)
	default:
		return nil
	}
}

func (e *Encoder) writePrimitiveValue(v PrimitiveValue) error {
	switch v.Type {
	case PrimitiveTypeBoolean:
		if v.Bool {
			return e.writeByte(1)
		}
		return e.writeByte(0)
	case PrimitiveTypeByte:
		return e.writeByte(v.Byte)
	case PrimitiveTypeChar:
		return e.writeByte(byte(v.Char))
	case PrimitiveTypeDecimal:
		buf, err := hex.DecodeString(v.Decimal)
		if err != nil || len(buf) != 16 {
			return ErrMalformedDecimal
		}
		return e.writeBytes(buf)
	case PrimitiveTypeDouble:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.Double))
		return e.writeBytes(buf[:])
	case PrimitiveTypeInt16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v.Int16))
		return e.writeBytes(buf[:])
	case PrimitiveTypeInt32:
		return e.writeI32(v.Int32)
	case PrimitiveTypeInt64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.Int64))
		return e.writeBytes(buf[:])
	case PrimitiveTypeSByte:
		return e.writeByte(byte(v.SByte))
	case PrimitiveTypeSingle:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v.Single))
		return e.writeBytes(buf[:])
	case PrimitiveTypeTimeSpan:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.TimeSpan))
		return e.writeBytes(buf[:])
	case PrimitiveTypeDateTime:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], v.DateTime)
		return e.writeBytes(buf[:])
	case PrimitiveTypeUInt16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], v.UInt16)
		return e.writeBytes(buf[:])
	case PrimitiveTypeUInt32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], v.UInt32)
		return e.writeBytes(buf[:])
	case PrimitiveTypeUInt64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], v.UInt64)
		return e.writeBytes(buf[:])
	case PrimitiveTypeNull:
		return nil
	case PrimitiveTypeString:
		return e.writeString(v.String)
	default:
		return invalidPrimitiveTypeError(byte(v.Type))
	}
}

// encodeMemberValue writes a class member's ObjectValue. Class members never
// carry a collapsed-null placeholder (that artifact is introduced only by
// readAllElements for array elements), so the field actually populated tells
// us unambiguously how it must be written: an inline primitive, or a full
// recursively-encoded record. This holds for ClassWithId too, which is why
// Encoder needs no class-metadata registry of its own.
func (e *Encoder) encodeMemberValue(ov ObjectValue) error {
	if ov.Primitive != nil {
		return e.writePrimitiveValue(*ov.Primitive)
	}
	return e.Encode(ov.Record)
}

// encodeArrayElement writes one logical array/BinaryArray element. Under a
// Primitive BinaryType, values are always written inline. Otherwise, a
// Record-bearing element is encoded as itself, and a Primitive(Null)
// element — the expanded remnant of a null-run record — is written back out
// as its own standalone ObjectNull record rather than re-compressed into a
// run (spec SUPPLEMENTED FEATURES, verbatim from encoder.rs::write_object_value).
func (e *Encoder) encodeArrayElement(bt BinaryType, ov ObjectValue) error {
	if bt == BinaryTypePrimitive {
		return e.writePrimitiveValue(*ov.Primitive)
	}
	if ov.Record != nil {
		return e.Encode(ov.Record)
	}
	return e.writeTag(RecordTypeObjectNull)
}

func (e *Encoder) encodeSerializationHeader(r *SerializationHeader) error {
	if err := e.writeTag(RecordTypeSerializedStreamHeader); err != nil {
		return err
	}
	if err := e.writeI32(r.RootId); err != nil {
		return err
	}
	if err := e.writeI32(r.HeaderId); err != nil {
		return err
	}
	if err := e.writeI32(r.MajorVersion); err != nil {
		return err
	}
	return e.writeI32(r.MinorVersion)
}

func (e *Encoder) encodeBinaryLibrary(r *BinaryLibrary) error {
	if err := e.writeTag(RecordTypeBinaryLibrary); err != nil {
		return err
	}
	if err := e.writeI32(r.LibraryId); err != nil {
		return err
	}
	return e.writeString(r.LibraryName)
}

func (e *Encoder) encodeClassWithMembersAndTypes(r *ClassWithMembersAndTypes) error {
	if err := e.writeTag(RecordTypeClassWithMembersAndTypes); err != nil {
		return err
	}
	if err := e.encodeClassInfo(r.ClassInfo); err != nil {
		return err
	}
	if err := e.encodeMemberTypeInfo(r.MemberTypeInfo); err != nil {
		return err
	}
	if err := e.writeI32(r.LibraryId); err != nil {
		return err
	}
	for _, mv := range r.MemberValues {
		if err := e.encodeMemberValue(mv); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeSystemClassWithMembersAndTypes(r *SystemClassWithMembersAndTypes) error {
	if err := e.writeTag(RecordTypeSystemClassWithMembersAndTypes); err != nil {
		return err
	}
	if err := e.encodeClassInfo(r.ClassInfo); err != nil {
		return err
	}
	if err := e.encodeMemberTypeInfo(r.MemberTypeInfo); err != nil {
		return err
	}
	for _, mv := range r.MemberValues {
		if err := e.encodeMemberValue(mv); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeClassWithMembers(r *ClassWithMembers) error {
	if err := e.writeTag(RecordTypeClassWithMembers); err != nil {
		return err
	}
	if err := e.encodeClassInfo(r.ClassInfo); err != nil {
		return err
	}
	if err := e.writeI32(r.LibraryId); err != nil {
		return err
	}
	for _, mv := range r.MemberValues {
		if err := e.encodeMemberValue(mv); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeSystemClassWithMembers(r *SystemClassWithMembers) error {
	if err := e.writeTag(RecordTypeSystemClassWithMembers); err != nil {
		return err
	}
	if err := e.encodeClassInfo(r.ClassInfo); err != nil {
		return err
	}
	for _, mv := range r.MemberValues {
		if err := e.encodeMemberValue(mv); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeClassWithId(r *ClassWithId) error {
	if err := e.writeTag(RecordTypeClassWithId); err != nil {
		return err
	}
	if err := e.writeI32(r.ObjectId); err != nil {
		return err
	}
	if err := e.writeI32(r.MetadataId); err != nil {
		return err
	}
	for _, mv := range r.MemberValues {
		if err := e.encodeMemberValue(mv); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeBinaryObjectString(r *BinaryObjectString) error {
	if err := e.writeTag(RecordTypeBinaryObjectString); err != nil {
		return err
	}
	if err := e.writeI32(r.ObjectId); err != nil {
		return err
	}
	return e.writeString(r.Value)
}

func (e *Encoder) encodeBinaryArray(r *BinaryArray) error {
	if err := e.writeTag(RecordTypeBinaryArray); err != nil {
		return err
	}
	if err := e.writeI32(r.ObjectId); err != nil {
		return err
	}
	if err := e.writeByte(r.BinaryArrayTypeEnum); err != nil {
		return err
	}
	if err := e.writeI32(r.Rank); err != nil {
		return err
	}
	for _, length := range r.Lengths {
		if err := e.writeI32(length); err != nil {
			return err
		}
	}
	if arrayBoundedTypeEnums[r.BinaryArrayTypeEnum] {
		for _, lb := range r.LowerBounds {
			if err := e.writeI32(lb); err != nil {
				return err
			}
		}
	}
	if err := e.writeByte(byte(r.TypeEnum)); err != nil {
		return err
	}
	if err := e.encodeAdditionalTypeInfo(r.TypeEnum, r.AdditionalTypeInfo); err != nil {
		return err
	}
	for _, ev := range r.ElementValues {
		if err := e.encodeArrayElement(r.TypeEnum, ev); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeArraySinglePrimitive(r *ArraySinglePrimitive) error {
	if err := e.writeTag(RecordTypeArraySinglePrimitive); err != nil {
		return err
	}
	if err := e.writeI32(r.ObjectId); err != nil {
		return err
	}
	if err := e.writeI32(r.Length); err != nil {
		return err
	}
	if err := e.writeByte(byte(r.PrimitiveTypeEnum)); err != nil {
		return err
	}
	for _, v := range r.ElementValues {
		if err := e.writePrimitiveValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeArraySingleObject(r *ArraySingleObject) error {
	if err := e.writeTag(RecordTypeArraySingleObject); err != nil {
		return err
	}
	if err := e.writeI32(r.ObjectId); err != nil {
		return err
	}
	if err := e.writeI32(r.Length); err != nil {
		return err
	}
	for _, ev := range r.ElementValues {
		if err := e.encodeArrayElement(BinaryTypeObject, ev); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeArraySingleString(r *ArraySingleString) error {
	if err := e.writeTag(RecordTypeArraySingleString); err != nil {
		return err
	}
	if err := e.writeI32(r.ObjectId); err != nil {
		return err
	}
	if err := e.writeI32(r.Length); err != nil {
		return err
	}
	for _, ev := range r.ElementValues {
		if err := e.encodeArrayElement(BinaryTypeString, ev); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeMemberPrimitiveTyped(r *MemberPrimitiveTyped) error {
	if err := e.writeTag(RecordTypeMemberPrimitiveTyped); err != nil {
		return err
	}
	if err := e.writeByte(byte(r.PrimitiveTypeEnum)); err != nil {
		return err
	}
	return e.writePrimitiveValue(r.Value)
}

func (e *Encoder) encodeMemberReference(r *MemberReference) error {
	if err := e.writeTag(RecordTypeMemberReference); err != nil {
		return err
	}
	return e.writeI32(r.IdRef)
}

func (e *Encoder) encodeObjectNullMultiple(r *ObjectNullMultiple) error {
	if err := e.writeTag(RecordTypeObjectNullMultiple); err != nil {
		return err
	}
	return e.writeI32(r.NullCount)
}

func (e *Encoder) encodeObjectNullMultiple256(r *ObjectNullMultiple256) error {
	if err := e.writeTag(RecordTypeObjectNullMultiple256); err != nil {
		return err
	}
	return e.writeByte(r.NullCount)
}
