// Copyright (c) 2026 nrbf-go Authors

package nrbf

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"io"
	"math"
)

// DefaultDecodeBufferSize matches the teacher scanner's default buffer size;
// NRBF streams are typically much smaller than market-data files but the
// same generous default avoids needless reallocation on larger payloads.
const DefaultDecodeBufferSize = 64 * 1024

// classRegistryEntry is the class-metadata registry's value type (spec §3):
// a ClassInfo plus the optional MemberTypeInfo/LibraryId recorded when the
// originating record was typed.
type classRegistryEntry struct {
	ClassInfo      ClassInfo
	MemberTypeInfo *MemberTypeInfo
	LibraryId      *int32
}

// Decoder is a streaming, single-threaded NRBF parser. It owns the byte
// source and the class-metadata and library registries for its lifetime
// (spec §4.1, §5). A Decoder is not safe for concurrent use, but distinct
// Decoder instances over distinct sources share no state.
type Decoder struct {
	r      *bufio.Reader
	offset int64

	classRegistry   map[int32]*classRegistryEntry
	libraryRegistry map[int32]string
}

// NewDecoder constructs a Decoder owning the given byte source.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:               bufio.NewReaderSize(r, DefaultDecodeBufferSize),
		classRegistry:   make(map[int32]*classRegistryEntry),
		libraryRegistry: make(map[int32]string),
	}
}

// Offset returns the number of bytes consumed from the source so far.
func (d *Decoder) Offset() int64 { return d.offset }

// LibraryRegistry returns the library-id -> library-name side-product
// accumulated from BinaryLibrary records observed so far. The returned map
// is owned by the Decoder; callers must not mutate it.
func (d *Decoder) LibraryRegistry() map[int32]string { return d.libraryRegistry }

///////////////////////////////////////////////////////////////////////////////
// low-level byte reading

func (d *Decoder) readU8() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}
	d.offset++
	return b, nil
}

func (d *Decoder) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, err
	}
	d.offset += int64(n)
	return buf, nil
}

func (d *Decoder) readI32() (int32, error) {
	buf, err := d.readExact(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

func (d *Decoder) readString() (string, error) {
	s, n, err := readLengthPrefixedString(d.r)
	d.offset += int64(n)
	return s, err
}

///////////////////////////////////////////////////////////////////////////////
// top-level dispatch

// DecodeNext returns the next record, io.EOF at a clean record boundary, or
// a fatal error mid-record. It is not idempotent: each call advances the
// source (spec §4.1).
func (d *Decoder) DecodeNext() (Record, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		// A read failure on the leading tag byte, at a record boundary, is
		// clean end-of-stream, never a propagated error.
		return nil, io.EOF
	}
	d.offset++

	rt, err := RecordTypeFromByte(b)
	if err != nil {
		return nil, err
	}

	switch rt {
	case RecordTypeSerializedStreamHeader:
		return d.decodeSerializationHeader()
	case RecordTypeClassWithId:
		return d.decodeClassWithId()
	case RecordTypeSystemClassWithMembers:
		return d.decodeSystemClassWithMembers()
	case RecordTypeClassWithMembers:
		return d.decodeClassWithMembers()
	case RecordTypeSystemClassWithMembersAndTypes:
		return d.decodeSystemClassWithMembersAndTypes()
	case RecordTypeClassWithMembersAndTypes:
		return d.decodeClassWithMembersAndTypes()
	case RecordTypeBinaryObjectString:
		return d.decodeBinaryObjectString()
	case RecordTypeBinaryArray:
		return d.decodeBinaryArray()
	case RecordTypeMemberPrimitiveTyped:
		return d.decodeMemberPrimitiveTyped()
	case RecordTypeMemberReference:
		return d.decodeMemberReference()
	case RecordTypeObjectNull:
		return &ObjectNull{}, nil
	case RecordTypeMessageEnd:
		return &MessageEnd{}, nil
	case RecordTypeBinaryLibrary:
		return d.decodeBinaryLibrary()
	case RecordTypeObjectNullMultiple256:
		return d.decodeObjectNullMultiple256()
	case RecordTypeObjectNullMultiple:
		return d.decodeObjectNullMultiple()
	case RecordTypeArraySinglePrimitive:
		return d.decodeArraySinglePrimitive()
	case RecordTypeArraySingleObject:
		return d.decodeArraySingleObject()
	case RecordTypeArraySingleString:
		return d.decodeArraySingleString()
	case RecordTypeBinaryMethodCall, RecordTypeBinaryMethodReturn:
		return nil, unimplementedRecordTypeError(b)
	default:
		// unreachable: RecordTypeFromByte already validated b
		return nil, invalidRecordTypeError(b)
	}
}

// All repeatedly calls DecodeNext, returning every record read up to (and
// not including) a clean end-of-stream. It is the lazy-sequence convenience
// operation named in spec §4.1, materialised eagerly since Go has no
// first-class lazy iterator predating range-over-func.
func (d *Decoder) All() ([]Record, error) {
	var records []Record
	for {
		rec, err := d.DecodeNext()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

///////////////////////////////////////////////////////////////////////////////
// per-variant parsers

func (d *Decoder) readClassInfo() (ClassInfo, error) {
	objectId, err := d.readI32()
	if err != nil {
		return ClassInfo{}, err
	}
	name, err := d.readString()
	if err != nil {
		return ClassInfo{}, err
	}
	memberCount, err := d.readI32()
	if err != nil {
		return ClassInfo{}, err
	}
	memberNames := make([]string, memberCount)
	for i := range memberNames {
		memberNames[i], err = d.readString()
		if err != nil {
			return ClassInfo{}, err
		}
	}
	return ClassInfo{
		ObjectId:    objectId,
		Name:        name,
		MemberCount: memberCount,
		MemberNames: memberNames,
	}, nil
}

// readMemberTypeInfo reads M BinaryType tags followed by M AdditionalTypeInfo
// values — two separate passes, not interleaved per-member (grounded on
// original_source/src/decoder.rs::read_member_type_info).
func (d *Decoder) readMemberTypeInfo(m int32) (MemberTypeInfo, error) {
	binaryTypes := make([]BinaryType, m)
	for i := range binaryTypes {
		b, err := d.readU8()
		if err != nil {
			return MemberTypeInfo{}, err
		}
		bt, err := BinaryTypeFromByte(b)
		if err != nil {
			return MemberTypeInfo{}, err
		}
		binaryTypes[i] = bt
	}
	additionalInfos := make([]AdditionalTypeInfo, m)
	for i := range additionalInfos {
		info, err := d.readAdditionalTypeInfo(binaryTypes[i])
		if err != nil {
			return MemberTypeInfo{}, err
		}
		additionalInfos[i] = info
	}
	return MemberTypeInfo{BinaryTypes: binaryTypes, AdditionalInfos: additionalInfos}, nil
}

func (d *Decoder) readAdditionalTypeInfo(bt BinaryType) (AdditionalTypeInfo, error) {
	switch bt {
	case BinaryTypePrimitive, BinaryTypePrimitiveArray:
		b, err := d.readU8()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		pt, err := PrimitiveTypeFromByte(b)
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		return additionalInfoPrimitive(pt), nil
	case BinaryTypeSystemClass:
		name, err := d.readString()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		return additionalInfoSystemClass(name), nil
	case BinaryTypeClass:
		name, err := d.readString()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		libraryId, err := d.readI32()
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		return additionalInfoClass(name, libraryId), nil
	default:
		return AdditionalTypeInfo{}, nil
	}
}

func (d *Decoder) readPrimitiveValue(t PrimitiveType) (PrimitiveValue, error) {
	switch t {
	case PrimitiveTypeBoolean:
		b, err := d.readU8()
		return PrimitiveValue{Type: t, Bool: b != 0}, err
	case PrimitiveTypeByte:
		b, err := d.readU8()
		return PrimitiveValue{Type: t, Byte: b}, err
	case PrimitiveTypeChar:
		// Single byte reinterpreted as a code point: preserves the reference
		// decoder's behavior rather than reading a variable-length UTF-8
		// code unit (spec §9 open question, resolved for byte-exactness).
		b, err := d.readU8()
		return PrimitiveValue{Type: t, Char: rune(b)}, err
	case PrimitiveTypeDecimal:
		buf, err := d.readExact(16)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, Decimal: hex.EncodeToString(buf)}, nil
	case PrimitiveTypeDouble:
		buf, err := d.readExact(8)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, Double: math.Float64frombits(binary.LittleEndian.Uint64(buf))}, nil
	case PrimitiveTypeInt16:
		buf, err := d.readExact(2)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, Int16: int16(binary.LittleEndian.Uint16(buf))}, nil
	case PrimitiveTypeInt32:
		v, err := d.readI32()
		return PrimitiveValue{Type: t, Int32: v}, err
	case PrimitiveTypeInt64:
		buf, err := d.readExact(8)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, Int64: int64(binary.LittleEndian.Uint64(buf))}, nil
	case PrimitiveTypeSByte:
		b, err := d.readU8()
		return PrimitiveValue{Type: t, SByte: int8(b)}, err
	case PrimitiveTypeSingle:
		buf, err := d.readExact(4)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, Single: math.Float32frombits(binary.LittleEndian.Uint32(buf))}, nil
	case PrimitiveTypeTimeSpan:
		buf, err := d.readExact(8)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, TimeSpan: int64(binary.LittleEndian.Uint64(buf))}, nil
	case PrimitiveTypeDateTime:
		// Distinct from Int64 despite sharing a width; see SPEC_FULL.md
		// SUPPLEMENTED FEATURES for why this deviates from original_source.
		buf, err := d.readExact(8)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, DateTime: binary.LittleEndian.Uint64(buf)}, nil
	case PrimitiveTypeUInt16:
		buf, err := d.readExact(2)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, UInt16: binary.LittleEndian.Uint16(buf)}, nil
	case PrimitiveTypeUInt32:
		buf, err := d.readExact(4)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, UInt32: binary.LittleEndian.Uint32(buf)}, nil
	case PrimitiveTypeUInt64:
		buf, err := d.readExact(8)
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, UInt64: binary.LittleEndian.Uint64(buf)}, nil
	case PrimitiveTypeNull:
		return NullPrimitive(), nil
	case PrimitiveTypeString:
		s, err := d.readString()
		if err != nil {
			return PrimitiveValue{}, err
		}
		return PrimitiveValue{Type: t, String: s}, nil
	default:
		return PrimitiveValue{}, invalidPrimitiveTypeError(byte(t))
	}
}

// readObjectValue reads one ObjectValue: an inline primitive if bt is
// Primitive and info carries a PrimitiveType, otherwise a recursively
// decoded Record (spec §4.1 read-object-value).
func (d *Decoder) readObjectValue(bt BinaryType, info AdditionalTypeInfo) (ObjectValue, error) {
	if bt == BinaryTypePrimitive && info.Primitive != nil {
		v, err := d.readPrimitiveValue(*info.Primitive)
		if err != nil {
			return ObjectValue{}, err
		}
		return objectValueOfPrimitive(v), nil
	}
	return d.readRecursiveObjectValue()
}

// readRecursiveObjectValue decodes the next record and wraps it, used both
// by readObjectValue's non-primitive branch and by the untyped
// ClassWithMembers/SystemClassWithMembers member readers, which have no
// BinaryType to consult at all.
func (d *Decoder) readRecursiveObjectValue() (ObjectValue, error) {
	rec, err := d.DecodeNext()
	if err == io.EOF {
		return ObjectValue{}, ErrExpectedRecord
	}
	if err != nil {
		return ObjectValue{}, err
	}
	return objectValueOfRecord(rec), nil
}

// readAllElements fills n logical element slots, expanding any
// ObjectNull/ObjectNullMultiple/ObjectNullMultiple256 physical record
// encountered into that many logical Primitive(Null) slots (spec §4.1
// read-all-elements, P5).
func (d *Decoder) readAllElements(n int, bt BinaryType, info AdditionalTypeInfo) ([]ObjectValue, error) {
	result := make([]ObjectValue, 0, n)
	for len(result) < n {
		ov, err := d.readObjectValue(bt, info)
		if err != nil {
			return nil, err
		}
		switch rec := ov.Record.(type) {
		case *ObjectNullMultiple:
			for i := int32(0); i < rec.NullCount; i++ {
				result = append(result, objectValueOfPrimitive(NullPrimitive()))
			}
		case *ObjectNullMultiple256:
			for i := byte(0); i < rec.NullCount; i++ {
				result = append(result, objectValueOfPrimitive(NullPrimitive()))
			}
		case *ObjectNull:
			result = append(result, objectValueOfPrimitive(NullPrimitive()))
		default:
			result = append(result, ov)
		}
	}
	return result, nil
}

func (d *Decoder) decodeSerializationHeader() (Record, error) {
	rootId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	headerId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	major, err := d.readI32()
	if err != nil {
		return nil, err
	}
	minor, err := d.readI32()
	if err != nil {
		return nil, err
	}
	return &SerializationHeader{RootId: rootId, HeaderId: headerId, MajorVersion: major, MinorVersion: minor}, nil
}

func (d *Decoder) decodeBinaryLibrary() (Record, error) {
	libraryId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	name, err := d.readString()
	if err != nil {
		return nil, err
	}
	d.libraryRegistry[libraryId] = name
	return &BinaryLibrary{LibraryId: libraryId, LibraryName: name}, nil
}

func (d *Decoder) decodeClassWithMembersAndTypes() (Record, error) {
	ci, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	mti, err := d.readMemberTypeInfo(ci.MemberCount)
	if err != nil {
		return nil, err
	}
	libraryId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	d.classRegistry[ci.ObjectId] = &classRegistryEntry{ClassInfo: ci, MemberTypeInfo: &mti, LibraryId: &libraryId}

	memberValues := make([]ObjectValue, ci.MemberCount)
	for i := range memberValues {
		memberValues[i], err = d.readObjectValue(mti.BinaryTypes[i], mti.AdditionalInfos[i])
		if err != nil {
			return nil, err
		}
	}
	return &ClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, LibraryId: libraryId, MemberValues: memberValues}, nil
}

func (d *Decoder) decodeSystemClassWithMembersAndTypes() (Record, error) {
	ci, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	mti, err := d.readMemberTypeInfo(ci.MemberCount)
	if err != nil {
		return nil, err
	}
	d.classRegistry[ci.ObjectId] = &classRegistryEntry{ClassInfo: ci, MemberTypeInfo: &mti}

	memberValues := make([]ObjectValue, ci.MemberCount)
	for i := range memberValues {
		memberValues[i], err = d.readObjectValue(mti.BinaryTypes[i], mti.AdditionalInfos[i])
		if err != nil {
			return nil, err
		}
	}
	return &SystemClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, MemberValues: memberValues}, nil
}

func (d *Decoder) decodeClassWithMembers() (Record, error) {
	ci, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	libraryId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	d.classRegistry[ci.ObjectId] = &classRegistryEntry{ClassInfo: ci, LibraryId: &libraryId}

	memberValues := make([]ObjectValue, ci.MemberCount)
	for i := range memberValues {
		memberValues[i], err = d.readRecursiveObjectValue()
		if err != nil {
			return nil, err
		}
	}
	return &ClassWithMembers{ClassInfo: ci, LibraryId: libraryId, MemberValues: memberValues}, nil
}

func (d *Decoder) decodeSystemClassWithMembers() (Record, error) {
	ci, err := d.readClassInfo()
	if err != nil {
		return nil, err
	}
	d.classRegistry[ci.ObjectId] = &classRegistryEntry{ClassInfo: ci}

	memberValues := make([]ObjectValue, ci.MemberCount)
	for i := range memberValues {
		memberValues[i], err = d.readRecursiveObjectValue()
		if err != nil {
			return nil, err
		}
	}
	return &SystemClassWithMembers{ClassInfo: ci, MemberValues: memberValues}, nil
}

func (d *Decoder) decodeClassWithId() (Record, error) {
	objectId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	metadataId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	entry, ok := d.classRegistry[metadataId]
	if !ok {
		return nil, metadataNotFoundError(metadataId)
	}

	memberValues := make([]ObjectValue, entry.ClassInfo.MemberCount)
	if entry.MemberTypeInfo != nil {
		for i := range memberValues {
			memberValues[i], err = d.readObjectValue(entry.MemberTypeInfo.BinaryTypes[i], entry.MemberTypeInfo.AdditionalInfos[i])
			if err != nil {
				return nil, err
			}
		}
	} else {
		for i := range memberValues {
			memberValues[i], err = d.readRecursiveObjectValue()
			if err != nil {
				return nil, err
			}
		}
	}
	return &ClassWithId{ObjectId: objectId, MetadataId: metadataId, MemberValues: memberValues}, nil
}

func (d *Decoder) decodeBinaryObjectString() (Record, error) {
	objectId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	value, err := d.readString()
	if err != nil {
		return nil, err
	}
	return &BinaryObjectString{ObjectId: objectId, Value: value}, nil
}

func (d *Decoder) decodeBinaryArray() (Record, error) {
	objectId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	arrayTypeEnum, err := d.readU8()
	if err != nil {
		return nil, err
	}
	rank, err := d.readI32()
	if err != nil {
		return nil, err
	}
	lengths := make([]int32, rank)
	total := int64(1)
	for i := range lengths {
		lengths[i], err = d.readI32()
		if err != nil {
			return nil, err
		}
		total *= int64(lengths[i])
	}
	var lowerBounds []int32
	if arrayBoundedTypeEnums[arrayTypeEnum] {
		lowerBounds = make([]int32, rank)
		for i := range lowerBounds {
			lowerBounds[i], err = d.readI32()
			if err != nil {
				return nil, err
			}
		}
	}
	btByte, err := d.readU8()
	if err != nil {
		return nil, err
	}
	bt, err := BinaryTypeFromByte(btByte)
	if err != nil {
		return nil, err
	}
	info, err := d.readAdditionalTypeInfo(bt)
	if err != nil {
		return nil, err
	}
	elements, err := d.readAllElements(int(total), bt, info)
	if err != nil {
		return nil, err
	}
	return &BinaryArray{
		ObjectId:            objectId,
		BinaryArrayTypeEnum: arrayTypeEnum,
		Rank:                rank,
		Lengths:             lengths,
		LowerBounds:         lowerBounds,
		TypeEnum:            bt,
		AdditionalTypeInfo:  info,
		ElementValues:       elements,
	}, nil
}

func (d *Decoder) decodeArraySinglePrimitive() (Record, error) {
	objectId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	length, err := d.readI32()
	if err != nil {
		return nil, err
	}
	ptByte, err := d.readU8()
	if err != nil {
		return nil, err
	}
	pt, err := PrimitiveTypeFromByte(ptByte)
	if err != nil {
		return nil, err
	}
	elements := make([]PrimitiveValue, length)
	for i := range elements {
		elements[i], err = d.readPrimitiveValue(pt)
		if err != nil {
			return nil, err
		}
	}
	return &ArraySinglePrimitive{ObjectId: objectId, Length: length, PrimitiveTypeEnum: pt, ElementValues: elements}, nil
}

func (d *Decoder) decodeArraySingleObject() (Record, error) {
	objectId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	length, err := d.readI32()
	if err != nil {
		return nil, err
	}
	elements, err := d.readAllElements(int(length), BinaryTypeObject, AdditionalTypeInfo{})
	if err != nil {
		return nil, err
	}
	return &ArraySingleObject{ObjectId: objectId, Length: length, ElementValues: elements}, nil
}

func (d *Decoder) decodeArraySingleString() (Record, error) {
	objectId, err := d.readI32()
	if err != nil {
		return nil, err
	}
	length, err := d.readI32()
	if err != nil {
		return nil, err
	}
	elements, err := d.readAllElements(int(length), BinaryTypeString, AdditionalTypeInfo{})
	if err != nil {
		return nil, err
	}
	return &ArraySingleString{ObjectId: objectId, Length: length, ElementValues: elements}, nil
}

func (d *Decoder) decodeMemberPrimitiveTyped() (Record, error) {
	ptByte, err := d.readU8()
	if err != nil {
		return nil, err
	}
	pt, err := PrimitiveTypeFromByte(ptByte)
	if err != nil {
		return nil, err
	}
	value, err := d.readPrimitiveValue(pt)
	if err != nil {
		return nil, err
	}
	return &MemberPrimitiveTyped{PrimitiveTypeEnum: pt, Value: value}, nil
}

func (d *Decoder) decodeMemberReference() (Record, error) {
	idRef, err := d.readI32()
	if err != nil {
		return nil, err
	}
	return &MemberReference{IdRef: idRef}, nil
}

func (d *Decoder) decodeObjectNullMultiple() (Record, error) {
	count, err := d.readI32()
	if err != nil {
		return nil, err
	}
	return &ObjectNullMultiple{NullCount: count}, nil
}

func (d *Decoder) decodeObjectNullMultiple256() (Record, error) {
	count, err := d.readU8()
	if err != nil {
		return nil, err
	}
	return &ObjectNullMultiple256{NullCount: count}, nil
}
