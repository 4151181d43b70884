// Copyright (c) 2026 nrbf-go Authors

package nrbf

import (
	"fmt"
	"io"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/segmentio/encoding/json"
	"github.com/valyala/fastjson"
)

// ToInterleaved builds the Interleaved JSON projection (spec §4.4): a
// top-level array, one "class-shaped" entry per record, with class member
// values exposed as direct object keys in ClassInfo.member_names order.
func ToInterleaved(records []Record) ([]any, error) {
	values := make([]any, len(records))
	for i, rec := range records {
		values[i] = recordToInterleavedValue(rec)
	}
	return values, nil
}

// WriteInterleaved marshals ToInterleaved's result to w.
func WriteInterleaved(w io.Writer, records []Record) error {
	values, err := ToInterleaved(records)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(values)
}

///////////////////////////////////////////////////////////////////////////////
// records -> interleaved JSON

// classToInterleavedOM builds the $type/$id/[library_id]/<members...> portion
// shared by every class-shaped record; the caller sets $record (and, for
// typed classes, $member_type_info) around it.
func classToInterleavedOM(name string, objectId int32, memberNames []string, memberValues []ObjectValue, libraryId *int32) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	om.Set("$type", name)
	om.Set("$id", objectId)
	if libraryId != nil {
		om.Set("library_id", *libraryId)
	}
	for i, memberName := range memberNames {
		om.Set(memberName, objectValueToInterleaved(memberValues[i]))
	}
	return om
}

func withRecordTag(tag string, om *orderedmap.OrderedMap[string, any]) *orderedmap.OrderedMap[string, any] {
	tagged := orderedmap.New[string, any]()
	tagged.Set("$record", tag)
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		tagged.Set(pair.Key, pair.Value)
	}
	return tagged
}

func primitiveValueToInterleaved(v PrimitiveValue) any {
	switch v.Type {
	case PrimitiveTypeBoolean:
		return v.Bool
	case PrimitiveTypeByte:
		return v.Byte
	case PrimitiveTypeChar:
		return string(v.Char)
	case PrimitiveTypeDecimal:
		return v.Decimal
	case PrimitiveTypeDouble:
		return v.Double
	case PrimitiveTypeInt16:
		return v.Int16
	case PrimitiveTypeInt32:
		return v.Int32
	case PrimitiveTypeInt64:
		return v.Int64
	case PrimitiveTypeSByte:
		return v.SByte
	case PrimitiveTypeSingle:
		return v.Single
	case PrimitiveTypeTimeSpan:
		return v.TimeSpan
	case PrimitiveTypeDateTime:
		return v.DateTime
	case PrimitiveTypeUInt16:
		return v.UInt16
	case PrimitiveTypeUInt32:
		return v.UInt32
	case PrimitiveTypeUInt64:
		return v.UInt64
	case PrimitiveTypeString:
		return v.String
	case PrimitiveTypeNull:
		fallthrough
	default:
		return nil
	}
}

func objectValueToInterleaved(ov ObjectValue) any {
	if ov.Primitive != nil {
		return primitiveValueToInterleaved(*ov.Primitive)
	}
	return recordToInterleavedValue(ov.Record)
}

func objectValuesToInterleaved(values []ObjectValue) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = objectValueToInterleaved(v)
	}
	return out
}

func recordToInterleavedValue(rec Record) any {
	switch r := rec.(type) {
	case *SerializationHeader:
		return map[string]any{
			"$record":       "SerializationHeader",
			"root_id":       r.RootId,
			"header_id":     r.HeaderId,
			"major_version": r.MajorVersion,
			"minor_version": r.MinorVersion,
		}
	case *BinaryLibrary:
		return map[string]any{
			"$record":      "BinaryLibrary",
			"library_id":   r.LibraryId,
			"library_name": r.LibraryName,
		}
	case *ClassWithMembersAndTypes:
		om := classToInterleavedOM(r.ClassInfo.Name, r.ClassInfo.ObjectId, r.ClassInfo.MemberNames, r.MemberValues, &r.LibraryId)
		om.Set("$member_type_info", memberTypeInfoToFlat(r.MemberTypeInfo))
		return withRecordTag("ClassWithMembersAndTypes", om)
	case *SystemClassWithMembersAndTypes:
		om := classToInterleavedOM(r.ClassInfo.Name, r.ClassInfo.ObjectId, r.ClassInfo.MemberNames, r.MemberValues, nil)
		om.Set("$member_type_info", memberTypeInfoToFlat(r.MemberTypeInfo))
		return withRecordTag("SystemClassWithMembersAndTypes", om)
	case *ClassWithMembers:
		om := classToInterleavedOM(r.ClassInfo.Name, r.ClassInfo.ObjectId, r.ClassInfo.MemberNames, r.MemberValues, &r.LibraryId)
		return withRecordTag("ClassWithMembers", om)
	case *SystemClassWithMembers:
		om := classToInterleavedOM(r.ClassInfo.Name, r.ClassInfo.ObjectId, r.ClassInfo.MemberNames, r.MemberValues, nil)
		return withRecordTag("SystemClassWithMembers", om)
	case *ClassWithId:
		return map[string]any{
			"$record":     "ClassWithId",
			"object_id":   r.ObjectId,
			"metadata_id": r.MetadataId,
			"$values":     objectValuesToInterleaved(r.MemberValues),
		}
	case *BinaryObjectString:
		return map[string]any{
			"$record":   "BinaryObjectString",
			"object_id": r.ObjectId,
			"value":     r.Value,
		}
	case *BinaryArray:
		lowerBounds := r.LowerBounds
		if lowerBounds == nil {
			lowerBounds = []int32{}
		}
		return map[string]any{
			"$record":                 "BinaryArray",
			"object_id":               r.ObjectId,
			"binary_array_type_enum":  r.BinaryArrayTypeEnum,
			"rank":                    r.Rank,
			"lengths":                 r.Lengths,
			"lower_bounds":            lowerBounds,
			"type_enum":               r.TypeEnum.String(),
			"additional_type_info":    additionalTypeInfoToFlat(r.AdditionalTypeInfo),
			"$values":                 objectValuesToInterleaved(r.ElementValues),
		}
	case *ArraySinglePrimitive:
		values := make([]any, len(r.ElementValues))
		for i, v := range r.ElementValues {
			values[i] = primitiveValueToInterleaved(v)
		}
		return map[string]any{
			"$record":             "ArraySinglePrimitive",
			"object_id":           r.ObjectId,
			"length":              r.Length,
			"primitive_type_enum": r.PrimitiveTypeEnum.String(),
			"$values":             values,
		}
	case *ArraySingleObject:
		return map[string]any{
			"$record":   "ArraySingleObject",
			"object_id": r.ObjectId,
			"length":    r.Length,
			"$values":   objectValuesToInterleaved(r.ElementValues),
		}
	case *ArraySingleString:
		return map[string]any{
			"$record":   "ArraySingleString",
			"object_id": r.ObjectId,
			"length":    r.Length,
			"$values":   objectValuesToInterleaved(r.ElementValues),
		}
	case *MemberPrimitiveTyped:
		return map[string]any{
			"$record":             "MemberPrimitiveTyped",
			"primitive_type_enum": r.PrimitiveTypeEnum.String(),
			"value":               primitiveValueToInterleaved(r.Value),
		}
	case *MemberReference:
		return map[string]any{"$record": "MemberReference", "id_ref": r.IdRef}
	case *ObjectNull:
		return map[string]any{"$record": "ObjectNull"}
	case *ObjectNullMultiple:
		return map[string]any{"$record": "ObjectNullMultiple", "null_count": r.NullCount}
	case *ObjectNullMultiple256:
		return map[string]any{"$record": "ObjectNullMultiple256", "null_count": r.NullCount}
	case *MessageEnd:
		return map[string]any{"$record": "MessageEnd"}
	default:
		return map[string]any{"$record": fmt.Sprintf("unknown(%T)", rec)}
	}
}

///////////////////////////////////////////////////////////////////////////////
// interleaved JSON -> records

// interleavedRegistry mirrors InterleavedDeserializer::metadata_registry: a
// projection-local map from a typed class's object-id to the MemberTypeInfo
// it was declared with, consulted when a later ClassWithId names it.
// strict, when set, turns ClassWithId's shape-based fallback typing (spec §9
// "Interleaved fallback typing") into a hard error instead of a best-effort
// guess — for callers who prefer to fail loudly over silently mistyping a
// primitive width.
type interleavedRegistry struct {
	types  map[int32]MemberTypeInfo
	strict bool
}

func newInterleavedRegistry(strict bool) interleavedRegistry {
	return interleavedRegistry{types: make(map[int32]MemberTypeInfo), strict: strict}
}

// ParseInterleaved is the inverse of ToInterleaved/WriteInterleaved.
func ParseInterleaved(data []byte) ([]Record, error) {
	return parseInterleaved(data, false)
}

// ParseInterleavedStrict is ParseInterleaved, except a ClassWithId entry
// whose metadata_id is absent from the projection registry is a hard error
// rather than a shape-based best-effort guess.
func ParseInterleavedStrict(data []byte) ([]Record, error) {
	return parseInterleaved(data, true)
}

func parseInterleaved(data []byte, strict bool) ([]Record, error) {
	var p fastjson.Parser
	val, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	arr, err := val.Array()
	if err != nil {
		return nil, fmt.Errorf("nrbf: interleaved json root must be an array: %w", err)
	}
	registry := newInterleavedRegistry(strict)
	records := make([]Record, 0, len(arr))
	for i, v := range arr {
		rec, err := interleavedValueToRecord(v, registry)
		if err != nil {
			return nil, fmt.Errorf("nrbf: interleaved json entry %d: %w", i, err)
		}
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func fastjsonInt32(v *fastjson.Value, field string) (int32, error) {
	if v == nil {
		return 0, fmt.Errorf("nrbf: missing field %q", field)
	}
	n, err := v.Int()
	if err != nil {
		return 0, fmt.Errorf("nrbf: field %q: %w", field, err)
	}
	return int32(n), nil
}

func fastjsonString(v *fastjson.Value, field string) (string, error) {
	if v == nil {
		return "", fmt.Errorf("nrbf: missing field %q", field)
	}
	b, err := v.StringBytes()
	if err != nil {
		return "", fmt.Errorf("nrbf: field %q: %w", field, err)
	}
	return string(b), nil
}

func fastjsonInt32Slice(v *fastjson.Value, field string) ([]int32, error) {
	if v == nil {
		return nil, nil
	}
	arr, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("nrbf: field %q: %w", field, err)
	}
	out := make([]int32, len(arr))
	for i, e := range arr {
		n, err := e.Int()
		if err != nil {
			return nil, fmt.Errorf("nrbf: field %q[%d]: %w", field, i, err)
		}
		out[i] = int32(n)
	}
	return out, nil
}

// interleavedValueToClassInfo reconstructs ClassInfo.member_names from JSON
// object key insertion order: every key not starting with "$" and not equal
// to "library_id" is a member name, in the order fastjson visits them —
// which is source/textual order (spec §4.4 "Determining member-name order").
func interleavedValueToClassInfo(obj *fastjson.Object) (ClassInfo, error) {
	name, err := fastjsonString(obj.Get("$type"), "$type")
	if err != nil {
		return ClassInfo{}, err
	}
	objectId, err := fastjsonInt32(obj.Get("$id"), "$id")
	if err != nil {
		return ClassInfo{}, err
	}
	var memberNames []string
	obj.Visit(func(key []byte, v *fastjson.Value) {
		k := string(key)
		if len(k) > 0 && k[0] == '$' {
			return
		}
		if k == "library_id" {
			return
		}
		memberNames = append(memberNames, k)
	})
	return ClassInfo{ObjectId: objectId, Name: name, MemberCount: int32(len(memberNames)), MemberNames: memberNames}, nil
}

func interleavedValueToMemberTypeInfo(v *fastjson.Value) (MemberTypeInfo, error) {
	if v == nil {
		return MemberTypeInfo{}, fmt.Errorf("nrbf: missing field %q", "$member_type_info")
	}
	obj, err := v.Object()
	if err != nil {
		return MemberTypeInfo{}, err
	}
	m := map[string]any{}
	// Reuse the Flat JSON decode helper by round-tripping through its
	// map[string]any shape: fastjson exposes raw values, not Go-native ones.
	binaryTypesVal := obj.Get("binary_types")
	if binaryTypesVal == nil {
		return MemberTypeInfo{}, fmt.Errorf("nrbf: missing field %q", "binary_types")
	}
	binaryTypesArr, err := binaryTypesVal.Array()
	if err != nil {
		return MemberTypeInfo{}, err
	}
	binaryTypeNames := make([]any, len(binaryTypesArr))
	for i, e := range binaryTypesArr {
		s, err := e.StringBytes()
		if err != nil {
			return MemberTypeInfo{}, err
		}
		binaryTypeNames[i] = string(s)
	}
	m["binary_types"] = binaryTypeNames

	additionalInfosVal := obj.Get("additional_infos")
	if additionalInfosVal == nil {
		return MemberTypeInfo{}, fmt.Errorf("nrbf: missing field %q", "additional_infos")
	}
	additionalInfosArr, err := additionalInfosVal.Array()
	if err != nil {
		return MemberTypeInfo{}, err
	}
	additionalInfos := make([]any, len(additionalInfosArr))
	for i, e := range additionalInfosArr {
		infoObj, err := e.Object()
		if err != nil {
			return MemberTypeInfo{}, err
		}
		infoMap := map[string]any{}
		infoObj.Visit(func(key []byte, val *fastjson.Value) {
			switch val.Type() {
			case fastjson.TypeString:
				s, _ := val.StringBytes()
				infoMap[string(key)] = string(s)
			case fastjson.TypeNumber:
				n, _ := val.Int64()
				infoMap[string(key)] = n
			}
		})
		additionalInfos[i] = infoMap
	}
	m["additional_infos"] = additionalInfos

	return flatValueToMemberTypeInfo(m)
}

func interleavedValueToAdditionalTypeInfo(v *fastjson.Value) (AdditionalTypeInfo, error) {
	if v == nil {
		return AdditionalTypeInfo{}, nil
	}
	obj, err := v.Object()
	if err != nil {
		return AdditionalTypeInfo{}, err
	}
	m := map[string]any{}
	obj.Visit(func(key []byte, val *fastjson.Value) {
		switch val.Type() {
		case fastjson.TypeString:
			s, _ := val.StringBytes()
			m[string(key)] = string(s)
		case fastjson.TypeNumber:
			n, _ := val.Int64()
			m[string(key)] = n
		}
	})
	return flatValueToAdditionalTypeInfo(m)
}

// interleavedValueToPrimitive converts a raw JSON scalar directly into a
// PrimitiveValue of the given (already known) type, the counterpart of
// json_to_primitive_value: unlike Flat JSON, the interleaved projection
// carries no {"type",.."value"} wrapper, since the type is already known
// from the enclosing MemberTypeInfo/primitive_type_enum.
func interleavedValueToPrimitive(v *fastjson.Value, t PrimitiveType) PrimitiveValue {
	result := PrimitiveValue{Type: t}
	if v == nil {
		return result
	}
	switch t {
	case PrimitiveTypeBoolean:
		result.Bool = v.Type() == fastjson.TypeTrue
	case PrimitiveTypeByte:
		n, _ := v.Int()
		result.Byte = byte(n)
	case PrimitiveTypeChar:
		s, _ := v.StringBytes()
		if r := []rune(string(s)); len(r) > 0 {
			result.Char = r[0]
		}
	case PrimitiveTypeDecimal:
		s, _ := v.StringBytes()
		result.Decimal = string(s)
	case PrimitiveTypeDouble:
		result.Double, _ = v.Float64()
	case PrimitiveTypeInt16:
		n, _ := v.Int()
		result.Int16 = int16(n)
	case PrimitiveTypeInt32:
		n, _ := v.Int()
		result.Int32 = int32(n)
	case PrimitiveTypeInt64:
		n, _ := v.Int64()
		result.Int64 = n
	case PrimitiveTypeSByte:
		n, _ := v.Int()
		result.SByte = int8(n)
	case PrimitiveTypeSingle:
		f, _ := v.Float64()
		result.Single = float32(f)
	case PrimitiveTypeTimeSpan:
		n, _ := v.Int64()
		result.TimeSpan = n
	case PrimitiveTypeDateTime:
		n, _ := v.Uint64()
		result.DateTime = n
	case PrimitiveTypeUInt16:
		n, _ := v.Int()
		result.UInt16 = uint16(n)
	case PrimitiveTypeUInt32:
		n, _ := v.Int()
		result.UInt32 = uint32(n)
	case PrimitiveTypeUInt64:
		n, _ := v.Uint64()
		result.UInt64 = n
	case PrimitiveTypeString:
		s, _ := v.StringBytes()
		result.String = string(s)
	case PrimitiveTypeNull:
		// no payload
	}
	return result
}

// interleavedValueToObjectValueFallback converts a raw JSON value to an
// ObjectValue with no type context: try decoding it as a tagged record
// first, then fall back to a shape-based primitive guess (spec §4.4,
// json_to_object_value). This fallback is explicitly best-effort (§9).
func interleavedValueToObjectValueFallback(v *fastjson.Value, registry interleavedRegistry) (ObjectValue, error) {
	if v.Type() == fastjson.TypeObject {
		if obj, err := v.Object(); err == nil {
			if tagVal := obj.Get("$record"); tagVal != nil {
				rec, err := interleavedValueToRecord(v, registry)
				if err != nil {
					return ObjectValue{}, err
				}
				if rec != nil {
					return objectValueOfRecord(rec), nil
				}
			}
		}
	}
	if registry.strict {
		return ObjectValue{}, fmt.Errorf("nrbf: strict mode: no metadata to type value %s", v.Type())
	}
	return objectValueOfPrimitive(fallbackShapeTypedPrimitive(v)), nil
}

func fallbackShapeTypedPrimitive(v *fastjson.Value) PrimitiveValue {
	switch v.Type() {
	case fastjson.TypeTrue, fastjson.TypeFalse:
		return PrimitiveValue{Type: PrimitiveTypeBoolean, Bool: v.Type() == fastjson.TypeTrue}
	case fastjson.TypeNumber:
		f, _ := v.Float64()
		if f == math.Trunc(f) {
			if f >= math.MinInt32 && f <= math.MaxInt32 {
				return PrimitiveValue{Type: PrimitiveTypeInt32, Int32: int32(f)}
			}
			if f >= 0 && f <= math.MaxUint32 {
				return PrimitiveValue{Type: PrimitiveTypeUInt32, UInt32: uint32(f)}
			}
		}
		return PrimitiveValue{Type: PrimitiveTypeDouble, Double: f}
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		return PrimitiveValue{Type: PrimitiveTypeString, String: string(s)}
	default:
		return NullPrimitive()
	}
}

// interleavedMembersTyped reads each named member in member_names order from
// obj, typing it via member_type_info's parallel BinaryType/AdditionalInfo
// entries (spec §4.4 "decodes each member value at the correct PrimitiveType
// width").
func interleavedMembersTyped(obj *fastjson.Object, memberNames []string, mti MemberTypeInfo, registry interleavedRegistry) ([]ObjectValue, error) {
	if len(memberNames) != len(mti.BinaryTypes) {
		return nil, fmt.Errorf("nrbf: class has %d member names but %d $member_type_info entries", len(memberNames), len(mti.BinaryTypes))
	}
	values := make([]ObjectValue, 0, len(memberNames))
	for i, name := range memberNames {
		val := obj.Get(name)
		if val == nil {
			continue
		}
		bt := mti.BinaryTypes[i]
		info := mti.AdditionalInfos[i]
		if bt == BinaryTypePrimitive && info.Primitive != nil {
			values = append(values, objectValueOfPrimitive(interleavedValueToPrimitive(val, *info.Primitive)))
			continue
		}
		ov, err := interleavedValueToObjectValueFallback(val, registry)
		if err != nil {
			return nil, err
		}
		values = append(values, ov)
	}
	return values, nil
}

func interleavedMembersUntyped(obj *fastjson.Object, memberNames []string, registry interleavedRegistry) ([]ObjectValue, error) {
	values := make([]ObjectValue, 0, len(memberNames))
	for _, name := range memberNames {
		val := obj.Get(name)
		if val == nil {
			continue
		}
		ov, err := interleavedValueToObjectValueFallback(val, registry)
		if err != nil {
			return nil, err
		}
		values = append(values, ov)
	}
	return values, nil
}

func interleavedValuesArray(obj *fastjson.Object) ([]*fastjson.Value, error) {
	valuesVal := obj.Get("$values")
	if valuesVal == nil {
		return nil, fmt.Errorf("nrbf: missing field %q", "$values")
	}
	return valuesVal.Array()
}

func interleavedValueToRecord(v *fastjson.Value, registry interleavedRegistry) (Record, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("nrbf: expected object, got %s", v.Type())
	}
	tagVal := obj.Get("$record")
	if tagVal == nil {
		return nil, fmt.Errorf("nrbf: missing %q discriminator", "$record")
	}
	name, err := fastjsonString(tagVal, "$record")
	if err != nil {
		return nil, err
	}

	switch name {
	case "SerializationHeader":
		rootId, err := fastjsonInt32(obj.Get("root_id"), "root_id")
		if err != nil {
			return nil, err
		}
		headerId, err := fastjsonInt32(obj.Get("header_id"), "header_id")
		if err != nil {
			return nil, err
		}
		major, err := fastjsonInt32(obj.Get("major_version"), "major_version")
		if err != nil {
			return nil, err
		}
		minor, err := fastjsonInt32(obj.Get("minor_version"), "minor_version")
		if err != nil {
			return nil, err
		}
		return &SerializationHeader{RootId: rootId, HeaderId: headerId, MajorVersion: major, MinorVersion: minor}, nil

	case "BinaryLibrary":
		libraryId, err := fastjsonInt32(obj.Get("library_id"), "library_id")
		if err != nil {
			return nil, err
		}
		libraryName, err := fastjsonString(obj.Get("library_name"), "library_name")
		if err != nil {
			return nil, err
		}
		return &BinaryLibrary{LibraryId: libraryId, LibraryName: libraryName}, nil

	case "ClassWithMembersAndTypes":
		ci, err := interleavedValueToClassInfo(obj)
		if err != nil {
			return nil, err
		}
		mti, err := interleavedValueToMemberTypeInfo(obj.Get("$member_type_info"))
		if err != nil {
			return nil, err
		}
		libraryId, err := fastjsonInt32(obj.Get("library_id"), "library_id")
		if err != nil {
			return nil, err
		}
		registry.types[ci.ObjectId] = mti
		values, err := interleavedMembersTyped(obj, ci.MemberNames, mti, registry)
		if err != nil {
			return nil, err
		}
		return &ClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, LibraryId: libraryId, MemberValues: values}, nil

	case "SystemClassWithMembersAndTypes":
		ci, err := interleavedValueToClassInfo(obj)
		if err != nil {
			return nil, err
		}
		mti, err := interleavedValueToMemberTypeInfo(obj.Get("$member_type_info"))
		if err != nil {
			return nil, err
		}
		registry.types[ci.ObjectId] = mti
		values, err := interleavedMembersTyped(obj, ci.MemberNames, mti, registry)
		if err != nil {
			return nil, err
		}
		return &SystemClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, MemberValues: values}, nil

	case "ClassWithMembers":
		ci, err := interleavedValueToClassInfo(obj)
		if err != nil {
			return nil, err
		}
		libraryId, err := fastjsonInt32(obj.Get("library_id"), "library_id")
		if err != nil {
			return nil, err
		}
		values, err := interleavedMembersUntyped(obj, ci.MemberNames, registry)
		if err != nil {
			return nil, err
		}
		return &ClassWithMembers{ClassInfo: ci, LibraryId: libraryId, MemberValues: values}, nil

	case "SystemClassWithMembers":
		ci, err := interleavedValueToClassInfo(obj)
		if err != nil {
			return nil, err
		}
		values, err := interleavedMembersUntyped(obj, ci.MemberNames, registry)
		if err != nil {
			return nil, err
		}
		return &SystemClassWithMembers{ClassInfo: ci, MemberValues: values}, nil

	case "ClassWithId":
		objectId, err := fastjsonInt32(obj.Get("object_id"), "object_id")
		if err != nil {
			return nil, err
		}
		metadataId, err := fastjsonInt32(obj.Get("metadata_id"), "metadata_id")
		if err != nil {
			return nil, err
		}
		valuesArr, err := interleavedValuesArray(obj)
		if err != nil {
			return nil, err
		}
		var values []ObjectValue
		if mti, ok := registry.types[metadataId]; ok {
			if len(valuesArr) != len(mti.BinaryTypes) {
				return nil, fmt.Errorf("nrbf: ClassWithId metadata_id %d expects %d members, got %d values",
					metadataId, len(mti.BinaryTypes), len(valuesArr))
			}
			values = make([]ObjectValue, 0, len(valuesArr))
			for i, e := range valuesArr {
				bt := mti.BinaryTypes[i]
				info := mti.AdditionalInfos[i]
				if bt == BinaryTypePrimitive && info.Primitive != nil {
					values = append(values, objectValueOfPrimitive(interleavedValueToPrimitive(e, *info.Primitive)))
					continue
				}
				ov, err := interleavedValueToObjectValueFallback(e, registry)
				if err != nil {
					return nil, err
				}
				values = append(values, ov)
			}
		} else {
			if registry.strict {
				return nil, fmt.Errorf("nrbf: strict mode: ClassWithId metadata_id %d is not registered", metadataId)
			}
			values = make([]ObjectValue, 0, len(valuesArr))
			for _, e := range valuesArr {
				ov, err := interleavedValueToObjectValueFallback(e, registry)
				if err != nil {
					return nil, err
				}
				values = append(values, ov)
			}
		}
		return &ClassWithId{ObjectId: objectId, MetadataId: metadataId, MemberValues: values}, nil

	case "BinaryObjectString":
		objectId, err := fastjsonInt32(obj.Get("object_id"), "object_id")
		if err != nil {
			return nil, err
		}
		value, err := fastjsonString(obj.Get("value"), "value")
		if err != nil {
			return nil, err
		}
		return &BinaryObjectString{ObjectId: objectId, Value: value}, nil

	case "BinaryArray":
		objectId, err := fastjsonInt32(obj.Get("object_id"), "object_id")
		if err != nil {
			return nil, err
		}
		arrayTypeEnum, err := fastjsonInt32(obj.Get("binary_array_type_enum"), "binary_array_type_enum")
		if err != nil {
			return nil, err
		}
		rank, err := fastjsonInt32(obj.Get("rank"), "rank")
		if err != nil {
			return nil, err
		}
		lengths, err := fastjsonInt32Slice(obj.Get("lengths"), "lengths")
		if err != nil {
			return nil, err
		}
		rawLowerBounds, err := fastjsonInt32Slice(obj.Get("lower_bounds"), "lower_bounds")
		if err != nil {
			return nil, err
		}
		var lowerBounds []int32
		if arrayBoundedTypeEnums[byte(arrayTypeEnum)] {
			lowerBounds = rawLowerBounds
		}
		typeEnumName, err := fastjsonString(obj.Get("type_enum"), "type_enum")
		if err != nil {
			return nil, err
		}
		typeEnum, err := BinaryTypeFromName(typeEnumName)
		if err != nil {
			return nil, err
		}
		info, err := interleavedValueToAdditionalTypeInfo(obj.Get("additional_type_info"))
		if err != nil {
			return nil, err
		}
		valuesArr, err := interleavedValuesArray(obj)
		if err != nil {
			return nil, err
		}
		elements := make([]ObjectValue, 0, len(valuesArr))
		for _, e := range valuesArr {
			if typeEnum == BinaryTypePrimitive && info.Primitive != nil {
				elements = append(elements, objectValueOfPrimitive(interleavedValueToPrimitive(e, *info.Primitive)))
				continue
			}
			ov, err := interleavedValueToObjectValueFallback(e, registry)
			if err != nil {
				return nil, err
			}
			elements = append(elements, ov)
		}
		return &BinaryArray{
			ObjectId:            objectId,
			BinaryArrayTypeEnum: byte(arrayTypeEnum),
			Rank:                rank,
			Lengths:             lengths,
			LowerBounds:         lowerBounds,
			TypeEnum:            typeEnum,
			AdditionalTypeInfo:  info,
			ElementValues:       elements,
		}, nil

	case "ArraySinglePrimitive":
		objectId, err := fastjsonInt32(obj.Get("object_id"), "object_id")
		if err != nil {
			return nil, err
		}
		length, err := fastjsonInt32(obj.Get("length"), "length")
		if err != nil {
			return nil, err
		}
		ptName, err := fastjsonString(obj.Get("primitive_type_enum"), "primitive_type_enum")
		if err != nil {
			return nil, err
		}
		pt, err := PrimitiveTypeFromName(ptName)
		if err != nil {
			return nil, err
		}
		valuesArr, err := interleavedValuesArray(obj)
		if err != nil {
			return nil, err
		}
		elements := make([]PrimitiveValue, len(valuesArr))
		for i, e := range valuesArr {
			elements[i] = interleavedValueToPrimitive(e, pt)
		}
		return &ArraySinglePrimitive{ObjectId: objectId, Length: length, PrimitiveTypeEnum: pt, ElementValues: elements}, nil

	case "ArraySingleObject":
		objectId, err := fastjsonInt32(obj.Get("object_id"), "object_id")
		if err != nil {
			return nil, err
		}
		length, err := fastjsonInt32(obj.Get("length"), "length")
		if err != nil {
			return nil, err
		}
		valuesArr, err := interleavedValuesArray(obj)
		if err != nil {
			return nil, err
		}
		elements := make([]ObjectValue, len(valuesArr))
		for i, e := range valuesArr {
			elements[i], err = interleavedValueToObjectValueFallback(e, registry)
			if err != nil {
				return nil, err
			}
		}
		return &ArraySingleObject{ObjectId: objectId, Length: length, ElementValues: elements}, nil

	case "ArraySingleString":
		objectId, err := fastjsonInt32(obj.Get("object_id"), "object_id")
		if err != nil {
			return nil, err
		}
		length, err := fastjsonInt32(obj.Get("length"), "length")
		if err != nil {
			return nil, err
		}
		valuesArr, err := interleavedValuesArray(obj)
		if err != nil {
			return nil, err
		}
		elements := make([]ObjectValue, len(valuesArr))
		for i, e := range valuesArr {
			elements[i], err = interleavedValueToObjectValueFallback(e, registry)
			if err != nil {
				return nil, err
			}
		}
		return &ArraySingleString{ObjectId: objectId, Length: length, ElementValues: elements}, nil

	case "MemberPrimitiveTyped":
		ptName, err := fastjsonString(obj.Get("primitive_type_enum"), "primitive_type_enum")
		if err != nil {
			return nil, err
		}
		pt, err := PrimitiveTypeFromName(ptName)
		if err != nil {
			return nil, err
		}
		value := interleavedValueToPrimitive(obj.Get("value"), pt)
		return &MemberPrimitiveTyped{PrimitiveTypeEnum: pt, Value: value}, nil

	case "MemberReference":
		idRef, err := fastjsonInt32(obj.Get("id_ref"), "id_ref")
		if err != nil {
			return nil, err
		}
		return &MemberReference{IdRef: idRef}, nil

	case "ObjectNull":
		return &ObjectNull{}, nil

	case "ObjectNullMultiple":
		count, err := fastjsonInt32(obj.Get("null_count"), "null_count")
		if err != nil {
			return nil, err
		}
		return &ObjectNullMultiple{NullCount: count}, nil

	case "ObjectNullMultiple256":
		count, err := fastjsonInt32(obj.Get("null_count"), "null_count")
		if err != nil {
			return nil, err
		}
		return &ObjectNullMultiple256{NullCount: byte(count)}, nil

	case "MessageEnd":
		return &MessageEnd{}, nil

	default:
		// Unknown $record values are skipped silently (spec §4.4).
		return nil, nil
	}
}
