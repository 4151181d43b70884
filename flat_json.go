// Copyright (c) 2026 nrbf-go Authors

package nrbf

import (
	"fmt"
	"io"
	"strconv"

	"github.com/segmentio/encoding/json"
)

// FlatEncode writes records as the Flat JSON projection (spec §4.3): a
// top-level JSON array, one tagged object per record, field names matching
// the Record struct fields, enumerations rendered as their symbolic names.
// Every ObjectValue — including ones nested arbitrarily deep inside class
// members and array elements — round-trips through FlatDecode exactly.
func FlatEncode(w io.Writer, records []Record) error {
	values := make([]any, len(records))
	for i, rec := range records {
		values[i] = recordToFlatValue(rec)
	}
	enc := json.NewEncoder(w)
	return enc.Encode(values)
}

// FlatDecode is the exact inverse of FlatEncode.
func FlatDecode(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	records := make([]Record, len(raw))
	for i, m := range raw {
		rec, err := flatValueToRecord(m)
		if err != nil {
			return nil, fmt.Errorf("nrbf: flat json record %d: %w", i, err)
		}
		records[i] = rec
	}
	return records, nil
}

///////////////////////////////////////////////////////////////////////////////
// records -> flat JSON values

func classInfoToFlat(ci ClassInfo) map[string]any {
	return map[string]any{
		"object_id":    ci.ObjectId,
		"name":         ci.Name,
		"member_count": ci.MemberCount,
		"member_names": ci.MemberNames,
	}
}

func additionalTypeInfoToFlat(info AdditionalTypeInfo) map[string]any {
	m := map[string]any{}
	if info.Primitive != nil {
		m["primitive"] = info.Primitive.String()
	}
	if info.Name != nil {
		m["name"] = *info.Name
	}
	if info.LibraryId != nil {
		m["library_id"] = *info.LibraryId
	}
	return m
}

func memberTypeInfoToFlat(mti MemberTypeInfo) map[string]any {
	binaryTypes := make([]string, len(mti.BinaryTypes))
	for i, bt := range mti.BinaryTypes {
		binaryTypes[i] = bt.String()
	}
	additionalInfos := make([]map[string]any, len(mti.AdditionalInfos))
	for i, info := range mti.AdditionalInfos {
		additionalInfos[i] = additionalTypeInfoToFlat(info)
	}
	return map[string]any{
		"binary_types":     binaryTypes,
		"additional_infos": additionalInfos,
	}
}

func primitiveValueToFlat(v PrimitiveValue) map[string]any {
	var value any
	switch v.Type {
	case PrimitiveTypeBoolean:
		value = v.Bool
	case PrimitiveTypeByte:
		value = v.Byte
	case PrimitiveTypeChar:
		value = string(v.Char)
	case PrimitiveTypeDecimal:
		value = v.Decimal
	case PrimitiveTypeDouble:
		value = v.Double
	case PrimitiveTypeInt16:
		value = v.Int16
	case PrimitiveTypeInt32:
		value = v.Int32
	case PrimitiveTypeInt64:
		value = strconv.FormatInt(v.Int64, 10)
	case PrimitiveTypeSByte:
		value = v.SByte
	case PrimitiveTypeSingle:
		value = v.Single
	case PrimitiveTypeTimeSpan:
		value = strconv.FormatInt(v.TimeSpan, 10)
	case PrimitiveTypeDateTime:
		value = strconv.FormatUint(v.DateTime, 10)
	case PrimitiveTypeUInt16:
		value = v.UInt16
	case PrimitiveTypeUInt32:
		value = v.UInt32
	case PrimitiveTypeUInt64:
		value = strconv.FormatUint(v.UInt64, 10)
	case PrimitiveTypeNull:
		value = nil
	case PrimitiveTypeString:
		value = v.String
	}
	return map[string]any{"type": v.Type.String(), "value": value}
}

func objectValueToFlat(ov ObjectValue) map[string]any {
	if ov.Primitive != nil {
		return map[string]any{"primitive": primitiveValueToFlat(*ov.Primitive)}
	}
	return map[string]any{"record": recordToFlatValue(ov.Record)}
}

func objectValuesToFlat(values []ObjectValue) []map[string]any {
	out := make([]map[string]any, len(values))
	for i, v := range values {
		out[i] = objectValueToFlat(v)
	}
	return out
}

func recordToFlatValue(rec Record) map[string]any {
	switch r := rec.(type) {
	case *SerializationHeader:
		return map[string]any{
			"record":        "SerializationHeader",
			"root_id":       r.RootId,
			"header_id":     r.HeaderId,
			"major_version": r.MajorVersion,
			"minor_version": r.MinorVersion,
		}
	case *BinaryLibrary:
		return map[string]any{
			"record":       "BinaryLibrary",
			"library_id":   r.LibraryId,
			"library_name": r.LibraryName,
		}
	case *ClassWithMembersAndTypes:
		return map[string]any{
			"record":           "ClassWithMembersAndTypes",
			"class_info":       classInfoToFlat(r.ClassInfo),
			"member_type_info": memberTypeInfoToFlat(r.MemberTypeInfo),
			"library_id":       r.LibraryId,
			"member_values":    objectValuesToFlat(r.MemberValues),
		}
	case *SystemClassWithMembersAndTypes:
		return map[string]any{
			"record":           "SystemClassWithMembersAndTypes",
			"class_info":       classInfoToFlat(r.ClassInfo),
			"member_type_info": memberTypeInfoToFlat(r.MemberTypeInfo),
			"member_values":    objectValuesToFlat(r.MemberValues),
		}
	case *ClassWithMembers:
		return map[string]any{
			"record":        "ClassWithMembers",
			"class_info":    classInfoToFlat(r.ClassInfo),
			"library_id":    r.LibraryId,
			"member_values": objectValuesToFlat(r.MemberValues),
		}
	case *SystemClassWithMembers:
		return map[string]any{
			"record":        "SystemClassWithMembers",
			"class_info":    classInfoToFlat(r.ClassInfo),
			"member_values": objectValuesToFlat(r.MemberValues),
		}
	case *ClassWithId:
		return map[string]any{
			"record":        "ClassWithId",
			"object_id":     r.ObjectId,
			"metadata_id":   r.MetadataId,
			"member_values": objectValuesToFlat(r.MemberValues),
		}
	case *BinaryObjectString:
		return map[string]any{
			"record":    "BinaryObjectString",
			"object_id": r.ObjectId,
			"value":     r.Value,
		}
	case *BinaryArray:
		m := map[string]any{
			"record":                 "BinaryArray",
			"object_id":              r.ObjectId,
			"binary_array_type_enum": r.BinaryArrayTypeEnum,
			"rank":                   r.Rank,
			"lengths":                r.Lengths,
			"type_enum":              r.TypeEnum.String(),
			"additional_type_info":   additionalTypeInfoToFlat(r.AdditionalTypeInfo),
			"element_values":         objectValuesToFlat(r.ElementValues),
		}
		if r.LowerBounds != nil {
			m["lower_bounds"] = r.LowerBounds
		}
		return m
	case *ArraySinglePrimitive:
		elements := make([]map[string]any, len(r.ElementValues))
		for i, v := range r.ElementValues {
			elements[i] = primitiveValueToFlat(v)
		}
		return map[string]any{
			"record":              "ArraySinglePrimitive",
			"object_id":           r.ObjectId,
			"length":              r.Length,
			"primitive_type_enum": r.PrimitiveTypeEnum.String(),
			"element_values":      elements,
		}
	case *ArraySingleObject:
		return map[string]any{
			"record":         "ArraySingleObject",
			"object_id":      r.ObjectId,
			"length":         r.Length,
			"element_values": objectValuesToFlat(r.ElementValues),
		}
	case *ArraySingleString:
		return map[string]any{
			"record":         "ArraySingleString",
			"object_id":      r.ObjectId,
			"length":         r.Length,
			"element_values": objectValuesToFlat(r.ElementValues),
		}
	case *MemberPrimitiveTyped:
		return map[string]any{
			"record":              "MemberPrimitiveTyped",
			"primitive_type_enum": r.PrimitiveTypeEnum.String(),
			"value":               primitiveValueToFlat(r.Value),
		}
	case *MemberReference:
		return map[string]any{"record": "MemberReference", "id_ref": r.IdRef}
	case *ObjectNull:
		return map[string]any{"record": "ObjectNull"}
	case *ObjectNullMultiple:
		return map[string]any{"record": "ObjectNullMultiple", "null_count": r.NullCount}
	case *ObjectNullMultiple256:
		return map[string]any{"record": "ObjectNullMultiple256", "null_count": r.NullCount}
	case *MessageEnd:
		return map[string]any{"record": "MessageEnd"}
	default:
		return map[string]any{"record": fmt.Sprintf("unknown(%T)", rec)}
	}
}

///////////////////////////////////////////////////////////////////////////////
// flat JSON values -> records
//
// Decoded with json.Decoder.UseNumber(), so every JSON number in raw arrives
// as a json.Number (its exact source digits) rather than a float64 — this is
// what lets Int64/UInt64/TimeSpan/DateTime round-trip without precision loss
// even for values encoded as plain numbers rather than strings.

func asMap(v any, field string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("nrbf: field %q: expected object, got %T", field, v)
	}
	return m, nil
}

func asString(v any, field string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("nrbf: field %q: expected string, got %T", field, v)
	}
	return s, nil
}

func asInt64(v any, field string) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("nrbf: field %q: expected integer, got %T", field, v)
	}
}

func asUint64(v any, field string) (uint64, error) {
	switch n := v.(type) {
	case json.Number:
		return strconv.ParseUint(n.String(), 10, 64)
	case string:
		return strconv.ParseUint(n, 10, 64)
	default:
		return 0, fmt.Errorf("nrbf: field %q: expected unsigned integer, got %T", field, v)
	}
}

func asFloat64(v any, field string) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("nrbf: field %q: expected float, got %T", field, v)
	}
}

func asBool(v any, field string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("nrbf: field %q: expected bool, got %T", field, v)
	}
	return b, nil
}

func asInt32(v any, field string) (int32, error) {
	n, err := asInt64(v, field)
	return int32(n), err
}

func asStringSlice(v any, field string) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("nrbf: field %q: expected array, got %T", field, v)
	}
	out := make([]string, len(raw))
	for i, e := range raw {
		s, err := asString(e, field)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func asInt32Slice(v any, field string) ([]int32, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("nrbf: field %q: expected array, got %T", field, v)
	}
	out := make([]int32, len(raw))
	for i, e := range raw {
		n, err := asInt32(e, field)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func asMapSlice(v any, field string) ([]map[string]any, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("nrbf: field %q: expected array, got %T", field, v)
	}
	out := make([]map[string]any, len(raw))
	for i, e := range raw {
		m, err := asMap(e, field)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func flatValueToClassInfo(m map[string]any) (ClassInfo, error) {
	objectId, err := asInt32(m["object_id"], "object_id")
	if err != nil {
		return ClassInfo{}, err
	}
	name, err := asString(m["name"], "name")
	if err != nil {
		return ClassInfo{}, err
	}
	memberCount, err := asInt32(m["member_count"], "member_count")
	if err != nil {
		return ClassInfo{}, err
	}
	memberNames, err := asStringSlice(m["member_names"], "member_names")
	if err != nil {
		return ClassInfo{}, err
	}
	return ClassInfo{ObjectId: objectId, Name: name, MemberCount: memberCount, MemberNames: memberNames}, nil
}

func flatValueToAdditionalTypeInfo(m map[string]any) (AdditionalTypeInfo, error) {
	var info AdditionalTypeInfo
	if raw, ok := m["primitive"]; ok {
		name, err := asString(raw, "primitive")
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		pt, err := PrimitiveTypeFromName(name)
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		info.Primitive = &pt
	}
	if raw, ok := m["name"]; ok {
		name, err := asString(raw, "name")
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		info.Name = &name
	}
	if raw, ok := m["library_id"]; ok {
		id, err := asInt32(raw, "library_id")
		if err != nil {
			return AdditionalTypeInfo{}, err
		}
		info.LibraryId = &id
	}
	return info, nil
}

func flatValueToMemberTypeInfo(m map[string]any) (MemberTypeInfo, error) {
	names, err := asStringSlice(m["binary_types"], "binary_types")
	if err != nil {
		return MemberTypeInfo{}, err
	}
	binaryTypes := make([]BinaryType, len(names))
	for i, name := range names {
		bt, err := BinaryTypeFromName(name)
		if err != nil {
			return MemberTypeInfo{}, err
		}
		binaryTypes[i] = bt
	}
	rawInfos, err := asMapSlice(m["additional_infos"], "additional_infos")
	if err != nil {
		return MemberTypeInfo{}, err
	}
	additionalInfos := make([]AdditionalTypeInfo, len(rawInfos))
	for i, raw := range rawInfos {
		additionalInfos[i], err = flatValueToAdditionalTypeInfo(raw)
		if err != nil {
			return MemberTypeInfo{}, err
		}
	}
	return MemberTypeInfo{BinaryTypes: binaryTypes, AdditionalInfos: additionalInfos}, nil
}

func flatValueToPrimitive(m map[string]any) (PrimitiveValue, error) {
	typeName, err := asString(m["type"], "type")
	if err != nil {
		return PrimitiveValue{}, err
	}
	pt, err := PrimitiveTypeFromName(typeName)
	if err != nil {
		return PrimitiveValue{}, err
	}
	value := m["value"]
	v := PrimitiveValue{Type: pt}
	switch pt {
	case PrimitiveTypeBoolean:
		v.Bool, err = asBool(value, "value")
	case PrimitiveTypeByte:
		var n int64
		n, err = asInt64(value, "value")
		v.Byte = byte(n)
	case PrimitiveTypeChar:
		var s string
		s, err = asString(value, "value")
		if err == nil && len(s) > 0 {
			v.Char = []rune(s)[0]
		}
	case PrimitiveTypeDecimal:
		v.Decimal, err = asString(value, "value")
	case PrimitiveTypeDouble:
		v.Double, err = asFloat64(value, "value")
	case PrimitiveTypeInt16:
		var n int64
		n, err = asInt64(value, "value")
		v.Int16 = int16(n)
	case PrimitiveTypeInt32:
		v.Int32, err = asInt32(value, "value")
	case PrimitiveTypeInt64:
		v.Int64, err = int64FromFlatValue(value)
	case PrimitiveTypeSByte:
		var n int64
		n, err = asInt64(value, "value")
		v.SByte = int8(n)
	case PrimitiveTypeSingle:
		var f float64
		f, err = asFloat64(value, "value")
		v.Single = float32(f)
	case PrimitiveTypeTimeSpan:
		v.TimeSpan, err = int64FromFlatValue(value)
	case PrimitiveTypeDateTime:
		v.DateTime, err = uint64FromFlatValue(value)
	case PrimitiveTypeUInt16:
		var n uint64
		n, err = asUint64(value, "value")
		v.UInt16 = uint16(n)
	case PrimitiveTypeUInt32:
		var n uint64
		n, err = asUint64(value, "value")
		v.UInt32 = uint32(n)
	case PrimitiveTypeUInt64:
		v.UInt64, err = uint64FromFlatValue(value)
	case PrimitiveTypeNull:
		// no payload
	case PrimitiveTypeString:
		v.String, err = asString(value, "value")
	}
	return v, err
}

// int64FromFlatValue/uint64FromFlatValue accept either a JSON string (the
// form FlatEncode actually produces for these wide types) or a bare JSON
// number, so hand-edited flat JSON fixtures work either way.
func int64FromFlatValue(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(s, 10, 64)
	}
	return asInt64(v, "value")
}

func uint64FromFlatValue(v any) (uint64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseUint(s, 10, 64)
	}
	return asUint64(v, "value")
}

func flatValueToObjectValue(m map[string]any) (ObjectValue, error) {
	if raw, ok := m["primitive"]; ok {
		pm, err := asMap(raw, "primitive")
		if err != nil {
			return ObjectValue{}, err
		}
		v, err := flatValueToPrimitive(pm)
		if err != nil {
			return ObjectValue{}, err
		}
		return objectValueOfPrimitive(v), nil
	}
	if raw, ok := m["record"]; ok {
		rm, err := asMap(raw, "record")
		if err != nil {
			return ObjectValue{}, err
		}
		rec, err := flatValueToRecord(rm)
		if err != nil {
			return ObjectValue{}, err
		}
		return objectValueOfRecord(rec), nil
	}
	return ObjectValue{}, fmt.Errorf("nrbf: object value has neither \"primitive\" nor \"record\" key")
}

func flatValuesToObjectValues(raw []map[string]any) ([]ObjectValue, error) {
	out := make([]ObjectValue, len(raw))
	for i, m := range raw {
		ov, err := flatValueToObjectValue(m)
		if err != nil {
			return nil, err
		}
		out[i] = ov
	}
	return out, nil
}

func flatValueToRecord(m map[string]any) (Record, error) {
	name, err := asString(m["record"], "record")
	if err != nil {
		return nil, err
	}
	switch name {
	case "SerializationHeader":
		rootId, err := asInt32(m["root_id"], "root_id")
		if err != nil {
			return nil, err
		}
		headerId, err := asInt32(m["header_id"], "header_id")
		if err != nil {
			return nil, err
		}
		major, err := asInt32(m["major_version"], "major_version")
		if err != nil {
			return nil, err
		}
		minor, err := asInt32(m["minor_version"], "minor_version")
		if err != nil {
			return nil, err
		}
		return &SerializationHeader{RootId: rootId, HeaderId: headerId, MajorVersion: major, MinorVersion: minor}, nil

	case "BinaryLibrary":
		libraryId, err := asInt32(m["library_id"], "library_id")
		if err != nil {
			return nil, err
		}
		name, err := asString(m["library_name"], "library_name")
		if err != nil {
			return nil, err
		}
		return &BinaryLibrary{LibraryId: libraryId, LibraryName: name}, nil

	case "ClassWithMembersAndTypes":
		ciRaw, err := asMap(m["class_info"], "class_info")
		if err != nil {
			return nil, err
		}
		ci, err := flatValueToClassInfo(ciRaw)
		if err != nil {
			return nil, err
		}
		mtiRaw, err := asMap(m["member_type_info"], "member_type_info")
		if err != nil {
			return nil, err
		}
		mti, err := flatValueToMemberTypeInfo(mtiRaw)
		if err != nil {
			return nil, err
		}
		libraryId, err := asInt32(m["library_id"], "library_id")
		if err != nil {
			return nil, err
		}
		valuesRaw, err := asMapSlice(m["member_values"], "member_values")
		if err != nil {
			return nil, err
		}
		values, err := flatValuesToObjectValues(valuesRaw)
		if err != nil {
			return nil, err
		}
		return &ClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, LibraryId: libraryId, MemberValues: values}, nil

	case "SystemClassWithMembersAndTypes":
		ciRaw, err := asMap(m["class_info"], "class_info")
		if err != nil {
			return nil, err
		}
		ci, err := flatValueToClassInfo(ciRaw)
		if err != nil {
			return nil, err
		}
		mtiRaw, err := asMap(m["member_type_info"], "member_type_info")
		if err != nil {
			return nil, err
		}
		mti, err := flatValueToMemberTypeInfo(mtiRaw)
		if err != nil {
			return nil, err
		}
		valuesRaw, err := asMapSlice(m["member_values"], "member_values")
		if err != nil {
			return nil, err
		}
		values, err := flatValuesToObjectValues(valuesRaw)
		if err != nil {
			return nil, err
		}
		return &SystemClassWithMembersAndTypes{ClassInfo: ci, MemberTypeInfo: mti, MemberValues: values}, nil

	case "ClassWithMembers":
		ciRaw, err := asMap(m["class_info"], "class_info")
		if err != nil {
			return nil, err
		}
		ci, err := flatValueToClassInfo(ciRaw)
		if err != nil {
			return nil, err
		}
		libraryId, err := asInt32(m["library_id"], "library_id")
		if err != nil {
			return nil, err
		}
		valuesRaw, err := asMapSlice(m["member_values"], "member_values")
		if err != nil {
			return nil, err
		}
		values, err := flatValuesToObjectValues(valuesRaw)
		if err != nil {
			return nil, err
		}
		return &ClassWithMembers{ClassInfo: ci, LibraryId: libraryId, MemberValues: values}, nil

	case "SystemClassWithMembers":
		ciRaw, err := asMap(m["class_info"], "class_info")
		if err != nil {
			return nil, err
		}
		ci, err := flatValueToClassInfo(ciRaw)
		if err != nil {
			return nil, err
		}
		valuesRaw, err := asMapSlice(m["member_values"], "member_values")
		if err != nil {
			return nil, err
		}
		values, err := flatValuesToObjectValues(valuesRaw)
		if err != nil {
			return nil, err
		}
		return &SystemClassWithMembers{ClassInfo: ci, MemberValues: values}, nil

	case "ClassWithId":
		objectId, err := asInt32(m["object_id"], "object_id")
		if err != nil {
			return nil, err
		}
		metadataId, err := asInt32(m["metadata_id"], "metadata_id")
		if err != nil {
			return nil, err
		}
		valuesRaw, err := asMapSlice(m["member_values"], "member_values")
		if err != nil {
			return nil, err
		}
		values, err := flatValuesToObjectValues(valuesRaw)
		if err != nil {
			return nil, err
		}
		return &ClassWithId{ObjectId: objectId, MetadataId: metadataId, MemberValues: values}, nil

	case "BinaryObjectString":
		objectId, err := asInt32(m["object_id"], "object_id")
		if err != nil {
			return nil, err
		}
		value, err := asString(m["value"], "value")
		if err != nil {
			return nil, err
		}
		return &BinaryObjectString{ObjectId: objectId, Value: value}, nil

	case "BinaryArray":
		objectId, err := asInt32(m["object_id"], "object_id")
		if err != nil {
			return nil, err
		}
		arrayTypeEnum, err := asInt32(m["binary_array_type_enum"], "binary_array_type_enum")
		if err != nil {
			return nil, err
		}
		rank, err := asInt32(m["rank"], "rank")
		if err != nil {
			return nil, err
		}
		lengths, err := asInt32Slice(m["lengths"], "lengths")
		if err != nil {
			return nil, err
		}
		var lowerBounds []int32
		if raw, ok := m["lower_bounds"]; ok {
			lowerBounds, err = asInt32Slice(raw, "lower_bounds")
			if err != nil {
				return nil, err
			}
		}
		typeEnumName, err := asString(m["type_enum"], "type_enum")
		if err != nil {
			return nil, err
		}
		typeEnum, err := BinaryTypeFromName(typeEnumName)
		if err != nil {
			return nil, err
		}
		infoRaw, err := asMap(m["additional_type_info"], "additional_type_info")
		if err != nil {
			return nil, err
		}
		info, err := flatValueToAdditionalTypeInfo(infoRaw)
		if err != nil {
			return nil, err
		}
		elementsRaw, err := asMapSlice(m["element_values"], "element_values")
		if err != nil {
			return nil, err
		}
		elements, err := flatValuesToObjectValues(elementsRaw)
		if err != nil {
			return nil, err
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
		objectId, err := asInt32(m["object_id"], "object_id")
		if err != nil {
			return nil, err
		}
		length, err := asInt32(m["length"], "length")
		if err != nil {
			return nil, err
		}
		ptName, err := asString(m["primitive_type_enum"], "primitive_type_enum")
		if err != nil {
			return nil, err
		}
		pt, err := PrimitiveTypeFromName(ptName)
		if err != nil {
			return nil, err
		}
		elementsRaw, err := asMapSlice(m["element_values"], "element_values")
		if err != nil {
			return nil, err
		}
		elements := make([]PrimitiveValue, len(elementsRaw))
		for i, raw := range elementsRaw {
			elements[i], err = flatValueToPrimitive(raw)
			if err != nil {
				return nil, err
			}
		}
		return &ArraySinglePrimitive{ObjectId: objectId, Length: length, PrimitiveTypeEnum: pt, ElementValues: elements}, nil

	case "ArraySingleObject":
		objectId, err := asInt32(m["object_id"], "object_id")
		if err != nil {
			return nil, err
		}
		length, err := asInt32(m["length"], "length")
		if err != nil {
			return nil, err
		}
		elementsRaw, err := asMapSlice(m["element_values"], "element_values")
		if err != nil {
			return nil, err
		}
		elements, err := flatValuesToObjectValues(elementsRaw)
		if err != nil {
			return nil, err
		}
		return &ArraySingleObject{ObjectId: objectId, Length: length, ElementValues: elements}, nil

	case "ArraySingleString":
		objectId, err := asInt32(m["object_id"], "object_id")
		if err != nil {
			return nil, err
		}
		length, err := asInt32(m["length"], "length")
		if err != nil {
			return nil, err
		}
		elementsRaw, err := asMapSlice(m["element_values"], "element_values")
		if err != nil {
			return nil, err
		}
		elements, err := flatValuesToObjectValues(elementsRaw)
		if err != nil {
			return nil, err
		}
		return &ArraySingleString{ObjectId: objectId, Length: length, ElementValues: elements}, nil

	case "MemberPrimitiveTyped":
		ptName, err := asString(m["primitive_type_enum"], "primitive_type_enum")
		if err != nil {
			return nil, err
		}
		pt, err := PrimitiveTypeFromName(ptName)
		if err != nil {
			return nil, err
		}
		valueRaw, err := asMap(m["value"], "value")
		if err != nil {
			return nil, err
		}
		value, err := flatValueToPrimitive(valueRaw)
		if err != nil {
			return nil, err
		}
		return &MemberPrimitiveTyped{PrimitiveTypeEnum: pt, Value: value}, nil

	case "MemberReference":
		idRef, err := asInt32(m["id_ref"], "id_ref")
		if err != nil {
			return nil, err
		}
		return &MemberReference{IdRef: idRef}, nil

	case "ObjectNull":
		return &ObjectNull{}, nil

	case "ObjectNullMultiple":
		count, err := asInt32(m["null_count"], "null_count")
		if err != nil {
			return nil, err
		}
		return &ObjectNullMultiple{NullCount: count}, nil

	case "ObjectNullMultiple256":
		count, err := asInt64(m["null_count"], "null_count")
		if err != nil {
			return nil, err
		}
		return &ObjectNullMultiple256{NullCount: byte(count)}, nil

	case "MessageEnd":
		return &MessageEnd{}, nil

	default:
		return nil, fmt.Errorf("nrbf: unknown flat json record variant %q", name)
	}
}
