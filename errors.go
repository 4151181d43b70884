// Copyright (c) 2026 nrbf-go Authors

package nrbf

import "fmt"

// Sentinel errors for the decode/encode error taxonomy. Callers can use
// errors.Is against these even though the concrete error returned often
// wraps additional context (the offending byte, the missing id, etc).
var (
	ErrInvalidRecordType    = fmt.Errorf("nrbf: invalid record type")
	ErrInvalidBinaryType    = fmt.Errorf("nrbf: invalid binary type")
	ErrInvalidPrimitiveType = fmt.Errorf("nrbf: invalid primitive type")
	ErrInvalidUtf8          = fmt.Errorf("nrbf: invalid utf-8 in length-prefixed string")
	ErrInvalidStringLength  = fmt.Errorf("nrbf: negative string length")
	ErrUnimplementedRecord  = fmt.Errorf("nrbf: unimplemented record type")
	ErrVlqTooLong           = fmt.Errorf("nrbf: variable-length int exceeds five bytes")
	ErrMetadataNotFound     = fmt.Errorf("nrbf: metadata id not found")
	ErrExpectedRecord       = fmt.Errorf("nrbf: expected record for object value, got end of stream")
	ErrAdditionalTypeInfo   = fmt.Errorf("nrbf: additional type info does not match binary type")
	ErrMalformedDecimal     = fmt.Errorf("nrbf: malformed decimal hex payload")
	ErrStringTooLong        = fmt.Errorf("nrbf: length-prefixed string exceeds maximum allowed length")
)

func invalidRecordTypeError(b byte) error {
	return fmt.Errorf("%w: 0x%02x", ErrInvalidRecordType, b)
}

func invalidBinaryTypeError(b byte) error {
	return fmt.Errorf("%w: 0x%02x", ErrInvalidBinaryType, b)
}

func invalidPrimitiveTypeError(b byte) error {
	return fmt.Errorf("%w: 0x%02x", ErrInvalidPrimitiveType, b)
}

func invalidStringLengthError(n int32) error {
	return fmt.Errorf("%w: %d", ErrInvalidStringLength, n)
}

func unimplementedRecordTypeError(b byte) error {
	return fmt.Errorf("%w: tag 0x%02x", ErrUnimplementedRecord, b)
}

func metadataNotFoundError(id int32) error {
	return fmt.Errorf("%w: %d", ErrMetadataNotFound, id)
}

func additionalTypeInfoMismatchError(bt BinaryType) error {
	return fmt.Errorf("%w: for binary type %s", ErrAdditionalTypeInfo, bt)
}
