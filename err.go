/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Common errors
 */

package ippcodec

import (
	"errors"
	"fmt"
)

// Error values for ippcodec. Errors returned by the decoder and
// encoder wrap one of these, so use errors.Is to test for them
var (
	ErrMalformedValue    = errors.New("malformed value")
	ErrValueOutsideGroup = errors.New("attribute outside of any group")
	ErrUnknownValueTag   = errors.New("unknown value tag")
	ErrOversizedPayload  = errors.New("value too large")
	ErrAdditionalValue   = errors.New("additional value without preceding attribute")
	ErrInvalidTag        = errors.New("invalid tag")
	ErrEmptyName         = errors.New("attribute without name")
)

// DecodeError is returned by the message decoder. Off is the
// offset of the failed read within the input stream
type DecodeError struct {
	Off int   // Offset of the failure
	Err error // Underlying error
}

// Error returns error string
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at 0x%x", e.Err, e.Off)
}

// Unwrap returns the underlying error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IOError wraps a failure of the underlying byte stream
type IOError struct {
	Op  string // "read" or "write"
	Err error  // Error returned by the stream
}

// Error returns error string
func (e *IOError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *IOError) Unwrap() error {
	return e.Err
}

// StatusError reports an IPP response which was decoded
// successfully, but carries an unsuccessful status code
type StatusError struct {
	Status Status // IPP status code
}

// Error returns error string
func (e *StatusError) Error() string {
	return "IPP: " + e.Status.String()
}
