/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP messages (requests and responses)
 */

package ippcodec

import (
	"bytes"
	"fmt"
	"io"
)

// Code represents Op (operation) or Status code. The
// message header doesn't tell which one; the caller knows
// it from the message direction
type Code uint16

// Version represents a protocol version. It consist
// of Major and Minor version codes, packed into a single
// 16-bit word
type Version uint16

// DefaultVersion is the default IPP version (1.1)
const DefaultVersion Version = 0x0101

// MakeVersion makes version from major and minor parts
func MakeVersion(major, minor uint8) Version {
	return Version(major)<<8 | Version(minor)
}

// Major returns a major part of version
func (v Version) Major() uint8 {
	return uint8(v >> 8)
}

// Minor returns a minor part of version
func (v Version) Minor() uint8 {
	return uint8(v)
}

// String converts version to string (i.e., "1.1")
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// Header is the fixed 8-byte IPP message header
type Header struct {
	Version   Version // Protocol version
	Code      Code    // Operation for request, status for response
	RequestID uint32  // Set in request, returned in response
}

// Message represents a single IPP message, which may be either
// client request or server response
//
// Payload, if not nil, is copied to the output after the
// attributes by Encode. For decoded messages, Payload is the
// unread remainder of the input stream. It is consumed once,
// from start to end
type Message struct {
	Header
	Groups  Groups    // Attribute groups
	Payload io.Reader // Document data, may be nil
}

// NewRequest creates a new request message
//
// Use DefaultVersion as a first argument, if you don't
// have any specific needs
func NewRequest(v Version, op Op, id uint32) *Message {
	return &Message{
		Header: Header{
			Version:   v,
			Code:      Code(op),
			RequestID: id,
		},
	}
}

// NewResponse creates a new response message
//
// Use DefaultVersion as a first argument, if you don't
// have any specific needs
func NewResponse(v Version, status Status, id uint32) *Message {
	return &Message{
		Header: Header{
			Version:   v,
			Code:      Code(status),
			RequestID: id,
		},
	}
}

// Op returns message Code, interpreted as operation
func (m *Message) Op() Op {
	return Op(m.Code)
}

// Status returns message Code, interpreted as status
func (m *Message) Status() Status {
	return Status(m.Code)
}

// Add adds attribute to the group with the specified tag
func (m *Message) Add(tag Tag, attr Attribute) {
	m.Groups.Add(tag, attr)
}

// Get returns the first attribute with the given name
// from the group with the specified tag
func (m *Message) Get(tag Tag, name string) (Attribute, bool) {
	return m.Groups.Get(tag, name)
}

// Equal checks that two messages are equal. Payloads
// are not compared
func (m *Message) Equal(m2 *Message) bool {
	return m.Header == m2.Header && m.Groups.Equal(m2.Groups)
}

// Check returns *StatusError if message, interpreted as
// a response, carries unsuccessful status
func (m *Message) Check() error {
	if !m.Status().IsSuccess() {
		return &StatusError{Status: m.Status()}
	}
	return nil
}

// Close closes the message Payload, if it implements io.Closer
func (m *Message) Close() error {
	if closer, ok := m.Payload.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Encode writes message to io.Writer and returns number
// of bytes written, including payload
//
// The attribute section is assembled in memory first, so
// if the message cannot be encoded, nothing is written
func (m *Message) Encode(out io.Writer) (int64, error) {
	me := messageEncoder{
		out: out,
	}

	return me.encode(m)
}

// EncodeBytes encodes message to byte slice
func (m *Message) EncodeBytes() ([]byte, error) {
	var buf bytes.Buffer

	_, err := m.Encode(&buf)
	return buf.Bytes(), err
}

// Print pretty-prints the message. The 'request' parameter affects
// interpretation of Message.Code: it is interpreted either
// as Op or as Status
func (m *Message) Print(out io.Writer, request bool) {
	f := formatter{out: out}
	f.printMessage(m, request)
}

// Decode reads message from io.Reader
//
// Bytes that follow the end-of-attributes tag are left unread
// and become the message Payload
func Decode(in io.Reader) (*Message, error) {
	return DecodeEx(in, DecoderOptions{})
}

// DecodeEx reads message from io.Reader
//
// It is extended version of the Decode function, with additional
// DecoderOptions parameter
func DecodeEx(in io.Reader, opt DecoderOptions) (*Message, error) {
	md := newMessageDecoder(in, opt)
	return md.decode()
}

// DecodeBytes decodes message from byte slice
func DecodeBytes(data []byte) (*Message, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeBytesEx decodes message from byte slice
//
// It is extended version of the DecodeBytes function, with additional
// DecoderOptions parameter
func DecodeBytesEx(data []byte, opt DecoderOptions) (*Message, error) {
	return DecodeEx(bytes.NewReader(data), opt)
}
