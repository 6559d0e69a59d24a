/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP Message decoder
 */

package ippcodec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// DecoderOptions represents message decoder options
type DecoderOptions struct {
	// EnableWorkarounds, if set to true, enables workarounds
	// for messages that violate the IPP specification
	//
	// Currently it makes decoder accept strings that are
	// not valid UTF-8, replacing invalid sequences with U+FFFD,
	// and boolean bytes other than 0 and 1, taken as true
	EnableWorkarounds bool

	// RejectUnknownTags, if set to true, makes decoder fail
	// with ErrUnknownValueTag on value tags that have no
	// dedicated Value type, instead of passing them through
	// as Other
	RejectUnknownTags bool
}

// messageDecoder represents Message decoder
type messageDecoder struct {
	in  io.Reader      // Input stream
	off int            // Offset of the current item
	cnt int            // Count of read bytes
	opt DecoderOptions // Options
}

// newMessageDecoder creates a new messageDecoder
//
// Input is read in small pieces, so if it doesn't look
// buffered, it is wrapped into bufio.Reader. Whatever
// bufio reads ahead stays available to the caller as
// the message Payload
func newMessageDecoder(in io.Reader, opt DecoderOptions) *messageDecoder {
	if _, buffered := in.(io.ByteReader); !buffered {
		in = bufio.NewReader(in)
	}

	return &messageDecoder{in: in, opt: opt}
}

// decode decodes the message
//
// Wire format:
//
//	2 bytes:  Version
//	2 bytes:  Code (Operation or Status)
//	4 bytes:  RequestID
//	variable: attributes
//	1 byte:   TagEnd
//	variable: payload, up to the end of stream
//
// On error, nil Message is returned, so caller never
// sees a partially decoded message
func (md *messageDecoder) decode() (*Message, error) {
	var hdr [headerSize]byte
	err := md.read(hdr[:])
	if err != nil {
		return nil, md.error(err)
	}

	m := &Message{
		Header: Header{
			Version:   Version(binary.BigEndian.Uint16(hdr[0:2])),
			Code:      Code(binary.BigEndian.Uint16(hdr[2:4])),
			RequestID: binary.BigEndian.Uint32(hdr[4:8]),
		},
	}

	// grp is the index of the current group in m.Groups and
	// prev is the index of the last attribute added to it, so
	// continuation values are folded without any lookup.
	// Both are reset at each delimiter
	grp, prev := -1, -1

	for {
		tag, err := md.decodeTag()
		if err != nil {
			return nil, md.error(err)
		}

		entryOff := md.off

		switch {
		case tag == TagZero:
			return nil, md.error(fmt.Errorf("%w 0", ErrInvalidTag))

		case tag == TagEnd:
			m.Payload = md.in
			return m, nil

		case tag.IsDelimiter():
			grp = m.Groups.bucket(tag)
			prev = -1
			continue

		case grp < 0:
			return nil, md.error(ErrValueOutsideGroup)
		}

		name, val, err := md.decodeEntry(tag)
		if err != nil {
			return nil, md.error(err)
		}

		attrs := &m.Groups[grp].Attrs
		if name == "" {
			if prev < 0 {
				md.off = entryOff
				return nil, md.error(ErrAdditionalValue)
			}
			(*attrs)[prev].fold(val)
		} else {
			attrs.Add(MakeAttribute(name, val))
			prev = len(*attrs) - 1
		}
	}
}

// decodeEntry decodes a single attribute entry, which
// follows the value tag
//
// Wire format:
//
//	2+N bytes:  Name length (2 bytes) + name string
//	2+N bytes:  Value length (2 bytes) + value bytes
func (md *messageDecoder) decodeEntry(tag Tag) (string, Value, error) {
	name, err := md.decodeBytes()
	if err != nil {
		return "", nil, err
	}

	data, err := md.decodeBytes()
	if err != nil {
		return "", nil, err
	}

	val, err := decodeValue(tag, data, md.opt)
	if err != nil {
		return "", nil, err
	}

	return string(name), val, nil
}

// decodeTag decodes a tag
func (md *messageDecoder) decodeTag() (Tag, error) {
	var buf [1]byte
	err := md.read(buf[:])
	return Tag(buf[0]), err
}

// decodeBytes decodes length-prefixed sequence of bytes
func (md *messageDecoder) decodeBytes() ([]byte, error) {
	var buf [2]byte
	err := md.read(buf[:])
	if err != nil {
		return nil, err
	}

	data := make([]byte, binary.BigEndian.Uint16(buf[:]))
	err = md.read(data)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// read reads exactly len(data) bytes from the input stream
func (md *messageDecoder) read(data []byte) error {
	md.off = md.cnt

	n, err := io.ReadFull(md.in, data)
	md.cnt += n

	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && md.cnt > 0:
		err = io.ErrUnexpectedEOF
	}

	return &IOError{Op: "read", Err: err}
}

// error wraps decode error into *DecodeError with
// the offset of the failed item
func (md *messageDecoder) error(err error) error {
	return &DecodeError{Off: md.off, Err: err}
}
