/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP Message encoder
 */

package ippcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// messageEncoder represents Message encoder
type messageEncoder struct {
	out io.Writer    // Output stream
	buf bytes.Buffer // Attribute section
}

// encode encodes the message
//
// Wire format:
//
//	2 bytes:  Version
//	2 bytes:  Code (Operation or Status)
//	4 bytes:  RequestID
//	variable: attributes
//	1 byte:   TagEnd
//	variable: payload
func (me *messageEncoder) encode(m *Message) (int64, error) {
	var hdr [headerSize]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(m.Version))
	binary.BigEndian.PutUint16(hdr[2:4], uint16(m.Code))
	binary.BigEndian.PutUint32(hdr[4:8], m.RequestID)
	me.buf.Write(hdr[:])

	for _, grp := range m.Groups {
		if !grp.Tag.IsGroup() {
			return 0, fmt.Errorf("%w: %s used as group tag",
				ErrInvalidTag, grp.Tag)
		}

		me.buf.WriteByte(byte(grp.Tag))
		for _, attr := range grp.Attrs {
			err := me.encodeAttr(attr)
			if err != nil {
				return 0, fmt.Errorf("%s %q: %w", grp.Tag, attr.Name, err)
			}
		}
	}

	me.buf.WriteByte(byte(TagEnd))

	// Attributes are complete; send them out
	n, err := me.buf.WriteTo(me.out)
	if err != nil {
		return n, &IOError{Op: "write", Err: err}
	}

	if m.Payload != nil {
		var n2 int64
		n2, err = io.Copy(me.out, m.Payload)
		n += n2
		if err != nil {
			return n, &IOError{Op: "copy", Err: err}
		}
	}

	return n, nil
}

// encodeAttr encodes attribute
//
// Wire format
//
//	1 byte:   Tag
//	2 bytes:  len(Name)
//	variable: name
//	2 bytes:  len(Value)
//	variable  Value
//
// ListOf is written as a sequence of entries, where all
// entries but the first one come without name
func (me *messageEncoder) encodeAttr(attr Attribute) error {
	if attr.Name == "" {
		return ErrEmptyName
	}

	if len(attr.Name) > math.MaxUint16 {
		return fmt.Errorf("%w: name is %d bytes", ErrOversizedPayload,
			len(attr.Name))
	}

	values := attr.Values()
	if len(values) == 0 {
		return fmt.Errorf("%w: attribute has no values", ErrMalformedValue)
	}

	name := attr.Name
	for _, val := range values {
		err := me.encodeEntry(name, val)
		if err != nil {
			return err
		}
		name = ""
	}

	return nil
}

// encodeEntry encodes a single tag+name+value entry
func (me *messageEncoder) encodeEntry(name string, val Value) error {
	if val == nil {
		return fmt.Errorf("%w: nil value", ErrMalformedValue)
	}

	tag := val.Tag()
	if tag.IsDelimiter() {
		return fmt.Errorf("%w: %s used as value tag", ErrInvalidTag, tag)
	}

	data, err := EncodeValue(val)
	if err != nil {
		return err
	}

	me.buf.WriteByte(byte(tag))
	me.encodeBytes([]byte(name))
	me.encodeBytes(data)

	return nil
}

// encodeBytes writes length-prefixed byte slice. Length
// is already checked by the caller
func (me *messageEncoder) encodeBytes(data []byte) {
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(data)))
	me.buf.Write(l[:])
	me.buf.Write(data)
}
