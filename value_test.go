/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Value tests
 */

package ippcodec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestValueEncodeDecode tests encoding and decoding of
// each value type
func TestValueEncodeDecode(t *testing.T) {
	type testData struct {
		v    Value  // Input value
		data []byte // Expected wire bytes
	}

	tests := []testData{
		{Integer(0x01020304), []byte{1, 2, 3, 4}},
		{Integer(-1), []byte{0xff, 0xff, 0xff, 0xff}},
		{Boolean(true), []byte{1}},
		{Boolean(false), []byte{0}},
		{Enum(3), []byte{0, 0, 0, 3}},
		{Range{Lower: 1, Upper: 256}, []byte{0, 0, 0, 1, 0, 0, 1, 0}},
		{Resolution{Xres: 300, Yres: 600, Units: UnitsDpi},
			[]byte{0, 0, 1, 0x2c, 0, 0, 2, 0x58, 3}},
		{DateTime{0x07, 0xe4, 1, 15, 10, 30, 0, 0, '+', 3, 0},
			[]byte{0x07, 0xe4, 1, 15, 10, 30, 0, 0, '+', 3, 0}},
		{OctetString{0, 1, 2}, []byte{0, 1, 2}},
		{Charset("utf-8"), []byte("utf-8")},
		{NaturalLanguage("en-us"), []byte("en-us")},
		{URI("ipp://host/printers/x"), []byte("ipp://host/printers/x")},
		{URIScheme("ipps"), []byte("ipps")},
		{Keyword("one-sided"), []byte("one-sided")},
		{MimeMediaType("application/pdf"), []byte("application/pdf")},
		{Text("Hello"), []byte("Hello")},
		{Name("Job"), []byte("Job")},
		{TextWithLang{Lang: "en", Text: "Hi"},
			[]byte{0, 2, 'e', 'n', 0, 2, 'H', 'i'}},
		{NameWithLang{Lang: "ru", Name: ""},
			[]byte{0, 2, 'r', 'u', 0, 0}},
		{Unsupported{}, []byte{}},
		{Unknown{}, []byte{}},
		{NoValue{}, []byte{}},
		{Other{T: TagExtension, Data: []byte{0, 0, 0x12, 0x34}},
			[]byte{0, 0, 0x12, 0x34}},
		{Other{T: TagBeginCollection, Data: []byte{}}, []byte{}},
	}

	for _, test := range tests {
		data, err := EncodeValue(test.v)
		if err != nil {
			t.Errorf("%s: encode: %s", test.v.Tag(), err)
			continue
		}

		if !bytes.Equal(data, test.data) {
			t.Errorf("%s: encode:\nexpected: %x\npresent:  %x",
				test.v.Tag(), test.data, data)
		}

		v, err := DecodeValue(test.v.Tag(), data)
		if err != nil {
			t.Errorf("%s: decode: %s", test.v.Tag(), err)
			continue
		}

		if !ValueEqual(v, test.v) {
			t.Errorf("%s: decode:\nexpected: %s\npresent:  %s",
				test.v.Tag(), test.v, v)
		}
	}
}

// TestValueDecodeErrors tests decoding of malformed values
func TestValueDecodeErrors(t *testing.T) {
	type testData struct {
		tag  Tag    // Value tag
		data []byte // Input bytes
		err  error  // Expected error
	}

	tests := []testData{
		{TagInteger, []byte{1, 2, 3}, ErrMalformedValue},
		{TagEnum, []byte{1, 2, 3, 4, 5}, ErrMalformedValue},
		{TagBoolean, []byte{}, ErrMalformedValue},
		{TagBoolean, []byte{2}, ErrMalformedValue},
		{TagRange, []byte{0, 0, 0, 1}, ErrMalformedValue},
		{TagResolution, make([]byte, 8), ErrMalformedValue},
		{TagDateTime, make([]byte, 12), ErrMalformedValue},
		{TagKeyword, []byte{0xff, 0xfe}, ErrMalformedValue},
		{TagTextLang, []byte{0, 5, 'e', 'n'}, ErrMalformedValue},
		{TagTextLang, []byte{0, 2, 'e', 'n'}, ErrMalformedValue},
		{TagNameLang, []byte{0, 2, 'e', 'n', 0, 1, 'x', 'y'}, ErrMalformedValue},
		{TagOperationGroup, []byte{}, ErrInvalidTag},
		{TagEnd, []byte{}, ErrInvalidTag},
	}

	for _, test := range tests {
		_, err := DecodeValue(test.tag, test.data)
		if !errors.Is(err, test.err) {
			t.Errorf("%s %x: expected %q, present %v",
				test.tag, test.data, test.err, err)
		}
	}
}

// TestValueOutOfBand tests that out-of-band values ignore
// whatever payload comes with them
func TestValueOutOfBand(t *testing.T) {
	for _, tag := range []Tag{TagUnsupportedValue, TagUnknown, TagNoValue} {
		v, err := DecodeValue(tag, []byte{1, 2, 3})
		if err != nil {
			t.Errorf("%s: %s", tag, err)
			continue
		}

		if v.Tag() != tag {
			t.Errorf("%s: decoded as %s", tag, v.Tag())
		}

		if !tag.IsOutOfBand() {
			t.Errorf("%s: IsOutOfBand returned false", tag)
		}
	}
}

// TestValueUnknownTag tests handling of tags without
// dedicated Value type
func TestValueUnknownTag(t *testing.T) {
	data := []byte{0xde, 0xad}

	v, err := decodeValue(Tag(0x4f), data, DecoderOptions{})
	if err != nil {
		t.Fatalf("%s", err)
	}

	expected := Other{T: Tag(0x4f), Data: data}
	if !ValueEqual(v, expected) {
		t.Errorf("expected %s, present %s", expected, v)
	}

	// Other must not share memory with the input
	data[0] = 0
	if v.(Other).Data[0] != 0xde {
		t.Errorf("Other shares memory with decoder input")
	}

	_, err = decodeValue(Tag(0x4f), data,
		DecoderOptions{RejectUnknownTags: true})
	if !errors.Is(err, ErrUnknownValueTag) {
		t.Errorf("expected %q, present %v", ErrUnknownValueTag, err)
	}
}

// TestValueInvalidUTF8Workaround tests EnableWorkarounds
// handling of invalid strings
func TestValueInvalidUTF8Workaround(t *testing.T) {
	data := []byte("bad\xffname")

	v, err := decodeValue(TagName, data,
		DecoderOptions{EnableWorkarounds: true})
	if err != nil {
		t.Fatalf("%s", err)
	}

	if v != Name("bad�name") {
		t.Errorf("unexpected value %q", v)
	}

	v, err = decodeValue(TagBoolean, []byte{0xff},
		DecoderOptions{EnableWorkarounds: true})
	if err != nil {
		t.Fatalf("%s", err)
	}

	if v != Boolean(true) {
		t.Errorf("boolean 0xff: expected true, present %v", v)
	}
}

// TestValueStringLimit tests the 16-bit length limit
func TestValueStringLimit(t *testing.T) {
	s := strings.Repeat("x", 65535)

	data, err := EncodeValue(Text(s))
	if err != nil {
		t.Errorf("65535 bytes: %s", err)
	} else if len(data) != 65535 {
		t.Errorf("65535 bytes: encoded as %d bytes", len(data))
	}

	_, err = EncodeValue(Text(s + "x"))
	if !errors.Is(err, ErrOversizedPayload) {
		t.Errorf("65536 bytes: expected %q, present %v",
			ErrOversizedPayload, err)
	}

	_, err = EncodeValue(TextWithLang{Lang: "en", Text: s[:65531-2]})
	if err != nil {
		t.Errorf("textWithLanguage 65535 bytes: %s", err)
	}

	_, err = EncodeValue(TextWithLang{Lang: "en", Text: s[:65531-1]})
	if !errors.Is(err, ErrOversizedPayload) {
		t.Errorf("textWithLanguage 65536 bytes: expected %q, present %v",
			ErrOversizedPayload, err)
	}
}

// TestValueListOf tests ListOf properties
func TestValueListOf(t *testing.T) {
	l := ListOf{Keyword("a"), Keyword("b")}

	if l.Tag() != TagKeyword {
		t.Errorf("ListOf.Tag: expected %s, present %s", TagKeyword, l.Tag())
	}

	if (ListOf{}).Tag() != TagZero {
		t.Errorf("empty ListOf.Tag: expected %s", TagZero)
	}

	if s := l.String(); s != "[a,b]" {
		t.Errorf("ListOf.String: %q", s)
	}

	_, err := EncodeValue(l)
	if !errors.Is(err, ErrMalformedValue) {
		t.Errorf("EncodeValue(ListOf): expected %q, present %v",
			ErrMalformedValue, err)
	}

	l2 := ValueDeepCopy(l).(ListOf)
	if !ValueEqual(l, l2) {
		t.Errorf("ValueDeepCopy: %s != %s", l, l2)
	}

	l2[1] = Keyword("c")
	if ValueEqual(l, l2) {
		t.Errorf("ValueDeepCopy: copy shares memory with original")
	}
}

// TestValueEqual tests ValueEqual
func TestValueEqual(t *testing.T) {
	type testData struct {
		v1, v2 Value
		equal  bool
	}

	tests := []testData{
		{Integer(1), Integer(1), true},
		{Integer(1), Enum(1), false},
		{Keyword("a"), Text("a"), false},
		{OctetString{1}, OctetString{1}, true},
		{OctetString{1}, Other{T: TagOctetString, Data: []byte{1}}, false},
		{Other{T: 0x7f, Data: []byte{1}}, Other{T: 0x7f, Data: []byte{1}}, true},
		{Other{T: 0x7f, Data: []byte{1}}, Other{T: 0x4f, Data: []byte{1}}, false},
		{Keyword("a"), ListOf{Keyword("a")}, true},
		{Keyword("a"), ListOf{Keyword("a"), Keyword("a")}, false},
		{TextWithLang{"en", "x"}, TextWithLang{"en", "x"}, true},
		{Unknown{}, Unknown{}, true},
		{Unknown{}, NoValue{}, false},
	}

	for _, test := range tests {
		if ValueEqual(test.v1, test.v2) != test.equal {
			t.Errorf("ValueEqual(%s, %s): expected %v",
				test.v1, test.v2, test.equal)
		}
	}
}

// TestDateTime tests DateTime conversions
func TestDateTime(t *testing.T) {
	loc := time.FixedZone("", -(5*3600 + 30*60))
	tm := time.Date(2020, time.March, 9, 17, 45, 30, 700000000, loc)

	dt := MakeDateTime(tm)
	expected := DateTime{0x07, 0xe4, 3, 9, 17, 45, 30, 7, '-', 5, 30}
	if dt != expected {
		t.Errorf("MakeDateTime:\nexpected: %x\npresent:  %x", expected, dt)
	}

	tm2, err := dt.Time()
	if err != nil {
		t.Fatalf("Time: %s", err)
	}

	if !tm2.Equal(tm.Truncate(100 * time.Millisecond)) {
		t.Errorf("Time: expected %s, present %s", tm, tm2)
	}

	bad := dt
	bad[2] = 13
	if _, err = bad.Time(); err == nil {
		t.Errorf("Time: month 13 accepted")
	}
}
