/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Values for message attributes
 */

package ippcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Value represents an attribute value
//
// The set of Value implementations is closed: every value kind
// known to IPP has its own type, and each type knows its wire tag.
// Tags not modeled here are preserved by Other
type Value interface {
	Tag() Tag
	String() string
	encode() ([]byte, error)
}

// Integer is the Value that represents 32-bit signed int
type Integer int32

// Tag returns TagInteger
func (Integer) Tag() Tag { return TagInteger }

// String converts Integer value to string
func (v Integer) String() string { return fmt.Sprintf("%d", int32(v)) }

func (v Integer) encode() ([]byte, error) {
	return encodeU32(uint32(v)), nil
}

// Boolean is the Value that contains true or false
type Boolean bool

// Tag returns TagBoolean
func (Boolean) Tag() Tag { return TagBoolean }

// String converts Boolean value to string
func (v Boolean) String() string { return fmt.Sprintf("%t", bool(v)) }

func (v Boolean) encode() ([]byte, error) {
	if v {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

// Enum is the Value that represents IPP enumeration. It has the
// same wire shape as Integer, but a distinct tag
type Enum int32

// Tag returns TagEnum
func (Enum) Tag() Tag { return TagEnum }

// String converts Enum value to string
func (v Enum) String() string { return fmt.Sprintf("%d", int32(v)) }

func (v Enum) encode() ([]byte, error) {
	return encodeU32(uint32(v)), nil
}

// Range is the Value that represents a range of 32-bit signed integers
type Range struct {
	Lower, Upper int32 // Lower/upper bounds
}

// Tag returns TagRange
func (Range) Tag() Tag { return TagRange }

// String converts Range value to string
func (v Range) String() string {
	return fmt.Sprintf("%d-%d", v.Lower, v.Upper)
}

func (v Range) encode() ([]byte, error) {
	// Wire format
	//    4 bytes: Lower
	//    4 bytes: Upper
	data := make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], uint32(v.Lower))
	binary.BigEndian.PutUint32(data[4:8], uint32(v.Upper))
	return data, nil
}

// Units represents resolution units
type Units uint8

// Resolution units codes
const (
	UnitsDpi  Units = 3 // Dots per inch
	UnitsDpcm Units = 4 // Dots per cm
)

// String converts Units to string
func (u Units) String() string {
	switch u {
	case UnitsDpi:
		return "dpi"
	case UnitsDpcm:
		return "dpcm"
	default:
		return fmt.Sprintf("0x%2.2x", uint8(u))
	}
}

// Resolution is the Value that represents image resolution
type Resolution struct {
	Xres, Yres int32 // Cross-feed and feed direction resolutions
	Units      Units // Resolution units
}

// Tag returns TagResolution
func (Resolution) Tag() Tag { return TagResolution }

// String converts Resolution value to string
func (v Resolution) String() string {
	return fmt.Sprintf("%dx%d%s", v.Xres, v.Yres, v.Units)
}

func (v Resolution) encode() ([]byte, error) {
	// Wire format
	//    4 bytes: Xres
	//    4 bytes: Yres
	//    1 byte:  Units
	data := make([]byte, 9)
	binary.BigEndian.PutUint32(data[0:4], uint32(v.Xres))
	binary.BigEndian.PutUint32(data[4:8], uint32(v.Yres))
	data[8] = byte(v.Units)
	return data, nil
}

// DateTime is the Value that represents RFC 2579 DateAndTime.
// It is kept in the wire form, so any received value can be
// re-encoded unchanged; use Time to interpret it
type DateTime [11]byte

// MakeDateTime converts time.Time into DateTime
func MakeDateTime(t time.Time) DateTime {
	// From RFC2579:
	//
	//     field  octets  contents                  range
	//     -----  ------  --------                  -----
	//       1      1-2   year*                     0..65536
	//       2       3    month                     1..12
	//       3       4    day                       1..31
	//       4       5    hour                      0..23
	//       5       6    minutes                   0..59
	//       6       7    seconds                   0..60
	//                    (use 60 for leap-second)
	//       7       8    deci-seconds              0..9
	//       8       9    direction from UTC        '+' / '-'
	//       9      10    hours from UTC*           0..13
	//      10      11    minutes from UTC          0..59
	year := t.Year()
	_, zone := t.Zone()
	dir := byte('+')
	if zone < 0 {
		zone = -zone
		dir = '-'
	}

	return DateTime{
		byte(year >> 8), byte(year),
		byte(t.Month()),
		byte(t.Day()),
		byte(t.Hour()),
		byte(t.Minute()),
		byte(t.Second()),
		byte(t.Nanosecond() / 100000000),
		dir,
		byte(zone / 3600),
		byte((zone / 60) % 60),
	}
}

// Tag returns TagDateTime
func (DateTime) Tag() Tag { return TagDateTime }

// Time interprets DateTime as time.Time
func (v DateTime) Time() (time.Time, error) {
	var err error
	switch {
	case v[2] < 1 || v[2] > 12:
		err = fmt.Errorf("bad month %d", v[2])
	case v[3] < 1 || v[3] > 31:
		err = fmt.Errorf("bad day %d", v[3])
	case v[4] > 23:
		err = fmt.Errorf("bad hours %d", v[4])
	case v[5] > 59:
		err = fmt.Errorf("bad minutes %d", v[5])
	case v[6] > 60:
		err = fmt.Errorf("bad seconds %d", v[6])
	case v[7] > 9:
		err = fmt.Errorf("bad deciseconds %d", v[7])
	case v[8] != '+' && v[8] != '-':
		err = errors.New("bad UTC sign")
	case v[9] > 13:
		err = fmt.Errorf("bad UTC hours %d", v[9])
	case v[10] > 59:
		err = fmt.Errorf("bad UTC minutes %d", v[10])
	}

	if err != nil {
		return time.Time{}, err
	}

	tzName := fmt.Sprintf("UTC%c%d", v[8], v[9])
	if v[10] != 0 {
		tzName += fmt.Sprintf(":%d", v[10])
	}

	tzOff := 3600*int(v[9]) + 60*int(v[10])
	if v[8] == '-' {
		tzOff = -tzOff
	}

	t := time.Date(
		int(binary.BigEndian.Uint16(v[0:2])),
		time.Month(v[2]),
		int(v[3]),
		int(v[4]),
		int(v[5]),
		int(v[6]),
		int(v[7])*100000000,
		time.FixedZone(tzName, tzOff),
	)

	return t, nil
}

// String converts DateTime value to string
func (v DateTime) String() string {
	t, err := v.Time()
	if err != nil {
		return fmt.Sprintf("%x", v[:])
	}
	return t.Format(time.RFC3339)
}

func (v DateTime) encode() ([]byte, error) {
	data := make([]byte, len(v))
	copy(data, v[:])
	return data, nil
}

// OctetString is the Value that represents raw bytes without
// any charset semantics
type OctetString []byte

// Tag returns TagOctetString
func (OctetString) Tag() Tag { return TagOctetString }

// String converts OctetString value to string
func (v OctetString) String() string { return fmt.Sprintf("%x", []byte(v)) }

func (v OctetString) encode() ([]byte, error) {
	return []byte(v), nil
}

// Charset is the Value that represents charset name
type Charset string

// Tag returns TagCharset
func (Charset) Tag() Tag { return TagCharset }

// String returns the charset name
func (v Charset) String() string { return string(v) }

func (v Charset) encode() ([]byte, error) { return []byte(v), nil }

// NaturalLanguage is the Value that represents RFC 5646 language tag
type NaturalLanguage string

// Tag returns TagLanguage
func (NaturalLanguage) Tag() Tag { return TagLanguage }

// String returns the language tag
func (v NaturalLanguage) String() string { return string(v) }

func (v NaturalLanguage) encode() ([]byte, error) { return []byte(v), nil }

// URI is the Value that represents URI
type URI string

// Tag returns TagURI
func (URI) Tag() Tag { return TagURI }

// String returns the URI
func (v URI) String() string { return string(v) }

func (v URI) encode() ([]byte, error) { return []byte(v), nil }

// URIScheme is the Value that represents URI scheme
type URIScheme string

// Tag returns TagURIScheme
func (URIScheme) Tag() Tag { return TagURIScheme }

// String returns the URI scheme
func (v URIScheme) String() string { return string(v) }

func (v URIScheme) encode() ([]byte, error) { return []byte(v), nil }

// Keyword is the Value that represents IPP keyword
type Keyword string

// Tag returns TagKeyword
func (Keyword) Tag() Tag { return TagKeyword }

// String returns the keyword
func (v Keyword) String() string { return string(v) }

func (v Keyword) encode() ([]byte, error) { return []byte(v), nil }

// MimeMediaType is the Value that represents MIME media type
type MimeMediaType string

// Tag returns TagMimeType
func (MimeMediaType) Tag() Tag { return TagMimeType }

// String returns the MIME type
func (v MimeMediaType) String() string { return string(v) }

func (v MimeMediaType) encode() ([]byte, error) { return []byte(v), nil }

// Text is the Value that represents textWithoutLanguage
type Text string

// Tag returns TagText
func (Text) Tag() Tag { return TagText }

// String returns the text
func (v Text) String() string { return string(v) }

func (v Text) encode() ([]byte, error) { return []byte(v), nil }

// Name is the Value that represents nameWithoutLanguage
type Name string

// Tag returns TagName
func (Name) Tag() Tag { return TagName }

// String returns the name
func (v Name) String() string { return string(v) }

func (v Name) encode() ([]byte, error) { return []byte(v), nil }

// TextWithLang is the Value that represents a text together
// with the natural language it is written in
type TextWithLang struct {
	Lang, Text string // Language and text
}

// Tag returns TagTextLang
func (TextWithLang) Tag() Tag { return TagTextLang }

// String converts TextWithLang value to string
func (v TextWithLang) String() string { return v.Text + " [" + v.Lang + "]" }

func (v TextWithLang) encode() ([]byte, error) {
	return encodeWithLang(v.Lang, v.Text)
}

// NameWithLang is the Value that represents a name together
// with the natural language it is written in
type NameWithLang struct {
	Lang, Name string // Language and name
}

// Tag returns TagNameLang
func (NameWithLang) Tag() Tag { return TagNameLang }

// String converts NameWithLang value to string
func (v NameWithLang) String() string { return v.Name + " [" + v.Lang + "]" }

func (v NameWithLang) encode() ([]byte, error) {
	return encodeWithLang(v.Lang, v.Name)
}

// ListOf is the Value of a multi-valued attribute. On the wire
// it is a sequence of entries, where all entries except the first
// one come without a name
type ListOf []Value

// Tag returns tag of the first value, or TagZero if list is empty.
// ListOf itself has no tag on the wire
func (v ListOf) Tag() Tag {
	if len(v) == 0 {
		return TagZero
	}
	return v[0].Tag()
}

// String converts ListOf value to string
func (v ListOf) String() string {
	strs := make([]string, len(v))
	for i, val := range v {
		strs[i] = val.String()
	}
	return "[" + strings.Join(strs, ",") + "]"
}

func (v ListOf) encode() ([]byte, error) {
	return nil, errors.New("ListOf has no single-entry wire form")
}

// Unsupported is the out-of-band Value "unsupported"
type Unsupported struct{}

// Tag returns TagUnsupportedValue
func (Unsupported) Tag() Tag { return TagUnsupportedValue }

// String returns "unsupported"
func (Unsupported) String() string { return "unsupported" }

func (Unsupported) encode() ([]byte, error) { return []byte{}, nil }

// Unknown is the out-of-band Value "unknown"
type Unknown struct{}

// Tag returns TagUnknown
func (Unknown) Tag() Tag { return TagUnknown }

// String returns "unknown"
func (Unknown) String() string { return "unknown" }

func (Unknown) encode() ([]byte, error) { return []byte{}, nil }

// NoValue is the out-of-band Value "no-value"
type NoValue struct{}

// Tag returns TagNoValue
func (NoValue) Tag() Tag { return TagNoValue }

// String returns "no-value"
func (NoValue) String() string { return "no-value" }

func (NoValue) encode() ([]byte, error) { return []byte{}, nil }

// Other is the Value for tags that have no dedicated type, such
// as collection delimiters or the extension tag. The raw bytes are
// kept as is, so these values survive a decode/encode cycle
type Other struct {
	T    Tag    // Wire tag
	Data []byte // Raw value bytes
}

// Tag returns the wire tag
func (v Other) Tag() Tag { return v.T }

// String converts Other value to string
func (v Other) String() string {
	return fmt.Sprintf("%s:%x", v.T, v.Data)
}

func (v Other) encode() ([]byte, error) {
	return v.Data, nil
}

// ValueEqual checks if two values are equal
//
// Equality means that types and values are equal. ListOf values
// are compared element by element. A single-element ListOf equals
// its element, as both have the same wire representation
func ValueEqual(v1, v2 Value) bool {
	v1, v2 = listOfSingle(v1), listOfSingle(v2)

	switch a := v1.(type) {
	case OctetString:
		b, ok := v2.(OctetString)
		return ok && bytes.Equal(a, b)

	case Other:
		b, ok := v2.(Other)
		return ok && a.T == b.T && bytes.Equal(a.Data, b.Data)

	case ListOf:
		b, ok := v2.(ListOf)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !ValueEqual(a[i], b[i]) {
				return false
			}
		}
		return true
	}

	switch v2.(type) {
	case OctetString, Other, ListOf:
		return false
	}

	return v1 == v2
}

// listOfSingle unwraps ListOf of exactly one element
func listOfSingle(v Value) Value {
	if l, ok := v.(ListOf); ok && len(l) == 1 {
		return l[0]
	}
	return v
}

// ValueDeepCopy returns a copy of the Value that shares no
// memory with the original
func ValueDeepCopy(v Value) Value {
	switch v := v.(type) {
	case OctetString:
		return OctetString(append([]byte(nil), v...))
	case Other:
		return Other{T: v.T, Data: append([]byte(nil), v.Data...)}
	case ListOf:
		l := make(ListOf, len(v))
		for i := range v {
			l[i] = ValueDeepCopy(v[i])
		}
		return l
	}
	return v
}

// EncodeValue returns the wire representation of a single Value,
// without the tag and length prefix
//
// The IPP length field is 16 bits wide, so values longer
// than 65535 bytes fail with ErrOversizedPayload
func EncodeValue(v Value) ([]byte, error) {
	if _, ok := v.(ListOf); ok {
		return nil, fmt.Errorf("%w: ListOf must be encoded by attribute",
			ErrMalformedValue)
	}

	data, err := v.encode()
	if err != nil {
		return nil, err
	}

	if len(data) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %s value is %d bytes, limit is %d",
			ErrOversizedPayload, v.Tag(), len(data), math.MaxUint16)
	}

	return data, nil
}

// DecodeValue decodes a single Value from its wire representation.
// The tag alone selects the value type
func DecodeValue(tag Tag, data []byte) (Value, error) {
	return decodeValue(tag, data, DecoderOptions{})
}

// decodeValue does the actual work of DecodeValue
func decodeValue(tag Tag, data []byte, opt DecoderOptions) (Value, error) {
	switch tag {
	case TagInteger, TagEnum:
		if len(data) != 4 {
			return nil, malformed(tag, "value must be 4 bytes, got %d", len(data))
		}
		i := int32(binary.BigEndian.Uint32(data))
		if tag == TagEnum {
			return Enum(i), nil
		}
		return Integer(i), nil

	case TagBoolean:
		if len(data) != 1 {
			return nil, malformed(tag, "value must be 1 byte, got %d", len(data))
		}
		if data[0] > 1 && !opt.EnableWorkarounds {
			return nil, malformed(tag, "value must be 0 or 1, got %d", data[0])
		}
		return Boolean(data[0] != 0), nil

	case TagRange:
		if len(data) != 8 {
			return nil, malformed(tag, "value must be 8 bytes, got %d", len(data))
		}
		return Range{
			Lower: int32(binary.BigEndian.Uint32(data[0:4])),
			Upper: int32(binary.BigEndian.Uint32(data[4:8])),
		}, nil

	case TagResolution:
		if len(data) != 9 {
			return nil, malformed(tag, "value must be 9 bytes, got %d", len(data))
		}
		return Resolution{
			Xres:  int32(binary.BigEndian.Uint32(data[0:4])),
			Yres:  int32(binary.BigEndian.Uint32(data[4:8])),
			Units: Units(data[8]),
		}, nil

	case TagDateTime:
		var v DateTime
		if len(data) != len(v) {
			return nil, malformed(tag, "value must be %d bytes, got %d",
				len(v), len(data))
		}
		copy(v[:], data)
		return v, nil

	case TagOctetString:
		return OctetString(append([]byte(nil), data...)), nil

	case TagCharset, TagLanguage, TagURI, TagURIScheme, TagKeyword,
		TagMimeType, TagText, TagName:
		s, err := decodeUTF8(tag, data, opt)
		if err != nil {
			return nil, err
		}

		switch tag {
		case TagCharset:
			return Charset(s), nil
		case TagLanguage:
			return NaturalLanguage(s), nil
		case TagURI:
			return URI(s), nil
		case TagURIScheme:
			return URIScheme(s), nil
		case TagKeyword:
			return Keyword(s), nil
		case TagMimeType:
			return MimeMediaType(s), nil
		case TagText:
			return Text(s), nil
		}
		return Name(s), nil

	case TagTextLang, TagNameLang:
		lang, text, err := decodeWithLang(tag, data, opt)
		if err != nil {
			return nil, err
		}
		if tag == TagTextLang {
			return TextWithLang{Lang: lang, Text: text}, nil
		}
		return NameWithLang{Lang: lang, Name: text}, nil

	// Out-of-band values have no payload; whatever is there is ignored
	case TagUnsupportedValue:
		return Unsupported{}, nil
	case TagUnknown:
		return Unknown{}, nil
	case TagNoValue:
		return NoValue{}, nil
	}

	if tag.IsDelimiter() {
		return nil, fmt.Errorf("%w: %s used as value tag", ErrInvalidTag, tag)
	}

	if opt.RejectUnknownTags {
		return nil, fmt.Errorf("%w: %s", ErrUnknownValueTag, tag)
	}

	return Other{T: tag, Data: append([]byte(nil), data...)}, nil
}

// encodeWithLang encodes textWithLanguage/nameWithLanguage value
func encodeWithLang(lang, text string) ([]byte, error) {
	// Wire format
	//    2 bytes:  len(Lang)
	//    variable: Lang
	//    2 bytes:  len(Text)
	//    variable: Text
	if 4+len(lang)+len(text) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: language %d bytes + text %d bytes exceed %d",
			ErrOversizedPayload, len(lang), len(text), math.MaxUint16)
	}

	data := make([]byte, 0, 4+len(lang)+len(text))
	data = binary.BigEndian.AppendUint16(data, uint16(len(lang)))
	data = append(data, lang...)
	data = binary.BigEndian.AppendUint16(data, uint16(len(text)))
	data = append(data, text...)

	return data, nil
}

// decodeWithLang decodes textWithLanguage/nameWithLanguage value
func decodeWithLang(tag Tag, data []byte, opt DecoderOptions) (lang, text string, err error) {
	var langBytes, textBytes []byte

	langBytes, data, err = splitLengthPrefixed(tag, data, "language")
	if err == nil {
		textBytes, data, err = splitLengthPrefixed(tag, data, "text")
	}

	if err == nil && len(data) != 0 {
		err = malformed(tag, "extra %d bytes at the end of value", len(data))
	}

	if err == nil {
		lang, err = decodeUTF8(tag, langBytes, opt)
	}

	if err == nil {
		text, err = decodeUTF8(tag, textBytes, opt)
	}

	return
}

// splitLengthPrefixed splits 2-byte length-prefixed field off the data
func splitLengthPrefixed(tag Tag, data []byte, what string) (field, rest []byte, err error) {
	if len(data) < 2 {
		return nil, nil, malformed(tag, "truncated %s length", what)
	}

	l := int(binary.BigEndian.Uint16(data))
	data = data[2:]

	if len(data) < l {
		return nil, nil, malformed(tag, "truncated %s", what)
	}

	return data[:l], data[l:], nil
}

// decodeUTF8 converts value bytes into string, checking that
// bytes are valid UTF-8
func decodeUTF8(tag Tag, data []byte, opt DecoderOptions) (string, error) {
	if !utf8.Valid(data) {
		if !opt.EnableWorkarounds {
			return "", malformed(tag, "invalid UTF-8 string")
		}
		return strings.ToValidUTF8(string(data), "�"), nil
	}

	return string(data), nil
}

// encodeU32 encodes 32-bit integer in network byte order
func encodeU32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// malformed creates ErrMalformedValue error for the particular tag
func malformed(tag Tag, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedValue, tag,
		fmt.Sprintf(format, args...))
}
