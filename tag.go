/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP Tags
 */

package ippcodec

import (
	"fmt"
)

// Tag represents a one-byte tag used in the binary representation
// of an IPP message. Tags below 0x10 are delimiters, the rest are
// value tags (RFC 8010, 3.5)
type Tag uint8

// Tag values
const (
	// Delimiter tags
	TagZero                   Tag = 0x00 // Zero tag, never valid on the wire
	TagOperationGroup         Tag = 0x01 // Operation attributes
	TagJobGroup               Tag = 0x02 // Job attributes
	TagEnd                    Tag = 0x03 // End-of-attributes
	TagPrinterGroup           Tag = 0x04 // Printer attributes
	TagUnsupportedGroup       Tag = 0x05 // Unsupported attributes
	TagSubscriptionGroup      Tag = 0x06 // Subscription attributes
	TagEventNotificationGroup Tag = 0x07 // Event notification attributes
	TagResourceGroup          Tag = 0x08 // Resource attributes
	TagDocumentGroup          Tag = 0x09 // Document attributes
	TagSystemGroup            Tag = 0x0a // System attributes

	// Out-of-band value tags
	TagUnsupportedValue Tag = 0x10 // unsupported
	TagDefault          Tag = 0x11 // default
	TagUnknown          Tag = 0x12 // unknown
	TagNoValue          Tag = 0x13 // no-value
	TagNotSettable      Tag = 0x15 // not-settable
	TagDeleteAttr       Tag = 0x16 // delete-attribute
	TagAdminDefine      Tag = 0x17 // admin-define

	// Value tags
	TagInteger         Tag = 0x21 // integer
	TagBoolean         Tag = 0x22 // boolean
	TagEnum            Tag = 0x23 // enum
	TagOctetString     Tag = 0x30 // octetString
	TagDateTime        Tag = 0x31 // dateTime
	TagResolution      Tag = 0x32 // resolution
	TagRange           Tag = 0x33 // rangeOfInteger
	TagBeginCollection Tag = 0x34 // begCollection
	TagTextLang        Tag = 0x35 // textWithLanguage
	TagNameLang        Tag = 0x36 // nameWithLanguage
	TagEndCollection   Tag = 0x37 // endCollection
	TagText            Tag = 0x41 // textWithoutLanguage
	TagName            Tag = 0x42 // nameWithoutLanguage
	TagKeyword         Tag = 0x44 // keyword
	TagURI             Tag = 0x45 // uri
	TagURIScheme       Tag = 0x46 // uriScheme
	TagCharset         Tag = 0x47 // charset
	TagLanguage        Tag = 0x48 // naturalLanguage
	TagMimeType        Tag = 0x49 // mimeMediaType
	TagMemberName      Tag = 0x4a // memberAttrName
	TagExtension       Tag = 0x7f // extension
)

// IsDelimiter returns true for delimiter tags
func (tag Tag) IsDelimiter() bool {
	return tag < 0x10
}

// IsGroup returns true for tags that start a new group of attributes.
// Delimiter tags not known by name still count as groups, so messages
// that use them survive a decode/encode cycle
func (tag Tag) IsGroup() bool {
	return tag.IsDelimiter() && tag != TagZero && tag != TagEnd
}

// IsOutOfBand returns true for tags that carry no value
func (tag Tag) IsOutOfBand() bool {
	switch tag {
	case TagUnsupportedValue, TagUnknown, TagNoValue:
		return true
	}
	return false
}

// String returns a tag name, as defined by RFC 8010
func (tag Tag) String() string {
	if s := tagNames[tag]; s != "" {
		return s
	}

	return fmt.Sprintf("0x%2.2x", uint8(tag))
}

var tagNames = [256]string{
	TagZero:                   "zero",
	TagOperationGroup:         "operation-attributes-tag",
	TagJobGroup:               "job-attributes-tag",
	TagEnd:                    "end-of-attributes-tag",
	TagPrinterGroup:           "printer-attributes-tag",
	TagUnsupportedGroup:       "unsupported-attributes-tag",
	TagSubscriptionGroup:      "subscription-attributes-tag",
	TagEventNotificationGroup: "event-notification-attributes-tag",
	TagResourceGroup:          "resource-attributes-tag",
	TagDocumentGroup:          "document-attributes-tag",
	TagSystemGroup:            "system-attributes-tag",

	TagUnsupportedValue: "unsupported",
	TagDefault:          "default",
	TagUnknown:          "unknown",
	TagNoValue:          "no-value",
	TagNotSettable:      "not-settable",
	TagDeleteAttr:       "delete-attribute",
	TagAdminDefine:      "admin-define",

	TagInteger:         "integer",
	TagBoolean:         "boolean",
	TagEnum:            "enum",
	TagOctetString:     "octetString",
	TagDateTime:        "dateTime",
	TagResolution:      "resolution",
	TagRange:           "rangeOfInteger",
	TagBeginCollection: "collection",
	TagTextLang:        "textWithLanguage",
	TagNameLang:        "nameWithLanguage",
	TagEndCollection:   "endCollection",
	TagText:            "textWithoutLanguage",
	TagName:            "nameWithoutLanguage",
	TagKeyword:         "keyword",
	TagURI:             "uri",
	TagURIScheme:       "uriScheme",
	TagCharset:         "charset",
	TagLanguage:        "naturalLanguage",
	TagMimeType:        "mimeMediaType",
	TagMemberName:      "memberAttrName",
	TagExtension:       "extension",
}
