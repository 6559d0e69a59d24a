/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * DNS-SD TXT record from IPP printer attributes
 */

package main

import (
	"strings"

	"github.com/OpenPrinting/ippcodec"
	"github.com/google/uuid"
)

// DnsSdTxtItem represents a single TXT record item
type DnsSdTxtItem struct {
	Key, Value string // TXT entry: Key=Value
}

// DnsSdTxtRecord represents a TXT record
type DnsSdTxtRecord []DnsSdTxtItem

// Add adds item to DnsSdTxtRecord
func (txt *DnsSdTxtRecord) Add(key, value string) {
	*txt = append(*txt, DnsSdTxtItem{key, value})
}

// IfNotEmpty adds item to DnsSdTxtRecord if its value is not empty
//
// It returns true if item was actually added, false otherwise
func (txt *DnsSdTxtRecord) IfNotEmpty(key, value string) bool {
	if value != "" {
		txt.Add(key, value)
		return true
	}
	return false
}

// Get returns value of the item by key
func (txt DnsSdTxtRecord) Get(key string) (string, bool) {
	for _, item := range txt {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}

// export DnsSdTxtRecord into Avahi format
func (txt DnsSdTxtRecord) export() [][]byte {
	exported := make([][]byte, 0, len(txt))

	// Avahi publishes TXT record in reverse order,
	// so compensate it here
	for i := len(txt) - 1; i >= 0; i-- {
		item := txt[i]
		exported = append(exported, []byte(item.Key+"="+item.Value))
	}

	return exported
}

// DnsSdSvcInfo represents a DNS-SD service information
type DnsSdSvcInfo struct {
	Type string         // Service type, i.e. "_ipp._tcp"
	Port int            // TCP port
	Txt  DnsSdTxtRecord // TXT record
}

// ippAttrs represents a collection of IPP printer attributes,
// enrolled into a map for convenient access
type ippAttrs map[string]ippcodec.Attribute

// newIppAttrs creates ippAttrs from printer attributes
func newIppAttrs(attrs ippcodec.Attributes) ippAttrs {
	m := make(ippAttrs)

	// Note, we move from the end of list to the beginning, so
	// in a case of duplicated attributes, first occurrence wins
	for i := len(attrs) - 1; i >= 0; i-- {
		m[attrs[i].Name] = attrs[i]
	}

	return m
}

// IppService decodes printer attributes and builds DNS-SD
// service name and information for the IPP service
//
// This is where information comes from:
//
//	DNS-SD name: "printer-dns-sd-name" with fallback to
//	             "printer-info", "printer-make-and-model"
//	             and "printer-name"
//
//	TXT fields:
//	  air:              hardcoded as "none"
//	  rp:               path of the printer-uri-supported
//	  kind:             "printer-kind"
//	  URF:              "urf-supported"
//	  UUID:             "printer-uuid", without "urn:uuid:"
//	  Color:            "color-supported"
//	  Duplex:           search "sides-supported" for strings with
//	                    prefix "one" or "two"
//	  note:             "printer-location"
//	  ty:               "printer-make-and-model"
//	  product:          "printer-make-and-model", in round brackets
//	  pdl:              "document-format-supported"
//	  txtvers:          hardcoded as "1"
func IppService(attrs ippcodec.Attributes, port int) (dnssdName string, info DnsSdSvcInfo) {
	m := newIppAttrs(attrs)
	info = DnsSdSvcInfo{Type: "_ipp._tcp", Port: port}

	dnssdName = m.strSingle("printer-dns-sd-name", ippcodec.AttrPrinterInfo,
		ippcodec.AttrPrinterMakeAndModel, ippcodec.AttrPrinterName)

	info.Txt.Add("air", "none")
	info.Txt.Add("rp", m.getResourcePath())
	info.Txt.IfNotEmpty("kind", m.strJoined("printer-kind"))
	info.Txt.IfNotEmpty("URF", m.strJoined("urf-supported"))
	info.Txt.IfNotEmpty("UUID", m.getUUID())
	info.Txt.IfNotEmpty("Color", m.getBool("color-supported"))
	info.Txt.IfNotEmpty("Duplex", m.getDuplex())
	info.Txt.Add("note", m.strSingle(ippcodec.AttrPrinterLocation))
	info.Txt.IfNotEmpty("ty", m.strSingle(ippcodec.AttrPrinterMakeAndModel))
	info.Txt.IfNotEmpty("product", m.strBrackets(ippcodec.AttrPrinterMakeAndModel))
	info.Txt.IfNotEmpty("pdl", m.strJoined(ippcodec.AttrDocumentFormatSupported))
	info.Txt.Add("txtvers", "1")

	return
}

// getResourcePath returns path part of the printer URI, without
// leading slash, defaults to "ipp/print"
func (m ippAttrs) getResourcePath() string {
	uri := m.strSingle(ippcodec.AttrPrinterURISupported)
	if i := strings.Index(uri, "://"); i >= 0 {
		uri = uri[i+3:]
		if j := strings.IndexByte(uri, '/'); j >= 0 {
			if path := strings.Trim(uri[j:], "/"); path != "" {
				return path
			}
		}
	}

	return "ipp/print"
}

// getUUID returns normalized printer UUID, "" if missing
// or malformed
func (m ippAttrs) getUUID() string {
	u, err := uuid.Parse(m.strSingle(ippcodec.AttrPrinterUUID))
	if err != nil {
		return ""
	}
	return u.String()
}

// getDuplex returns "T" if printer supports two-sided
// printing, "F" if not and "" if it cant' tell
func (m ippAttrs) getDuplex() string {
	one, two := false, false
	for _, s := range m.getStrings(attrSidesSupported) {
		switch {
		case strings.HasPrefix(s, "one"):
			one = true
		case strings.HasPrefix(s, "two"):
			two = true
		}
	}

	if two {
		return "T"
	}

	if one {
		return "F"
	}

	return ""
}

// Get a single-string attribute
func (m ippAttrs) strSingle(names ...string) string {
	strs := m.getStrings(names...)
	if strs == nil {
		return ""
	}

	return strs[0]
}

// Get a multi-string attribute, represented as a comma-separated list
func (m ippAttrs) strJoined(names ...string) string {
	return strings.Join(m.getStrings(names...), ",")
}

// Get a single string, and put it into brackets
func (m ippAttrs) strBrackets(names ...string) string {
	s := m.strSingle(names...)
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// Get attribute's []string value by attribute name
// Multiple names may be specified, for fallback purposes.
// Only non-empty string-valued attributes are taken
func (m ippAttrs) getStrings(names ...string) []string {
	for _, name := range names {
		attr, ok := m[name]
		if !ok {
			continue
		}

		var strs []string
		for _, v := range attr.Values() {
			if s, ok := ippString(v); ok {
				strs = append(strs, s)
			}
		}

		if len(strs) != 0 && strs[0] != "" {
			return strs
		}
	}

	return nil
}

// Get boolean attribute. Returns "F" or "T" if attribute is found,
// empty string otherwise.
// Multiple names may be specified, for fallback purposes
func (m ippAttrs) getBool(names ...string) string {
	for _, name := range names {
		if attr, ok := m[name]; ok {
			if b, ok := attr.Value.(ippcodec.Boolean); ok {
				if b {
					return "T"
				}
				return "F"
			}
		}
	}

	return ""
}

// ippString returns value of string-like IPP value
func ippString(v ippcodec.Value) (string, bool) {
	switch v := v.(type) {
	case ippcodec.Text:
		return string(v), true
	case ippcodec.Name:
		return string(v), true
	case ippcodec.Keyword:
		return string(v), true
	case ippcodec.URI:
		return string(v), true
	case ippcodec.MimeMediaType:
		return string(v), true
	case ippcodec.TextWithLang:
		return v.Text, true
	case ippcodec.NameWithLang:
		return v.Name, true
	}

	return "", false
}
