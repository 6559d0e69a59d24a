/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP formatter (pretty-printer)
 */

package ippcodec

import (
	"fmt"
	"io"
)

// formatter pretty-prints messages, one line per
// attribute
type formatter struct {
	out io.Writer // Output stream
}

// printMessage formats a request or response Message
//
// Output looks like this:
//
//	{
//	    REQUEST-ID 1
//	    VERSION 1.1
//	    OPERATION Get-Printer-Attributes
//
//	    GROUP operation-attributes-tag
//	    ATTR "attributes-charset" charset: utf-8
//	}
func (f formatter) printMessage(m *Message, request bool) {
	f.printf("{\n")
	f.printf(msgPrintIndent+"REQUEST-ID %d\n", m.RequestID)
	f.printf(msgPrintIndent+"VERSION %s\n", m.Version)

	if request {
		f.printf(msgPrintIndent+"OPERATION %s\n", Op(m.Code))
	} else {
		f.printf(msgPrintIndent+"STATUS %s\n", Status(m.Code))
	}

	for _, grp := range m.Groups {
		f.printf("\n"+msgPrintIndent+"GROUP %s\n", grp.Tag)
		for _, attr := range grp.Attrs {
			f.printAttribute(attr)
		}
	}

	f.printf("}\n")
}

// printAttribute formats a single attribute. The value tag is
// printed before the first value and then each time it changes
func (f formatter) printAttribute(attr Attribute) {
	f.printf(msgPrintIndent+"ATTR %q", attr.Name)

	tag := TagZero
	for _, val := range attr.Values() {
		if val.Tag() != tag {
			tag = val.Tag()
			f.printf(" %s:", tag)
		}
		f.printf(" %s", val)
	}

	f.printf("\n")
}

// printf writes formatted output. Errors are ignored, the
// formatter is a debugging aid
func (f formatter) printf(format string, args ...interface{}) {
	fmt.Fprintf(f.out, format, args...)
}
