/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * DNS-SD TXT record tests
 */

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenPrinting/ippcodec"
)

func TestIppService(t *testing.T) {
	attrs := ippcodec.Attributes{
		ippcodec.MakeAttribute("printer-uri-supported",
			ippcodec.URI("ipp://localhost:631/ipp/print")),
		ippcodec.MakeAttribute("printer-dns-sd-name", ippcodec.Name("")),
		ippcodec.MakeAttribute("printer-info", ippcodec.Text("Office printer")),
		ippcodec.MakeAttribute("printer-make-and-model",
			ippcodec.TextWithLang{Lang: "en", Text: "Acme Laser 100"}),
		ippcodec.MakeAttribute("printer-location", ippcodec.Text("Room 101")),
		ippcodec.MakeAttribute("printer-uuid",
			ippcodec.URI("urn:uuid:8A7C6F1E-8E66-4A8C-9C30-6C5C0D6A1B2F")),
		ippcodec.MakeAttributeList("printer-kind",
			ippcodec.Keyword("document"), ippcodec.Keyword("photo")),
		ippcodec.MakeAttribute("color-supported", ippcodec.Boolean(true)),
		ippcodec.MakeAttributeList("sides-supported",
			ippcodec.Keyword("one-sided"), ippcodec.Keyword("two-sided-long-edge")),
		ippcodec.MakeAttributeList("document-format-supported",
			ippcodec.MimeMediaType("application/pdf"),
			ippcodec.MimeMediaType("image/urf")),
		ippcodec.MakeAttribute("printer-info", ippcodec.Text("duplicate, ignored")),
	}

	name, info := IppService(attrs, 8631)

	assert.Equal(t, "Office printer", name)
	assert.Equal(t, "_ipp._tcp", info.Type)
	assert.Equal(t, 8631, info.Port)

	expected := DnsSdTxtRecord{
		{"air", "none"},
		{"rp", "ipp/print"},
		{"kind", "document,photo"},
		{"UUID", "8a7c6f1e-8e66-4a8c-9c30-6c5c0d6a1b2f"},
		{"Color", "T"},
		{"Duplex", "T"},
		{"note", "Room 101"},
		{"ty", "Acme Laser 100"},
		{"product", "(Acme Laser 100)"},
		{"pdl", "application/pdf,image/urf"},
		{"txtvers", "1"},
	}

	assert.Equal(t, expected, info.Txt)
}

func TestIppServiceMinimal(t *testing.T) {
	attrs := ippcodec.Attributes{
		ippcodec.MakeAttribute("printer-name", ippcodec.Name("lp")),
		ippcodec.MakeAttribute("printer-uuid", ippcodec.Text("garbage")),
		ippcodec.MakeAttribute("color-supported", ippcodec.Keyword("yes")),
		ippcodec.MakeAttribute("sides-supported", ippcodec.Keyword("one-sided")),
	}

	name, info := IppService(attrs, 631)
	assert.Equal(t, "lp", name)

	expected := DnsSdTxtRecord{
		{"air", "none"},
		{"rp", "ipp/print"},
		{"Duplex", "F"},
		{"note", ""},
		{"txtvers", "1"},
	}

	assert.Equal(t, expected, info.Txt)
}

func TestDnsSdTxtRecord(t *testing.T) {
	var txt DnsSdTxtRecord

	txt.Add("txtvers", "1")
	assert.False(t, txt.IfNotEmpty("note", ""))
	assert.True(t, txt.IfNotEmpty("ty", "Printer"))

	v, ok := txt.Get("ty")
	assert.True(t, ok)
	assert.Equal(t, "Printer", v)

	_, ok = txt.Get("note")
	assert.False(t, ok)

	// Exported in reverse order
	assert.Equal(t, [][]byte{[]byte("ty=Printer"), []byte("txtvers=1")},
		txt.export())
}

func TestDummyPrinterTxt(t *testing.T) {
	desc := DefaultPrinterDescription()
	desc.Duplex = true

	p := NewDummyPrinter(desc, testPrinterURI, t.TempDir(), nil, nil)

	var attrs ippcodec.Attributes
	for _, name := range printerAttributes {
		attrs.Add(p.attribute(name))
	}

	name, info := IppService(attrs, 631)
	assert.Equal(t, desc.Info, name)

	uuid, _ := info.Txt.Get("UUID")
	assert.Equal(t, p.UUID().String(), uuid)

	duplex, _ := info.Txt.Get("Duplex")
	assert.Equal(t, "T", duplex)

	color, _ := info.Txt.Get("Color")
	assert.Equal(t, "F", color)

	pdl, _ := info.Txt.Get("pdl")
	assert.Equal(t, "image/pwg-raster,image/jpeg", pdl)
}

// TestNewIppAttrs tests newIppAttrs function
func TestNewIppAttrs(t *testing.T) {
	type testData struct {
		in  ippcodec.Attributes // Input attributes
		out ippAttrs            // Resulting map
	}

	model := ippcodec.MakeAttribute("printer-make-and-model",
		ippcodec.Text("test printer"))
	certified := ippcodec.MakeAttribute("mopria-certified",
		ippcodec.Text("1.3"))

	tests := []testData{
		{
			// Normal data
			in: ippcodec.Attributes{certified, model},
			out: ippAttrs{
				"mopria-certified":       certified,
				"printer-make-and-model": model,
			},
		},

		{
			// Duplicated attribute. First occurrence wins
			in: ippcodec.Attributes{certified, model,
				ippcodec.MakeAttribute("printer-make-and-model",
					ippcodec.Text("duplicate"))},
			out: ippAttrs{
				"mopria-certified":       certified,
				"printer-make-and-model": model,
			},
		},

		{
			// Empty list
			in:  nil,
			out: ippAttrs{},
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.out, newIppAttrs(test.in))
	}
}
