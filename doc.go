/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Package documentation
 */

/*
Package ippcodec implements the IPP binary wire format, as
defined by RFC 8010.

A Message consists of the fixed Header (version, operation
or status code, request ID), the attribute groups and an
optional document payload that follows the attributes.
Each attribute has a name and a Value; attributes with more
than one value carry ListOf.

Building and sending a request:

	m := ippcodec.NewRequest(ippcodec.DefaultVersion,
		ippcodec.OpGetPrinterAttributes, 1)

	m.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute("attributes-charset",
			ippcodec.Charset("utf-8")))
	m.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute("attributes-natural-language",
			ippcodec.NaturalLanguage("en")))
	m.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute("printer-uri",
			ippcodec.URI("ipp://192.168.0.1:631/ipp/print")))
	m.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttributeList("requested-attributes",
			ippcodec.Keyword("printer-name"),
			ippcodec.Keyword("printer-state")))

	request, err := m.EncodeBytes()
	if err != nil {
		panic(err)
	}

	resp, err := http.Post("http://192.168.0.1:631/ipp/print",
		ippcodec.ContentType, bytes.NewBuffer(request))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

Decoding the response:

	rsp, err := ippcodec.Decode(resp.Body)
	if err != nil {
		panic(err)
	}

	if err = rsp.Check(); err != nil {
		panic(err)
	}

	rsp.Print(os.Stdout, false)

Decoding never returns a partially decoded message. Errors
wrap the sentinel values of this package (ErrMalformedValue,
ErrValueOutsideGroup and so on), so use errors.Is to
classify them.
*/
package ippcodec
