/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Client tests
 */

package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenPrinting/ippcodec"
	"github.com/OpenPrinting/ippcodec/logger"
	"github.com/OpenPrinting/ippcodec/server"
)

func TestNormalizeURI(t *testing.T) {
	type testData struct {
		in      string // Input URI
		ippURI  string // Expected printer-uri
		httpURL string // Expected HTTP URL
		err     bool   // Error expected
	}

	tests := []testData{
		{"ipp://host/printers/x", "ipp://host:631/printers/x",
			"http://host:631/printers/x", false},
		{"ipps://host:8443/ipp/print", "ipps://host:8443/ipp/print",
			"https://host:8443/ipp/print", false},
		{"http://192.168.1.1:80/ipp", "ipp://192.168.1.1:80/ipp",
			"http://192.168.1.1:80/ipp", false},
		{"https://[fe80::1]/ipp", "ipps://[fe80::1]:631/ipp",
			"https://[fe80::1]:631/ipp", false},
		{"ftp://host/x", "", "", true},
		{"ipp:///x", "", "", true},
		{"ipp://host\x7f/", "", "", true},
	}

	for _, test := range tests {
		ippURI, httpURL, err := NormalizeURI(test.in)
		if test.err {
			assert.Error(t, err, test.in)
			continue
		}

		require.NoError(t, err, test.in)
		assert.Equal(t, test.ippURI, ippURI, test.in)
		assert.Equal(t, test.httpURL, httpURL, test.in)
	}
}

func TestRequestID(t *testing.T) {
	c, err := New("ipp://localhost/ipp/print", WithRequestID(10))
	require.NoError(t, err)

	assert.Equal(t, uint32(10), c.NextRequestID())
	assert.Equal(t, uint32(11), c.NextRequestID())

	c, err = New("ipp://localhost/ipp/print", WithRequestID(0xffffffff))
	require.NoError(t, err)

	assert.Equal(t, uint32(0xffffffff), c.NextRequestID())
	assert.Equal(t, uint32(1), c.NextRequestID())
}

func TestOperations(t *testing.T) {
	const uri = "ipp://host:631/ipp/print"

	type testData struct {
		op    Operation   // Operation
		code  ippcodec.Op // Expected operation code
		attrs []string    // Expected operation attributes, after the mandatory ones
		job   int         // Expected count of job attributes
	}

	jobAttrs := ippcodec.Attributes{
		ippcodec.MakeAttribute("copies", ippcodec.Integer(2)),
	}

	tests := []testData{
		{GetPrinterAttributes{}, ippcodec.OpGetPrinterAttributes, nil, 0},
		{GetPrinterAttributes{Attributes: []string{"all"}},
			ippcodec.OpGetPrinterAttributes,
			[]string{"requested-attributes"}, 0},
		{PrintJob{UserName: "user", JobName: "job",
			DocumentFormat: "application/pdf", JobAttributes: jobAttrs},
			ippcodec.OpPrintJob,
			[]string{"requesting-user-name", "job-name", "document-format"}, 1},
		{ValidateJob{DocumentFormat: "image/urf"}, ippcodec.OpValidateJob,
			[]string{"document-format"}, 0},
		{CreateJob{JobName: "job", JobAttributes: jobAttrs}, ippcodec.OpCreateJob,
			[]string{"job-name"}, 1},
		{SendDocument{JobID: 5, LastDocument: true}, ippcodec.OpSendDocument,
			[]string{"job-id", "last-document"}, 0},
		{CancelJob{JobID: 5, UserName: "user"}, ippcodec.OpCancelJob,
			[]string{"job-id", "requesting-user-name"}, 0},
		{GetJobAttributes{JobID: 5}, ippcodec.OpGetJobAttributes,
			[]string{"job-id"}, 0},
		{GetJobs{WhichJobs: "completed", MyJobs: true, UserName: "user", Limit: 3},
			ippcodec.OpGetJobs,
			[]string{"requesting-user-name", "limit", "which-jobs", "my-jobs"}, 0},
	}

	for _, test := range tests {
		msg := test.op.Message(uri)
		assert.Equal(t, test.code, msg.Op())

		attrs, ok := msg.Groups.Group(ippcodec.TagOperationGroup)
		require.True(t, ok)
		require.Len(t, attrs, 3+len(test.attrs), test.code.String())

		assert.Equal(t, ippcodec.MakeAttribute(ippcodec.AttrCharset,
			ippcodec.Charset("utf-8")), attrs[0])
		assert.Equal(t, ippcodec.MakeAttribute(ippcodec.AttrNaturalLanguage,
			ippcodec.NaturalLanguage("en")), attrs[1])
		assert.Equal(t, ippcodec.MakeAttribute(ippcodec.AttrPrinterURI,
			ippcodec.URI(uri)), attrs[2])

		for i, name := range test.attrs {
			assert.Equal(t, name, attrs[3+i].Name, test.code.String())
		}

		job, _ := msg.Groups.Group(ippcodec.TagJobGroup)
		assert.Len(t, job, test.job, test.code.String())

		// Every message must be encodable
		_, err := test.op.Message(uri).EncodeBytes()
		assert.NoError(t, err, test.code.String())
	}
}

// echoPrinter is the server side of the client tests
type echoPrinter struct {
	server.UnsupportedPrinter
	uri      string
	document string
}

func (p *echoPrinter) GetPrinterAttributes(ctx context.Context,
	rq *ippcodec.Message) (*ippcodec.Message, error) {

	attr, _ := rq.Get(ippcodec.TagOperationGroup, ippcodec.AttrPrinterURI)
	p.uri = attr.Value.String()

	rsp := server.NewResponse(rq)
	rsp.Add(ippcodec.TagPrinterGroup,
		ippcodec.MakeAttribute(ippcodec.AttrPrinterState,
			ippcodec.Enum(ippcodec.PrinterIdle)))
	return rsp, nil
}

func (p *echoPrinter) PrintJob(ctx context.Context,
	rq *ippcodec.Message) (*ippcodec.Message, error) {

	data, err := io.ReadAll(rq.Payload)
	if err != nil {
		return nil, err
	}
	p.document = string(data)

	rsp := server.NewResponse(rq)
	rsp.Add(ippcodec.TagJobGroup,
		ippcodec.MakeAttribute(ippcodec.AttrJobID, ippcodec.Integer(7)))
	return rsp, nil
}

func TestClientSend(t *testing.T) {
	p := &echoPrinter{}
	srv := httptest.NewServer(server.NewHandler(p))
	defer srv.Close()

	var log bytes.Buffer
	c, err := New(srv.URL+"/ipp/print",
		WithLogger(logger.NewWriterLogger(&log, logger.LogTraceIPP)))
	require.NoError(t, err)

	groups, err := c.Send(context.Background(), GetPrinterAttributes{})
	require.NoError(t, err)

	assert.Equal(t, c.URI(), p.uri)
	assert.True(t, strings.HasPrefix(p.uri, "ipp://"))

	attr, ok := groups.Get(ippcodec.TagPrinterGroup, ippcodec.AttrPrinterState)
	require.True(t, ok)
	assert.Equal(t, ippcodec.Enum(ippcodec.PrinterIdle), attr.Value)

	assert.Contains(t, log.String(), "OPERATION Get-Printer-Attributes")
	assert.Contains(t, log.String(), "STATUS successful-ok")

	groups, err = c.Send(context.Background(), PrintJob{
		Payload: strings.NewReader("hello, printer"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello, printer", p.document)

	attr, ok = groups.Get(ippcodec.TagJobGroup, ippcodec.AttrJobID)
	require.True(t, ok)
	assert.Equal(t, ippcodec.Integer(7), attr.Value)
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(server.NewHandler(&echoPrinter{}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), CancelJob{JobID: 1})

	var serr *ippcodec.StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, ippcodec.StatusErrorOperationNotSupported, serr.Status)
}

func TestClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), GetPrinterAttributes{})

	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
}

func TestClientDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", ippcodec.ContentType)
			w.Write([]byte{1, 1, 0, 0})
		}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Send(context.Background(), GetPrinterAttributes{})

	var derr *ippcodec.DecodeError
	assert.True(t, errors.As(err, &derr))
}

func TestClientEncodeError(t *testing.T) {
	c, err := New("ipp://localhost/")
	require.NoError(t, err)

	msg := ippcodec.NewRequest(ippcodec.DefaultVersion,
		ippcodec.OpGetJobs, 1)
	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute("", ippcodec.Integer(1)))

	_, err = c.SendRaw(context.Background(), msg)
	assert.ErrorIs(t, err, ippcodec.ErrEmptyName)
}
