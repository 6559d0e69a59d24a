/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Dummy printer, served by "ipp-tool server"
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/OpenPrinting/ippcodec"
	"github.com/OpenPrinting/ippcodec/logger"
	"github.com/OpenPrinting/ippcodec/server"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// PrinterDescription is the YAML description of the dummy printer
type PrinterDescription struct {
	Name            string   `yaml:"name"`
	Info            string   `yaml:"info"`
	Location        string   `yaml:"location"`
	MakeAndModel    string   `yaml:"make-and-model"`
	StateMessage    string   `yaml:"state-message"`
	DocumentFormats []string `yaml:"document-formats"`
	Color           bool     `yaml:"color"`
	Duplex          bool     `yaml:"duplex"`
}

// DefaultPrinterDescription returns description used when
// no description file is configured
func DefaultPrinterDescription() PrinterDescription {
	return PrinterDescription{
		Name:            "ipp-tool",
		Info:            "IPP dummy printer",
		MakeAndModel:    "ipp-tool dummy printer",
		StateMessage:    "Ready to print",
		DocumentFormats: []string{"image/pwg-raster", "image/jpeg"},
	}
}

// LoadPrinterDescription loads printer description from the YAML
// file. Missing fields keep their default values
func LoadPrinterDescription(path string) (PrinterDescription, error) {
	desc := DefaultPrinterDescription()

	data, err := os.ReadFile(path)
	if err != nil {
		return desc, fmt.Errorf("printer description: %w", err)
	}

	err = yaml.Unmarshal(data, &desc)
	if err != nil {
		return desc, fmt.Errorf("printer description: %s: %w", path, err)
	}

	if len(desc.DocumentFormats) == 0 {
		return desc, fmt.Errorf("printer description: %s: no document-formats", path)
	}

	return desc, nil
}

// printerAttributes lists attributes returned by Get-Printer-Attributes,
// in order
var printerAttributes = []string{
	ippcodec.AttrPrinterURISupported,
	ippcodec.AttrURISecuritySupported,
	ippcodec.AttrURIAuthSupported,
	ippcodec.AttrPrinterName,
	ippcodec.AttrPrinterState,
	ippcodec.AttrPrinterStateReasons,
	ippcodec.AttrIppVersionsSupported,
	ippcodec.AttrOperationsSupported,
	ippcodec.AttrCharsetConfigured,
	ippcodec.AttrCharsetSupported,
	ippcodec.AttrLanguageConfigured,
	ippcodec.AttrLanguageSupported,
	ippcodec.AttrDocumentFormatDefault,
	ippcodec.AttrDocumentFormatSupported,
	ippcodec.AttrPrinterIsAcceptingJobs,
	ippcodec.AttrQueuedJobCount,
	ippcodec.AttrPdlOverrideSupported,
	ippcodec.AttrPrinterUpTime,
	ippcodec.AttrCompressionSupported,
	ippcodec.AttrPrinterStateMessage,
	ippcodec.AttrPrinterMakeAndModel,
	ippcodec.AttrFinishingsDefault,
	ippcodec.AttrFinishingsSupported,
	ippcodec.AttrPrinterInfo,
	ippcodec.AttrPrinterLocation,
	ippcodec.AttrPrinterUUID,
	attrColorSupported,
	attrSidesSupported,
}

// Attributes not used outside of the dummy printer
const (
	attrColorSupported = "color-supported"
	attrSidesSupported = "sides-supported"
)

// DummyPrinter implements server.Printer. It accepts jobs
// and stores them into the spool directory
type DummyPrinter struct {
	server.UnsupportedPrinter

	desc     PrinterDescription // Printer description
	uri      string             // Printer URI
	uuid     uuid.UUID          // printer-uuid
	spool    string             // Spool directory
	state    *PrinterState      // Persistent state
	log      *logger.Logger     // Printer log
	start    time.Time          // Start time, for printer-up-time
	printing atomic.Bool        // Job received since last state query
}

// NewDummyPrinter creates a new DummyPrinter
func NewDummyPrinter(desc PrinterDescription, uri, spool string,
	state *PrinterState, log *logger.Logger) *DummyPrinter {

	return &DummyPrinter{
		desc:  desc,
		uri:   uri,
		uuid:  uuid.NewSHA1(uuid.NameSpaceURL, []byte(uri)),
		spool: spool,
		state: state,
		log:   log,
		start: time.Now(),
	}
}

// UUID returns the printer UUID
func (p *DummyPrinter) UUID() uuid.UUID {
	return p.uuid
}

// GetPrinterAttributes implements server.Printer interface
func (p *DummyPrinter) GetPrinterAttributes(ctx context.Context,
	rq *ippcodec.Message) (*ippcodec.Message, error) {

	names, err := server.RequestedAttributes(rq)
	if err != nil {
		return nil, err
	}

	rsp := server.NewResponse(rq)
	for _, name := range p.selectAttributes(names) {
		rsp.Add(ippcodec.TagPrinterGroup, p.attribute(name))
	}

	return rsp, nil
}

// selectAttributes returns supported attributes out of the requested
// ones. Nothing requested or "all" means all of them
func (p *DummyPrinter) selectAttributes(requested []string) []string {
	if len(requested) == 0 {
		return printerAttributes
	}

	var names []string
	for _, name := range requested {
		switch {
		case name == "all" || name == "printer-description":
			return printerAttributes
		case p.supported(name):
			names = append(names, name)
		default:
			p.log.Debug(' ', "PRINTER: unsupported attribute %q", name)
		}
	}

	return names
}

// supported reports if attribute is known to the printer
func (p *DummyPrinter) supported(name string) bool {
	for _, n := range printerAttributes {
		if n == name {
			return true
		}
	}
	return false
}

// attribute returns printer attribute by name
func (p *DummyPrinter) attribute(name string) ippcodec.Attribute {
	var v ippcodec.Value

	switch name {
	case ippcodec.AttrPrinterURISupported:
		v = ippcodec.URI(p.uri)
	case ippcodec.AttrURISecuritySupported, ippcodec.AttrURIAuthSupported:
		v = ippcodec.Keyword("none")
	case ippcodec.AttrPrinterName:
		v = ippcodec.Name(p.desc.Name)
	case ippcodec.AttrPrinterState:
		state := ippcodec.PrinterIdle
		if p.printing.Swap(false) {
			state = ippcodec.PrinterProcessing
		}
		v = ippcodec.Enum(state)
	case ippcodec.AttrPrinterStateReasons:
		v = ippcodec.Keyword("none")
	case ippcodec.AttrIppVersionsSupported:
		v = ippcodec.ListOf{ippcodec.Keyword("1.0"), ippcodec.Keyword("1.1")}
	case ippcodec.AttrOperationsSupported:
		v = ippcodec.ListOf{
			ippcodec.Enum(ippcodec.OpPrintJob),
			ippcodec.Enum(ippcodec.OpValidateJob),
			ippcodec.Enum(ippcodec.OpGetPrinterAttributes),
		}
	case ippcodec.AttrCharsetConfigured, ippcodec.AttrCharsetSupported:
		v = ippcodec.Charset("utf-8")
	case ippcodec.AttrLanguageConfigured, ippcodec.AttrLanguageSupported:
		v = ippcodec.NaturalLanguage("en")
	case ippcodec.AttrDocumentFormatDefault:
		v = ippcodec.MimeMediaType(p.desc.DocumentFormats[0])
	case ippcodec.AttrDocumentFormatSupported:
		var formats ippcodec.ListOf
		for _, f := range p.desc.DocumentFormats {
			formats = append(formats, ippcodec.MimeMediaType(f))
		}
		v = formats
	case ippcodec.AttrPrinterIsAcceptingJobs:
		v = ippcodec.Boolean(true)
	case ippcodec.AttrQueuedJobCount:
		v = ippcodec.Integer(0)
	case ippcodec.AttrPdlOverrideSupported:
		v = ippcodec.Keyword("not-attempted")
	case ippcodec.AttrPrinterUpTime:
		v = ippcodec.Integer(time.Since(p.start) / time.Second)
	case ippcodec.AttrCompressionSupported:
		v = ippcodec.Keyword("none")
	case ippcodec.AttrPrinterStateMessage:
		v = ippcodec.Text(p.desc.StateMessage)
	case ippcodec.AttrPrinterMakeAndModel:
		v = ippcodec.Text(p.desc.MakeAndModel)
	case ippcodec.AttrFinishingsDefault, ippcodec.AttrFinishingsSupported:
		v = ippcodec.Enum(ippcodec.FinishingsNone)
	case ippcodec.AttrPrinterInfo:
		v = ippcodec.Text(p.desc.Info)
	case ippcodec.AttrPrinterLocation:
		v = ippcodec.Text(p.desc.Location)
	case ippcodec.AttrPrinterUUID:
		v = ippcodec.URI(p.uuid.URN())
	case attrColorSupported:
		v = ippcodec.Boolean(p.desc.Color)
	case attrSidesSupported:
		sides := ippcodec.ListOf{ippcodec.Keyword("one-sided")}
		if p.desc.Duplex {
			sides = append(sides,
				ippcodec.Keyword("two-sided-long-edge"),
				ippcodec.Keyword("two-sided-short-edge"))
		}
		v = sides
	}

	return ippcodec.MakeAttribute(name, v)
}

// ValidateJob implements server.Printer interface
func (p *DummyPrinter) ValidateJob(ctx context.Context,
	rq *ippcodec.Message) (*ippcodec.Message, error) {

	err := p.checkDocumentFormat(rq)
	if err != nil {
		return nil, err
	}

	return server.NewResponse(rq), nil
}

// PrintJob implements server.Printer interface
func (p *DummyPrinter) PrintJob(ctx context.Context,
	rq *ippcodec.Message) (*ippcodec.Message, error) {

	err := p.checkDocumentFormat(rq)
	if err != nil {
		return nil, err
	}

	id := p.state.NextJobID()
	path := filepath.Join(p.spool, fmt.Sprintf("job-%d.dat", id))

	n, err := p.spoolDocument(path, rq.Payload)
	if err != nil {
		return nil, err
	}

	p.log.Info(' ', "PRINTER: job %d: %d bytes saved to %s", id, n, path)
	p.printing.Store(true)

	rsp := server.NewResponse(rq)
	rsp.Add(ippcodec.TagJobGroup, ippcodec.MakeAttribute(ippcodec.AttrJobURI,
		ippcodec.URI(fmt.Sprintf("%s/jobs/%d", p.uri, id))))
	rsp.Add(ippcodec.TagJobGroup, ippcodec.MakeAttribute(ippcodec.AttrJobID,
		ippcodec.Integer(id)))
	rsp.Add(ippcodec.TagJobGroup, ippcodec.MakeAttribute(ippcodec.AttrJobUUID,
		ippcodec.URI(uuid.New().URN())))
	rsp.Add(ippcodec.TagJobGroup, ippcodec.MakeAttribute(ippcodec.AttrJobState,
		ippcodec.Enum(ippcodec.JobProcessing)))
	rsp.Add(ippcodec.TagJobGroup, ippcodec.MakeAttribute(ippcodec.AttrJobStateReasons,
		ippcodec.Keyword("completed-successfully")))

	return rsp, nil
}

// checkDocumentFormat checks document-format operation attribute,
// if present
func (p *DummyPrinter) checkDocumentFormat(rq *ippcodec.Message) error {
	attr, ok := rq.Get(ippcodec.TagOperationGroup, ippcodec.AttrDocumentFormat)
	if !ok {
		return nil
	}

	format, ok := attr.Value.(ippcodec.MimeMediaType)
	if !ok {
		return &ippcodec.StatusError{Status: ippcodec.StatusErrorBadRequest}
	}

	if format == "application/octet-stream" {
		return nil
	}

	for _, f := range p.desc.DocumentFormats {
		if f == string(format) {
			return nil
		}
	}

	return &ippcodec.StatusError{
		Status: ippcodec.StatusErrorDocumentFormatNotSupported,
	}
}

// spoolDocument saves document into the file
func (p *DummyPrinter) spoolDocument(path string, payload io.Reader) (int64, error) {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return 0, err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, err
	}

	var n int64
	if payload != nil {
		n, err = io.Copy(file, payload)
	}

	err2 := file.Close()
	if err == nil {
		err = err2
	}

	if err != nil {
		os.Remove(path)
		return 0, err
	}

	return n, nil
}
