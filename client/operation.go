/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP operations
 */

package client

import (
	"io"

	"github.com/OpenPrinting/ippcodec"
)

// Operation builds IPP request message for the printer URI
//
// Client fills RequestID of the returned message
type Operation interface {
	Message(uri string) *ippcodec.Message
}

// newRequest creates request message with the mandatory
// operation attributes: attributes-charset,
// attributes-natural-language and printer-uri
func newRequest(op ippcodec.Op, uri string) *ippcodec.Message {
	msg := ippcodec.NewRequest(ippcodec.DefaultVersion, op, 0)

	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrCharset,
			ippcodec.Charset("utf-8")))
	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrNaturalLanguage,
			ippcodec.NaturalLanguage("en")))
	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrPrinterURI,
			ippcodec.URI(uri)))

	return msg
}

// addOperationName adds name-valued operation attribute,
// if value is not empty
func addOperationName(msg *ippcodec.Message, name, value string) {
	if value != "" {
		msg.Add(ippcodec.TagOperationGroup,
			ippcodec.MakeAttribute(name, ippcodec.Name(value)))
	}
}

// addDocumentFormat adds document-format operation attribute,
// if format is not empty
func addDocumentFormat(msg *ippcodec.Message, format string) {
	if format != "" {
		msg.Add(ippcodec.TagOperationGroup,
			ippcodec.MakeAttribute(ippcodec.AttrDocumentFormat,
				ippcodec.MimeMediaType(format)))
	}
}

// addRequestedAttributes adds requested-attributes operation
// attribute, if list is not empty
func addRequestedAttributes(msg *ippcodec.Message, names []string) {
	if len(names) == 0 {
		return
	}

	values := make([]ippcodec.Value, len(names))
	for i, name := range names {
		values[i] = ippcodec.Keyword(name)
	}

	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttributeList(ippcodec.AttrRequestedAttributes,
			values...))
}

// addJobAttributes adds attributes to the job group
func addJobAttributes(msg *ippcodec.Message, attrs ippcodec.Attributes) {
	for _, attr := range attrs {
		msg.Add(ippcodec.TagJobGroup, attr)
	}
}

// GetPrinterAttributes is the Get-Printer-Attributes operation
type GetPrinterAttributes struct {
	Attributes []string // Requested attributes, all if empty
}

// Message implements Operation interface
func (op GetPrinterAttributes) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpGetPrinterAttributes, uri)
	addRequestedAttributes(msg, op.Attributes)
	return msg
}

// PrintJob is the Print-Job operation
type PrintJob struct {
	Payload        io.Reader           // Document data
	UserName       string              // requesting-user-name
	JobName        string              // job-name
	DocumentFormat string              // document-format
	JobAttributes  ippcodec.Attributes // Job template attributes
}

// Message implements Operation interface
func (op PrintJob) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpPrintJob, uri)
	addOperationName(msg, ippcodec.AttrRequestingUserName, op.UserName)
	addOperationName(msg, ippcodec.AttrJobName, op.JobName)
	addDocumentFormat(msg, op.DocumentFormat)
	addJobAttributes(msg, op.JobAttributes)
	msg.Payload = op.Payload
	return msg
}

// ValidateJob is the Validate-Job operation
type ValidateJob struct {
	UserName       string              // requesting-user-name
	JobName        string              // job-name
	DocumentFormat string              // document-format
	JobAttributes  ippcodec.Attributes // Job template attributes
}

// Message implements Operation interface
func (op ValidateJob) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpValidateJob, uri)
	addOperationName(msg, ippcodec.AttrRequestingUserName, op.UserName)
	addOperationName(msg, ippcodec.AttrJobName, op.JobName)
	addDocumentFormat(msg, op.DocumentFormat)
	addJobAttributes(msg, op.JobAttributes)
	return msg
}

// CreateJob is the Create-Job operation
type CreateJob struct {
	UserName      string              // requesting-user-name
	JobName       string              // job-name
	JobAttributes ippcodec.Attributes // Job template attributes
}

// Message implements Operation interface
func (op CreateJob) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpCreateJob, uri)
	addOperationName(msg, ippcodec.AttrRequestingUserName, op.UserName)
	addOperationName(msg, ippcodec.AttrJobName, op.JobName)
	addJobAttributes(msg, op.JobAttributes)
	return msg
}

// SendDocument is the Send-Document operation
type SendDocument struct {
	JobID          int       // Target job
	LastDocument   bool      // Last document of the job
	Payload        io.Reader // Document data
	UserName       string    // requesting-user-name
	DocumentFormat string    // document-format
}

// Message implements Operation interface
func (op SendDocument) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpSendDocument, uri)
	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrJobID,
			ippcodec.Integer(op.JobID)))
	addOperationName(msg, ippcodec.AttrRequestingUserName, op.UserName)
	addDocumentFormat(msg, op.DocumentFormat)
	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrLastDocument,
			ippcodec.Boolean(op.LastDocument)))
	msg.Payload = op.Payload
	return msg
}

// CancelJob is the Cancel-Job operation
type CancelJob struct {
	JobID    int    // Job to cancel
	UserName string // requesting-user-name
}

// Message implements Operation interface
func (op CancelJob) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpCancelJob, uri)
	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrJobID,
			ippcodec.Integer(op.JobID)))
	addOperationName(msg, ippcodec.AttrRequestingUserName, op.UserName)
	return msg
}

// GetJobAttributes is the Get-Job-Attributes operation
type GetJobAttributes struct {
	JobID      int      // Job to query
	Attributes []string // Requested attributes, all if empty
}

// Message implements Operation interface
func (op GetJobAttributes) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpGetJobAttributes, uri)
	msg.Add(ippcodec.TagOperationGroup,
		ippcodec.MakeAttribute(ippcodec.AttrJobID,
			ippcodec.Integer(op.JobID)))
	addRequestedAttributes(msg, op.Attributes)
	return msg
}

// GetJobs is the Get-Jobs operation
type GetJobs struct {
	WhichJobs  string   // "completed" or "not-completed", if not empty
	MyJobs     bool     // Only jobs of UserName
	UserName   string   // requesting-user-name
	Limit      int      // Max number of jobs, if not zero
	Attributes []string // Requested attributes
}

// Message implements Operation interface
func (op GetJobs) Message(uri string) *ippcodec.Message {
	msg := newRequest(ippcodec.OpGetJobs, uri)
	addOperationName(msg, ippcodec.AttrRequestingUserName, op.UserName)

	if op.Limit > 0 {
		msg.Add(ippcodec.TagOperationGroup,
			ippcodec.MakeAttribute(ippcodec.AttrLimit,
				ippcodec.Integer(op.Limit)))
	}

	addRequestedAttributes(msg, op.Attributes)

	if op.WhichJobs != "" {
		msg.Add(ippcodec.TagOperationGroup,
			ippcodec.MakeAttribute(ippcodec.AttrWhichJobs,
				ippcodec.Keyword(op.WhichJobs)))
	}

	if op.MyJobs {
		msg.Add(ippcodec.TagOperationGroup,
			ippcodec.MakeAttribute(ippcodec.AttrMyJobs,
				ippcodec.Boolean(true)))
	}

	return msg
}
