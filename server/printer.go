/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer interface
 */

package server

import (
	"context"

	"github.com/OpenPrinting/ippcodec"
)

// Printer is implemented by IPP printers served by Handler
//
// Each method receives the decoded request; its Payload streams
// the document data, if any. The method returns the response
// message, which Handler completes: it sets the version and
// request ID and adds the mandatory operation attributes
//
// Returning *ippcodec.StatusError sends an empty response with
// that status. Other errors become server-error-internal-error
type Printer interface {
	PrintJob(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
	ValidateJob(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
	CreateJob(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
	SendDocument(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
	CancelJob(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
	GetJobAttributes(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
	GetJobs(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
	GetPrinterAttributes(ctx context.Context, rq *ippcodec.Message) (*ippcodec.Message, error)
}

// ErrOperationNotSupported is returned by UnsupportedPrinter
var ErrOperationNotSupported = &ippcodec.StatusError{
	Status: ippcodec.StatusErrorOperationNotSupported,
}

// UnsupportedPrinter implements Printer, answering each operation
// with server-error-operation-not-supported. Embed it to implement
// only some of the operations
type UnsupportedPrinter struct{}

// PrintJob implements Printer interface
func (UnsupportedPrinter) PrintJob(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// ValidateJob implements Printer interface
func (UnsupportedPrinter) ValidateJob(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// CreateJob implements Printer interface
func (UnsupportedPrinter) CreateJob(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// SendDocument implements Printer interface
func (UnsupportedPrinter) SendDocument(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// CancelJob implements Printer interface
func (UnsupportedPrinter) CancelJob(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// GetJobAttributes implements Printer interface
func (UnsupportedPrinter) GetJobAttributes(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// GetJobs implements Printer interface
func (UnsupportedPrinter) GetJobs(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// GetPrinterAttributes implements Printer interface
func (UnsupportedPrinter) GetPrinterAttributes(context.Context, *ippcodec.Message) (*ippcodec.Message, error) {
	return nil, ErrOperationNotSupported
}

// NewResponse creates a successful response to the request
func NewResponse(rq *ippcodec.Message) *ippcodec.Message {
	return ippcodec.NewResponse(rq.Version, ippcodec.StatusOk, rq.RequestID)
}

// RequestedAttributes returns names listed in the requested-attributes
// operation attribute of the request. It returns nil, if request
// doesn't have this attribute
//
// Values other than keywords make the request invalid, and
// *ippcodec.StatusError with client-error-bad-request is returned
func RequestedAttributes(rq *ippcodec.Message) ([]string, error) {
	attr, ok := rq.Get(ippcodec.TagOperationGroup,
		ippcodec.AttrRequestedAttributes)
	if !ok {
		return nil, nil
	}

	var names []string
	for _, v := range attr.Values() {
		kw, ok := v.(ippcodec.Keyword)
		if !ok {
			return nil, &ippcodec.StatusError{
				Status: ippcodec.StatusErrorBadRequest,
			}
		}
		names = append(names, string(kw))
	}

	return names, nil
}
