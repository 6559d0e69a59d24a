/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP over HTTP request handler
 */

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/OpenPrinting/ippcodec"
	"github.com/OpenPrinting/ippcodec/logger"
)

// Handler serves IPP requests over HTTP, dispatching them
// to the Printer. It implements http.Handler interface
type Handler struct {
	printer Printer        // Served printer
	log     *logger.Logger // Optional logger
	metrics *Metrics       // Optional metrics
	session int32          // Session counter, for logging
}

// Option configures the Handler
type Option func(*Handler)

// WithLogger sets logger
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		h.log = l
	}
}

// WithMetrics sets metrics
func WithMetrics(m *Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler creates a new Handler for the Printer
func NewHandler(p Printer, opts ...Option) *Handler {
	h := &Handler{printer: p}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP handles HTTP request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session := atomic.AddInt32(&h.session, 1)
	start := time.Now()

	h.log.Begin().
		HTTPRequest(logger.LogTraceHTTP, '>', r).
		Commit()

	// Perform sanity checking
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.httpError(session, w, http.StatusMethodNotAllowed,
			"%s not allowed", r.Method)
		return
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != ippcodec.ContentType {
		h.httpError(session, w, http.StatusUnsupportedMediaType,
			"Content-Type must be %s", ippcodec.ContentType)
		return
	}

	// Decode the request
	rq, err := ippcodec.Decode(r.Body)
	if err != nil {
		h.metrics.recordDecodeError()
		h.log.Error('!', "IPP[%d]: %s", session, err)

		rsp := ippcodec.NewResponse(ippcodec.DefaultVersion,
			ippcodec.StatusErrorBadRequest, 0)
		h.send(session, w, rsp)
		return
	}

	h.metrics.recordRequest(rq.Op())
	h.log.Begin().
		IppRequest(logger.LogTraceIPP, '>', rq).
		Commit()

	payload := &countingReader{r: rq.Payload}
	rq.Payload = payload

	rsp := h.dispatch(r.Context(), session, rq)

	h.metrics.recordPayload("in", payload.n)
	h.metrics.recordResponse(rq.Op(), rsp.Status(), time.Since(start))

	// Document data not consumed by the printer is drained,
	// so the connection can be reused
	io.Copy(io.Discard, rq.Payload)

	h.send(session, w, rsp)
}

// dispatch calls the Printer method for the request operation
// and completes the response
func (h *Handler) dispatch(ctx context.Context, session int32,
	rq *ippcodec.Message) *ippcodec.Message {

	var rsp *ippcodec.Message
	var err error

	switch {
	case rq.Version.Major() != 1 && rq.Version.Major() != 2:
		err = &ippcodec.StatusError{
			Status: ippcodec.StatusErrorVersionNotSupported,
		}

	case !h.hasMandatoryAttrs(rq):
		err = &ippcodec.StatusError{Status: ippcodec.StatusErrorBadRequest}

	default:
		method := h.method(rq.Op())
		if method == nil {
			err = ErrOperationNotSupported
		} else {
			rsp, err = method(ctx, rq)
		}
	}

	if err != nil {
		var serr *ippcodec.StatusError
		status := ippcodec.StatusErrorInternal
		if errors.As(err, &serr) {
			status = serr.Status
		} else {
			h.log.Error('!', "IPP[%d]: %s: %s", session, rq.Op(), err)
		}

		rsp = ippcodec.NewResponse(rq.Version, status, rq.RequestID)
	}

	if rsp == nil {
		rsp = NewResponse(rq)
	}

	rsp.Version = rq.Version
	rsp.RequestID = rq.RequestID
	addOperationAttrs(rsp)

	return rsp
}

// method returns Printer method for the operation, nil if
// operation is not known
func (h *Handler) method(op ippcodec.Op) func(context.Context,
	*ippcodec.Message) (*ippcodec.Message, error) {

	switch op {
	case ippcodec.OpPrintJob:
		return h.printer.PrintJob
	case ippcodec.OpValidateJob:
		return h.printer.ValidateJob
	case ippcodec.OpCreateJob:
		return h.printer.CreateJob
	case ippcodec.OpSendDocument:
		return h.printer.SendDocument
	case ippcodec.OpCancelJob:
		return h.printer.CancelJob
	case ippcodec.OpGetJobAttributes:
		return h.printer.GetJobAttributes
	case ippcodec.OpGetJobs:
		return h.printer.GetJobs
	case ippcodec.OpGetPrinterAttributes:
		return h.printer.GetPrinterAttributes
	}

	return nil
}

// hasMandatoryAttrs checks that request starts with the
// attributes-charset and attributes-natural-language
// operation attributes, as RFC 8011, 4.1.4 requires
func (h *Handler) hasMandatoryAttrs(rq *ippcodec.Message) bool {
	attrs, _ := rq.Groups.Group(ippcodec.TagOperationGroup)
	return len(attrs) >= 2 &&
		attrs[0].Name == ippcodec.AttrCharset &&
		attrs[1].Name == ippcodec.AttrNaturalLanguage
}

// send writes IPP response
func (h *Handler) send(session int32, w http.ResponseWriter,
	rsp *ippcodec.Message) {

	h.log.Begin().
		IppResponse(logger.LogTraceIPP, '<', rsp).
		Commit()

	// Attributes are encoded in memory, so encode errors can
	// still be reported as HTTP errors; payload is streamed
	payload := rsp.Payload
	rsp.Payload = nil

	data, err := rsp.EncodeBytes()
	if err != nil {
		h.log.Error('!', "IPP[%d]: %s", session, err)
		h.httpError(session, w, http.StatusInternalServerError,
			"%s", err)
		return
	}

	w.Header().Set("Content-Type", ippcodec.ContentType)
	httpNoCache(w)
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(data)
	if err == nil && payload != nil {
		var n int64
		n, err = io.Copy(w, payload)
		h.metrics.recordPayload("out", n)
	}

	if err != nil {
		h.log.Error('!', "IPP[%d]: %s", session, err)
	}
}

// httpError rejects request with HTTP error
func (h *Handler) httpError(session int32, w http.ResponseWriter,
	status int, format string, args ...interface{}) {

	msg := fmt.Sprintf(format, args...)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	httpNoCache(w)
	w.WriteHeader(status)
	w.Write([]byte(msg + "\n"))

	h.log.Begin().
		Error('!', "HTTP[%d]: %d %s", session, status, http.StatusText(status)).
		Error('!', "HTTP[%d]: %s", session, msg).
		Commit()
}

// httpNoCache sets response headers to disable caching
func httpNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// addOperationAttrs makes sure response starts with the
// attributes-charset and attributes-natural-language
// operation attributes. The operation group is moved
// to the front
func addOperationAttrs(rsp *ippcodec.Message) {
	attrs, _ := rsp.Groups.Group(ippcodec.TagOperationGroup)

	var head ippcodec.Attributes
	if _, ok := attrs.Get(ippcodec.AttrCharset); !ok {
		head.Add(ippcodec.MakeAttribute(ippcodec.AttrCharset,
			ippcodec.Charset("utf-8")))
	}
	if _, ok := attrs.Get(ippcodec.AttrNaturalLanguage); !ok {
		head.Add(ippcodec.MakeAttribute(ippcodec.AttrNaturalLanguage,
			ippcodec.NaturalLanguage("en")))
	}

	groups := ippcodec.Groups{{
		Tag:   ippcodec.TagOperationGroup,
		Attrs: append(head, attrs...),
	}}

	for _, grp := range rsp.Groups {
		if grp.Tag != ippcodec.TagOperationGroup {
			groups = append(groups, grp)
		}
	}

	rsp.Groups = groups
}

// countingReader counts bytes read through it
type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
