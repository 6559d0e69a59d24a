/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP client
 */

package client

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/OpenPrinting/ippcodec"
	"github.com/OpenPrinting/ippcodec/logger"
)

// Client sends IPP requests to a single printer
type Client struct {
	uri   string         // Printer URI, ipp:// or ipps://
	url   string         // HTTP URL, http:// or https://
	http  *http.Client   // HTTP client
	log   *logger.Logger // Optional logger
	reqID uint32         // Last used request ID
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets http.Client to be used. By default,
// http.DefaultClient is used
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout sets timeout of a single request
func WithTimeout(timeout time.Duration) Option {
	return func(cl *Client) {
		c := *cl.http
		c.Timeout = timeout
		cl.http = &c
	}
}

// WithLogger sets logger. Requests and responses are logged
// at logger.LogTraceIPP, HTTP headers at logger.LogTraceHTTP
func WithLogger(l *logger.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// WithRequestID sets the first request ID to be used
func WithRequestID(id uint32) Option {
	return func(cl *Client) {
		cl.reqID = id - 1
	}
}

// New creates a new Client for the printer URI. Both ipp://
// and http:// forms are accepted, see NormalizeURI
func New(uri string, opts ...Option) (*Client, error) {
	ippURI, httpURL, err := NormalizeURI(uri)
	if err != nil {
		return nil, err
	}

	c := &Client{
		uri:  ippURI,
		url:  httpURL,
		http: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// URI returns printer URI, in the ipp:// form
func (c *Client) URI() string {
	return c.uri
}

// URL returns HTTP URL requests are sent to
func (c *Client) URL() string {
	return c.url
}

// NextRequestID returns next request ID. Request IDs
// monotonically increase and never are zero
func (c *Client) NextRequestID() uint32 {
	for {
		id := atomic.AddUint32(&c.reqID, 1)
		if id != 0 {
			return id
		}
	}
}

// Send sends the Operation to the printer and returns
// attribute groups of the response
//
// If printer responds with unsuccessful status,
// *ippcodec.StatusError is returned
func (c *Client) Send(ctx context.Context, op Operation) (ippcodec.Groups, error) {
	msg := op.Message(c.uri)
	msg.RequestID = c.NextRequestID()

	rsp, err := c.SendRaw(ctx, msg)
	if err != nil {
		return nil, err
	}

	rsp.Close()

	if err = rsp.Check(); err != nil {
		return nil, err
	}

	return rsp.Groups, nil
}

// SendRaw sends IPP request message and returns the response
//
// The response Payload is the rest of HTTP response body;
// caller must Close the response when done with it
//
// Non-200 HTTP replies are returned as *HTTPError. IPP status
// of the response is not checked, see ippcodec.Message.Check
func (c *Client) SendRaw(ctx context.Context,
	msg *ippcodec.Message) (*ippcodec.Message, error) {

	c.log.Begin().
		IppRequest(logger.LogTraceIPP, '>', msg).
		Commit()

	body, length, err := c.requestBody(msg)
	if err != nil {
		return nil, err
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, err
	}

	rq.ContentLength = length
	rq.Header.Set("Content-Type", ippcodec.ContentType)

	c.log.Begin().
		HTTPRequest(logger.LogTraceHTTP, '>', rq).
		Commit()

	rsp, err := c.http.Do(rq)
	if err != nil {
		c.log.Error('!', "IPP: %s", err)
		return nil, err
	}

	c.log.Begin().
		HTTPResponse(logger.LogTraceHTTP, '<', rsp).
		Commit()

	if rsp.StatusCode != http.StatusOK {
		rsp.Body.Close()
		err = &HTTPError{StatusCode: rsp.StatusCode, Status: rsp.Status}
		c.log.Error('!', "IPP: %s", err)
		return nil, err
	}

	reply, err := ippcodec.Decode(rsp.Body)
	if err != nil {
		rsp.Body.Close()
		c.log.Error('!', "IPP: %s", err)
		return nil, fmt.Errorf("IPP response: %w", err)
	}

	reply.Payload = struct {
		io.Reader
		io.Closer
	}{reply.Payload, rsp.Body}

	c.log.Begin().
		IppResponse(logger.LogTraceIPP, '<', reply).
		Commit()

	return reply, nil
}

// requestBody returns HTTP request body for the message and its
// length. Messages with payload are streamed, in that case
// length is -1
func (c *Client) requestBody(msg *ippcodec.Message) (io.Reader, int64, error) {
	if msg.Payload == nil {
		data, err := msg.EncodeBytes()
		if err != nil {
			return nil, 0, err
		}
		return bytes.NewReader(data), int64(len(data)), nil
	}

	r, w := io.Pipe()
	go func() {
		bw := bufio.NewWriter(w)
		_, err := msg.Encode(bw)
		if err == nil {
			err = bw.Flush()
		}
		w.CloseWithError(err)
	}()

	return r, -1, nil
}
