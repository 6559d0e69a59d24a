/* ippcodec - IPP wire format codec
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Log messages
 */

package logger

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/OpenPrinting/ippcodec"
)

// LogMessage represents a single (possible multi line) log
// message, which will appear in the output log atomically,
// and will not be interrupted in the middle by other log activity
type LogMessage struct {
	logger *Logger   // Underlying logger
	lines  []logLine // One entry per line
}

// logLine is a single line of the LogMessage
type logLine struct {
	level LogLevel      // Line level
	buf   *bytes.Buffer // Line text, '\n'-terminated
}

// add formats a next line of log message, with level and prefix char
func (msg *LogMessage) add(level LogLevel, prefix byte,
	format string, args ...interface{}) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	buf := logBufAlloc()
	buf.Write([]byte{prefix, ' '})
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
	msg.lines = append(msg.lines, logLine{level, buf})

	return msg
}

// Debug writes a LogDebug message
func (msg *LogMessage) Debug(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogDebug, prefix, format, args...)
}

// Info writes a LogInfo message
func (msg *LogMessage) Info(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogInfo, prefix, format, args...)
}

// Error writes a LogError message
func (msg *LogMessage) Error(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogError, prefix, format, args...)
}

// Dump writes HEX dump of the data, 16 bytes per line
func (msg *LogMessage) Dump(level LogLevel, data []byte) *LogMessage {
	if !msg.logger.Enabled(level) {
		return msg
	}

	hex := logBufAlloc()
	chr := logBufAlloc()

	defer logBufFree(hex)
	defer logBufFree(chr)

	for off := 0; off < len(data); off += 16 {
		hex.Reset()
		chr.Reset()

		end := off + 16
		if end > len(data) {
			end = len(data)
		}

		for i := off; i < off+16; i++ {
			if i >= end {
				hex.WriteString("   ")
				continue
			}

			c := data[i]
			sep := byte(' ')
			if i%4 == 3 {
				sep = ':'
			}
			fmt.Fprintf(hex, "%2.2x%c", c, sep)

			if 0x20 <= c && c < 0x80 {
				chr.WriteByte(c)
			} else {
				chr.WriteByte('.')
			}
		}

		msg.add(level, ' ', "%4.4x: %s %s", off, hex, chr)
	}

	return msg
}

// IppRequest pretty-prints IPP request
func (msg *LogMessage) IppRequest(level LogLevel, prefix byte,
	m *ippcodec.Message) *LogMessage {
	return msg.ipp(level, prefix, m, true)
}

// IppResponse pretty-prints IPP response
func (msg *LogMessage) IppResponse(level LogLevel, prefix byte,
	m *ippcodec.Message) *LogMessage {
	return msg.ipp(level, prefix, m, false)
}

// ipp does the actual work of IppRequest/IppResponse
func (msg *LogMessage) ipp(level LogLevel, prefix byte,
	m *ippcodec.Message, request bool) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	lw := LineWriter{
		Func: func(line []byte) {
			msg.add(level, prefix, "%s", line)
		},
	}

	m.Print(&lw, request)
	lw.Close()

	return msg
}

// HTTPRequest writes HTTP request line and headers
func (msg *LogMessage) HTTPRequest(level LogLevel, prefix byte,
	rq *http.Request) *LogMessage {

	msg.add(level, prefix, "%s %s %s", rq.Method, rq.URL, rq.Proto)
	return msg.httpHdr(level, prefix, rq.Header)
}

// HTTPResponse writes HTTP response status line and headers
func (msg *LogMessage) HTTPResponse(level LogLevel, prefix byte,
	rsp *http.Response) *LogMessage {

	msg.add(level, prefix, "%s %s", rsp.Proto, rsp.Status)
	return msg.httpHdr(level, prefix, rsp.Header)
}

// httpHdr writes HTTP header, sorted by key
func (msg *LogMessage) httpHdr(level LogLevel, prefix byte,
	hdr http.Header) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	keys := make([]string, 0, len(hdr))
	for k := range hdr {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	for _, k := range keys {
		msg.add(level, prefix, "%s: %s", k, hdr.Get(k))
	}

	return msg
}

// Commit message to the log
func (msg *LogMessage) Commit() {
	defer msg.free()

	if msg.logger != nil && len(msg.lines) != 0 {
		msg.logger.send(msg.lines)
	}
}

// Reject the message
func (msg *LogMessage) Reject() {
	msg.free()
}

// free returns message to the logMessagePool
func (msg *LogMessage) free() {
	for _, l := range msg.lines {
		logBufFree(l.buf)
	}

	if len(msg.lines) < 16 {
		msg.lines = msg.lines[:0]
	} else {
		msg.lines = nil
	}

	msg.logger = nil
	logMessagePool.Put(msg)
}
